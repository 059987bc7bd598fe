package respond

import (
	"errors"
	"log"
	"sync"
	"time"
)

// ErrBreakerOpen is returned while the remote provider is cooling down.
var ErrBreakerOpen = errors.New("provider circuit open")

type breakerState string

const (
	breakerClosed   breakerState = "closed"
	breakerOpen     breakerState = "open"
	breakerHalfOpen breakerState = "half-open"
)

// Breaker stops calls to a repeatedly failing provider so a dead remote
// backend costs one rejection instead of one timeout per turn.
type Breaker struct {
	mu sync.Mutex

	state            breakerState
	failureCount     int
	successStreak    int
	lastFailure      time.Time
	failureThreshold int
	successThreshold int
	cooldown         time.Duration
}

// NewBreaker opens after failureThreshold consecutive failures and probes
// again once cooldown has elapsed.
func NewBreaker(failureThreshold int, cooldown time.Duration) *Breaker {
	if failureThreshold < 1 {
		failureThreshold = 3
	}
	if cooldown < time.Second {
		cooldown = 30 * time.Second
	}
	return &Breaker{
		state:            breakerClosed,
		failureThreshold: failureThreshold,
		successThreshold: 2,
		cooldown:         cooldown,
	}
}

// Allow reports whether a call may proceed, transitioning open -> half-open
// when the cooldown has passed.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerOpen {
		if time.Since(b.lastFailure) < b.cooldown {
			return ErrBreakerOpen
		}
		b.state = breakerHalfOpen
		b.successStreak = 0
		log.Printf("[Breaker] State: OPEN -> HALF-OPEN (cooldown elapsed, probing provider)")
	}
	return nil
}

// Record feeds a call result back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failureCount++
		b.successStreak = 0
		b.lastFailure = time.Now()
		if b.state == breakerHalfOpen || (b.state == breakerClosed && b.failureCount >= b.failureThreshold) {
			if b.state != breakerOpen {
				log.Printf("[Breaker] State: %s -> OPEN (%d consecutive failures)", b.state, b.failureCount)
			}
			b.state = breakerOpen
		}
		return
	}

	b.failureCount = 0
	if b.state == breakerHalfOpen {
		b.successStreak++
		if b.successStreak >= b.successThreshold {
			b.state = breakerClosed
			log.Printf("[Breaker] State: HALF-OPEN -> CLOSED (provider recovered)")
		}
	}
}

// IsOpen reports whether calls are currently rejected.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == breakerOpen && time.Since(b.lastFailure) < b.cooldown
}
