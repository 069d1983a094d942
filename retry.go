package resocket

import (
	"math"
	"math/rand"
	"time"
)

// DefaultReconnectDelay is the wait between reconnect attempts when no
// policy or delay option is supplied.
const DefaultReconnectDelay = 5 * time.Second

// RetryPolicy decides how a Connection's reconnect loop paces itself.
type RetryPolicy interface {
	// NextDelay returns the delay before the next reconnect attempt.
	// attempt is 0-based (0 for the first attempt, 1 for the second, etc.)
	// Returns the delay duration and whether to keep trying.
	NextDelay(attempt int, lastErr error) (time.Duration, bool)

	// Reset resets the policy state (called on successful connection).
	Reset()
}

// FixedDelayPolicy waits a constant delay between reconnect attempts.
//
// With MaxAttempts zero it never gives up; this is the default policy and
// matches the behavior long-lived clients historically relied on: a stuck
// remote is retried forever at a steady interval.
type FixedDelayPolicy struct {
	// Delay is the fixed delay between attempts.
	Delay time.Duration

	// MaxAttempts is the maximum number of attempts (0 for infinite).
	MaxAttempts int
}

// NewFixedDelayPolicy creates a fixed delay policy.
func NewFixedDelayPolicy(delay time.Duration, maxAttempts int) *FixedDelayPolicy {
	return &FixedDelayPolicy{
		Delay:       delay,
		MaxAttempts: maxAttempts,
	}
}

// NextDelay implements RetryPolicy.
func (p *FixedDelayPolicy) NextDelay(attempt int, lastErr error) (time.Duration, bool) {
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		return 0, false
	}
	return p.Delay, true
}

// Reset implements RetryPolicy.
func (p *FixedDelayPolicy) Reset() {
	// No state to reset for fixed delay
}

// ExponentialBackoffPolicy implements exponential backoff with jitter.
type ExponentialBackoffPolicy struct {
	// InitialDelay is the initial reconnect delay.
	InitialDelay time.Duration

	// MaxDelay is the maximum reconnect delay.
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier.
	Multiplier float64

	// MaxAttempts is the maximum number of attempts (0 for infinite).
	MaxAttempts int

	// Jitter adds randomness to the delay to avoid thundering herd.
	Jitter bool

	// JitterFactor is the maximum jitter as a fraction of the delay (0.0 to 1.0).
	JitterFactor float64
}

// NewExponentialBackoffPolicy creates an exponential backoff policy with defaults.
func NewExponentialBackoffPolicy() *ExponentialBackoffPolicy {
	return &ExponentialBackoffPolicy{
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		MaxAttempts:  0,
		Jitter:       true,
		JitterFactor: 0.3,
	}
}

// NextDelay implements RetryPolicy.
func (p *ExponentialBackoffPolicy) NextDelay(attempt int, lastErr error) (time.Duration, bool) {
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		return 0, false
	}

	delay := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt))

	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}

	if p.Jitter && p.JitterFactor > 0 {
		// math/rand is fine for jitter, not security-critical
		jitter := delay * p.JitterFactor * (2*rand.Float64() - 1)
		delay += jitter
		if delay < 0 {
			delay = float64(p.InitialDelay)
		}
	}

	return time.Duration(delay), true
}

// Reset implements RetryPolicy.
func (p *ExponentialBackoffPolicy) Reset() {
	// No state to reset for exponential backoff
}
