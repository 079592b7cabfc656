package worker

import (
	"math"
	"math/rand"
	"time"
)

//nolint:gosec
var jitterSource = rand.New(rand.NewSource(time.Now().UnixNano())).Float64

type BackoffStrategy interface {
	// Backoff returns the delay before the given attempt, starting at 1.
	Backoff(attempt int) time.Duration
}

type ConstBackoff struct {
	Delay time.Duration
}

func (c ConstBackoff) Backoff(int) time.Duration { return c.Delay }

// ExponentialBackoff grows the delay by Multiplier per attempt, caps it at
// MaxDelay and then adds up to Jitter times the delay at random.
type ExponentialBackoff struct {
	Multiplier   float64
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Jitter       float64
}

func (b *ExponentialBackoff) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := time.Duration(float64(b.InitialDelay) * math.Pow(b.Multiplier, float64(attempt-1)))
	if b.MaxDelay > 0 && d > b.MaxDelay {
		d = b.MaxDelay
	}
	if b.Jitter > 0 {
		d += time.Duration(jitterSource() * b.Jitter * float64(d))
	}
	return d
}

var DefaultExponentialBackoff = &ExponentialBackoff{
	Multiplier:   1.6,
	InitialDelay: time.Second,
	MaxDelay:     15 * time.Minute,
	Jitter:       0.2,
}
