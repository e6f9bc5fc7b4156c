// Package jitter добавляет случайность в интервалы повторов (backoff),
// чтобы повторные попытки разных воркеров не совпадали по времени.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d с добавленным джиттером в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	return DurationWithRand(d, jitterFactor, rand.Float64)
}

// DurationWithRand то же, что Duration, но с заданным источником случайных чисел в [0, 1).
func DurationWithRand(d time.Duration, jitterFactor float64, float func() float64) time.Duration {
	return d + time.Duration(float()*jitterFactor*float64(d))
}

// ExponentialBackoff считает задержку перед попыткой attempt (с нуля):
// base*2^attempt, не больше max, плюс джиттер.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff >= max {
			backoff = max
			break
		}
	}

	return Duration(backoff, jitterFactor)
}
