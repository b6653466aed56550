// Package ratelimit provides a redis-backed request limiter used to
// throttle the claim endpoint per caller.
package ratelimit

import "context"

type Limiter interface {
	// Allow reports whether the caller identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
}
