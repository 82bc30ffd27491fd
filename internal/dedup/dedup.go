// Package dedup tracks which transaction signatures have already been
// handled so redelivered webhooks do not re-alert.
package dedup

import "context"

// Store answers whether a signature has been processed and records new
// ones. Backends differ in durability and retention; all of them keep
// the set bounded.
type Store interface {
	Seen(ctx context.Context, signature string) (bool, error)
	Mark(ctx context.Context, signature string) error
}

// Noop is the no-dedup backend: every delivery is treated as new.
type Noop struct{}

func (Noop) Seen(ctx context.Context, signature string) (bool, error) { return false, nil }

func (Noop) Mark(ctx context.Context, signature string) error { return nil }
