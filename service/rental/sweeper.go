package rental

import (
	"context"
	"time"
)

// Cleaner purges pending reservations that were never paid within the
// hold window, freeing their copies for other customers.
type Cleaner interface {
	ReleaseExpired(ctx context.Context) (int64, error)
}

type cleaner struct {
	r          Repo
	holdWindow time.Duration
	now        func() time.Time
}

func NewCleaner(r Repo, holdWindow time.Duration) Cleaner {
	if holdWindow <= 0 {
		holdWindow = 24 * time.Hour
	}
	return &cleaner{
		r:          r,
		holdWindow: holdWindow,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (c *cleaner) ReleaseExpired(ctx context.Context) (int64, error) {
	return c.r.DeleteStalePending(ctx, c.now().Add(-c.holdWindow))
}
