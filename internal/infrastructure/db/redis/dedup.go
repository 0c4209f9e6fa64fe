package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// ReportDedup guards anonymous report submissions against rapid duplicates.
// Key format: report:<fingerprint>
type ReportDedup struct {
	client *redis.Client
}

// NewReportDedup creates a ReportDedup wrapping the given Redis client.
func NewReportDedup(client *redis.Client) *ReportDedup {
	return &ReportDedup{client: client}
}

// Claim atomically records the fingerprint and reports whether it was new.
// A false return means the same report was already submitted within dedupTTL.
func (d *ReportDedup) Claim(ctx context.Context, fingerprint string) (bool, error) {
	ok, err := d.client.SetNX(ctx, "report:"+fingerprint, "1", dedupTTL).Result()
	if err != nil {
		return false, fmt.Errorf("report dedup: %w", err)
	}
	return ok, nil
}
