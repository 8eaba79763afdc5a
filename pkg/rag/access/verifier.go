// FILE: pkg/rag/access/verifier.go
package access

import (
	"context"
	"fmt"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Verifier enforces the per-user daily chat quota on Redis. Counting uses a
// day-scoped key with INCR plus a midnight-UTC expiry, so every user's quota
// resets at the same instant and counts survive server restarts.
//
// The verifier degrades towards availability: with no Redis client, a zero
// limit, or a Redis outage it admits the request, logging a warning in the
// outage case.
type Verifier struct {
	rdb    *redis.Client
	limit  int
	logger logger.ILogger
}

func NewVerifier(rdb *redis.Client, limit int, log logger.ILogger) *Verifier {
	return &Verifier{rdb: rdb, limit: limit, logger: log}
}

// Enabled reports whether quota enforcement is active.
func (v *Verifier) Enabled() bool {
	return v.rdb != nil && v.limit > 0
}

// VerifyDailyLimit counts this request against the user's daily quota and
// rejects with LimitExceededError once the limit is passed. INCR runs before
// the check, so rejected requests push the counter further past the limit;
// that overshoot is harmless and clears at midnight with everything else.
func (v *Verifier) VerifyDailyLimit(ctx context.Context, userId uuid.UUID) error {
	if !v.Enabled() {
		return nil
	}

	now := time.Now().UTC()
	key := quotaKey(userId, now)

	used, err := v.rdb.Incr(ctx, key).Result()
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("access", "quota check skipped, redis unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil
	}
	if used == 1 {
		// The first request of the day owns setting the key's expiry.
		v.rdb.ExpireAt(ctx, key, midnightAfter(now))
	}

	if used > int64(v.limit) {
		return &dto.LimitExceededError{
			Limit:      v.limit,
			Used:       int(used),
			ResetAfter: midnightAfter(now),
		}
	}
	return nil
}

func quotaKey(userId uuid.UUID, now time.Time) string {
	return fmt.Sprintf("lexai:quota:%s:%s", userId, now.Format("2006-01-02"))
}

// midnightAfter is the next UTC midnight strictly after t.
func midnightAfter(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
