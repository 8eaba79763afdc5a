package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/pkg/logger"
	"github.com/Prajankrish/Lex-AI/pkg/rag/access"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDailyQuota(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err(), "Failed to connect to Redis")

	// A fresh user id per run starts from an unused day-scoped key.
	userId := uuid.New()
	limit := 3
	verifier := access.NewVerifier(rdb, limit, logger.NewNopLogger())
	require.True(t, verifier.Enabled())

	t.Run("Admits up to the limit", func(t *testing.T) {
		for i := 0; i < limit; i++ {
			assert.NoError(t, verifier.VerifyDailyLimit(ctx, userId))
		}
	})

	t.Run("Denies past the limit", func(t *testing.T) {
		err := verifier.VerifyDailyLimit(ctx, userId)
		var limitErr *dto.LimitExceededError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, limit, limitErr.Limit)
		assert.Equal(t, limit+1, limitErr.Used)
		assert.True(t, limitErr.ResetAfter.After(time.Now().UTC()))
	})

	t.Run("Keeps denying while counting", func(t *testing.T) {
		err := verifier.VerifyDailyLimit(ctx, userId)
		var limitErr *dto.LimitExceededError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, limit+2, limitErr.Used)
	})

	t.Log("Daily quota admitted up to the limit and denied past it")
}
