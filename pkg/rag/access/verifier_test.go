// FILE: pkg/rag/access/verifier_test.go
package access

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestVerifierAdmitsWhenDisabled(t *testing.T) {
	userId := uuid.New()

	for _, v := range []*Verifier{
		NewVerifier(nil, 200, nil), // no redis
		NewVerifier(nil, 0, nil),   // zero limit
	} {
		if v.Enabled() {
			t.Error("Enabled() = true for a disabled verifier")
		}
		if err := v.VerifyDailyLimit(context.Background(), userId); err != nil {
			t.Errorf("VerifyDailyLimit() = %v for a disabled verifier, want nil", err)
		}
	}
}

func TestQuotaKeyIsDayScoped(t *testing.T) {
	userId := uuid.New()
	morning := time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 2, 0, 30, 0, 0, time.UTC)

	if quotaKey(userId, morning) != quotaKey(userId, evening) {
		t.Error("same-day requests produced different quota keys")
	}
	if quotaKey(userId, morning) == quotaKey(userId, nextDay) {
		t.Error("requests a day apart share a quota key")
	}
	if quotaKey(userId, morning) == quotaKey(uuid.New(), morning) {
		t.Error("different users share a quota key")
	}
}

func TestMidnightAfter(t *testing.T) {
	tests := []struct {
		at   time.Time
		want time.Time
	}{
		{
			at:   time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			// Exactly midnight belongs to the new day; reset is the next one.
			at:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			// Month rollover.
			at:   time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		if got := midnightAfter(tt.at); !got.Equal(tt.want) {
			t.Errorf("midnightAfter(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}
