// FILE: internal/service/history_buckets_test.go
package service

import (
	"testing"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/constant"
	"github.com/Prajankrish/Lex-AI/internal/entity"

	"github.com/google/uuid"
)

func sessionAt(title string, at time.Time) *entity.ChatSession {
	return &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Title:     title,
		CreatedAt: at,
		UpdatedAt: &at,
	}
}

func TestBucketizeSessionsGroupsByCalendarDay(t *testing.T) {
	// Mid-afternoon reference point; bucket edges are local midnights.
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	sessions := []*entity.ChatSession{
		sessionAt("this morning", time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)),
		sessionAt("late last night", time.Date(2026, 3, 9, 23, 50, 0, 0, time.UTC)),
		sessionAt("four days ago", time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)),
		sessionAt("last month", time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)),
	}

	buckets := BucketizeSessions(sessions, now)

	wantLabels := []string{constant.BucketToday, constant.BucketYesterday, constant.BucketPrevious7Days, constant.BucketOlder}
	if len(buckets) != len(wantLabels) {
		t.Fatalf("len(buckets) = %d, want %d: %+v", len(buckets), len(wantLabels), buckets)
	}
	for i, want := range wantLabels {
		if buckets[i].Label != want {
			t.Errorf("buckets[%d].Label = %q, want %q", i, buckets[i].Label, want)
		}
		if len(buckets[i].Sessions) != 1 {
			t.Errorf("buckets[%d] has %d sessions, want 1", i, len(buckets[i].Sessions))
		}
	}
	if buckets[0].Sessions[0].Title != "this morning" {
		t.Errorf("today bucket holds %q", buckets[0].Sessions[0].Title)
	}
}

func TestBucketizeSessionsOmitsEmptyBuckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	sessions := []*entity.ChatSession{
		sessionAt("old one", time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)),
	}

	buckets := BucketizeSessions(sessions, now)

	if len(buckets) != 1 || buckets[0].Label != constant.BucketOlder {
		t.Fatalf("buckets = %+v, want only the older bucket", buckets)
	}
}

func TestBucketizeSessionsBoundaryMidnight(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)

	atMidnight := sessionAt("exactly midnight", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	beforeMidnight := sessionAt("one second earlier", time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC))
	weekEdge := sessionAt("seven days back", time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))

	buckets := BucketizeSessions([]*entity.ChatSession{atMidnight, beforeMidnight, weekEdge}, now)

	got := map[string]string{}
	for _, b := range buckets {
		for _, s := range b.Sessions {
			got[s.Title] = b.Label
		}
	}
	if got["exactly midnight"] != constant.BucketToday {
		t.Errorf("midnight session in %q, want today", got["exactly midnight"])
	}
	if got["one second earlier"] != constant.BucketYesterday {
		t.Errorf("pre-midnight session in %q, want yesterday", got["one second earlier"])
	}
	if got["seven days back"] != constant.BucketPrevious7Days {
		t.Errorf("week-edge session in %q, want previous_7_days", got["seven days back"])
	}
}

func TestBucketizeSessionsPreservesOrderWithinBucket(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	// Newest first, the order the repository returns.
	sessions := []*entity.ChatSession{
		sessionAt("second today", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)),
		sessionAt("first today", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
	}

	buckets := BucketizeSessions(sessions, now)
	if len(buckets) != 1 {
		t.Fatalf("len(buckets) = %d, want 1", len(buckets))
	}
	if buckets[0].Sessions[0].Title != "second today" || buckets[0].Sessions[1].Title != "first today" {
		t.Errorf("bucket order = [%q, %q], want input order preserved",
			buckets[0].Sessions[0].Title, buckets[0].Sessions[1].Title)
	}
}

func TestBucketizeSessionsFallsBackToCreatedAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	s := &entity.ChatSession{
		Id:        uuid.New(),
		Title:     "never touched",
		CreatedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}

	buckets := BucketizeSessions([]*entity.ChatSession{s}, now)
	if len(buckets) != 1 || buckets[0].Label != constant.BucketToday {
		t.Fatalf("buckets = %+v, want the created_at instant bucketed as today", buckets)
	}
}
