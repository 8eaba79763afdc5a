// FILE: internal/service/history_buckets.go
package service

import (
	"time"

	"github.com/Prajankrish/Lex-AI/internal/constant"
	"github.com/Prajankrish/Lex-AI/internal/dto"
	"github.com/Prajankrish/Lex-AI/internal/entity"
)

// BucketizeSessions groups sessions into the sidebar's recency buckets by
// last activity, using calendar days in now's location. Input order (newest
// first) is preserved inside each bucket; empty buckets are omitted. The
// same instant always lands in exactly one bucket.
func BucketizeSessions(sessions []*entity.ChatSession, now time.Time) []dto.HistoryBucket {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := dayStart.AddDate(0, 0, -1)
	weekStart := dayStart.AddDate(0, 0, -7)

	grouped := map[string][]dto.SessionSummaryResponse{}
	for _, s := range sessions {
		at := s.LastActivity()

		label := constant.BucketOlder
		switch {
		case !at.Before(dayStart):
			label = constant.BucketToday
		case !at.Before(yesterdayStart):
			label = constant.BucketYesterday
		case !at.Before(weekStart):
			label = constant.BucketPrevious7Days
		}

		grouped[label] = append(grouped[label], dto.SessionSummaryResponse{
			Id:        s.Id,
			Title:     s.Title,
			Timestamp: at,
		})
	}

	ordered := []string{constant.BucketToday, constant.BucketYesterday, constant.BucketPrevious7Days, constant.BucketOlder}
	buckets := make([]dto.HistoryBucket, 0, len(ordered))
	for _, label := range ordered {
		if len(grouped[label]) == 0 {
			continue
		}
		buckets = append(buckets, dto.HistoryBucket{Label: label, Sessions: grouped[label]})
	}
	return buckets
}
