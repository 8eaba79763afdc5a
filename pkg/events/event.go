package events

import "time"

// EventTypeCorpusPublished announces a newly published corpus snapshot on the
// bus. Running API servers reload their in-memory vector index when they see
// it, so a reindex propagates without restarts.
const EventTypeCorpusPublished = "CORPUS_SNAPSHOT_PUBLISHED"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used for both publishing and the
// reconstructed events on the subscriber side.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewCorpusPublishedEvent builds the snapshot announcement the indexer sends
// after a successful publish.
func NewCorpusPublishedEvent(snapshotId string, label string, passageCount int) Event {
	return BaseEvent{
		Type: EventTypeCorpusPublished,
		Data: map[string]interface{}{
			"snapshot_id":   snapshotId,
			"label":         label,
			"passage_count": passageCount,
		},
		OccurredAt: time.Now(),
	}
}
