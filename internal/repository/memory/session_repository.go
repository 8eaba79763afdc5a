package memory

import (
	"time"

	"github.com/Prajankrish/Lex-AI/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type SessionStateRepository struct {
	cache *cache.Cache
}

func NewSessionStateRepository(ttl time.Duration) *SessionStateRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Expired entries are purged every 10 minutes; an active session keeps
	// refreshing its entry on every turn.
	c := cache.New(ttl, 10*time.Minute)
	return &SessionStateRepository{
		cache: c,
	}
}

func (r *SessionStateRepository) Save(state *store.SessionState) {
	state.UpdatedAt = time.Now()
	r.cache.Set(state.ID.String(), state, cache.DefaultExpiration)
}

func (r *SessionStateRepository) Get(sessionID uuid.UUID) (*store.SessionState, bool) {
	if x, found := r.cache.Get(sessionID.String()); found {
		return x.(*store.SessionState), true
	}
	return nil, false
}

func (r *SessionStateRepository) Delete(sessionID uuid.UUID) {
	r.cache.Delete(sessionID.String())
}
