package memory

import (
	"sync"
	"time"

	"career-compass-be/pkg/interview"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps in-progress interview sessions in memory. Sessions are
// volatile and expire after the configured TTL of inactivity.
type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	r := &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
		locks: make(map[string]*sync.Mutex),
	}
	// a session's lock goes away with the session, whether deleted or expired
	r.cache.OnEvicted(func(sessionID string, _ interface{}) {
		r.mu.Lock()
		delete(r.locks, sessionID)
		r.mu.Unlock()
	})
	return r
}

// Save stores a copy; callers keep ownership of the session they pass in.
func (r *SessionRepository) Save(session *interview.Session) {
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
}

// Get returns a copy that is safe to mutate.
func (r *SessionRepository) Get(sessionID string) (*interview.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*interview.Session).Clone(), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Lock serializes work on one session and returns the unlock func. Unknown
// sessions get a no-op lock; the caller's lookup then fails on its own.
func (r *SessionRepository) Lock(sessionID string) func() {
	r.mu.Lock()
	if _, found := r.cache.Get(sessionID); !found {
		r.mu.Unlock()
		return func() {}
	}
	mu, ok := r.locks[sessionID]
	if !ok {
		mu = &sync.Mutex{}
		r.locks[sessionID] = mu
	}
	r.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (r *SessionRepository) lockCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
