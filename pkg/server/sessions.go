package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowboard/pkg/editor"
)

// DefaultSessionTTL is how long an untouched session survives.
const DefaultSessionTTL = 2 * time.Hour

// entry guards one editing session. The session itself is not safe for
// concurrent use, so every access goes through mu.
type entry struct {
	mu       sync.Mutex
	session  *editor.Session
	lastUsed time.Time
}

// store holds live editing sessions in memory, keyed by UUID. Sessions idle
// for longer than ttl are dropped by cleanup.
type store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

func newStore(ttl time.Duration) *store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// add registers s under a fresh id.
func (st *store) add(s *editor.Session) string {
	id := uuid.NewString()
	st.mu.Lock()
	st.entries[id] = &entry{session: s, lastUsed: st.now()}
	st.mu.Unlock()
	return id
}

// with runs fn on the session id while holding its lock. It reports false
// when the session does not exist or has expired.
func (st *store) with(id string, fn func(*editor.Session)) bool {
	st.mu.RLock()
	e, ok := st.entries[id]
	st.mu.RUnlock()
	if !ok {
		return false
	}
	if !e.run(st.now(), st.ttl, fn) {
		st.remove(id)
		return false
	}
	return true
}

func (e *entry) run(now time.Time, ttl time.Duration, fn func(*editor.Session)) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if now.Sub(e.lastUsed) > ttl {
		return false
	}
	e.lastUsed = now
	fn(e.session)
	return true
}

func (st *store) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.entries[id]
	delete(st.entries, id)
	return ok
}

func (st *store) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}

// cleanup drops expired sessions and returns how many it removed.
func (st *store) cleanup() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, e := range st.entries {
		// A locked entry is in use and therefore not idle.
		if !e.mu.TryLock() {
			continue
		}
		expired := now.Sub(e.lastUsed) > st.ttl
		e.mu.Unlock()
		if expired {
			delete(st.entries, id)
			n++
		}
	}
	return n
}
