package session

import (
	"context"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/google/uuid"

	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/rag"
)

// Store keeps sessions in memory and expires those idle for longer than the
// configured TTL.
type Store struct {
	opts Options
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

var defaultOptions = Options{
	TTL:  2 * time.Hour,
	TopK: 2,
}

// NewStore returns an empty store. Zero-valued TTL and TopK take their
// defaults; pass a negative TTL to disable expiry.
func NewStore(opts Options) *Store {
	if err := mergo.Merge(&opts, defaultOptions); err != nil {
		log.Errorf("merging session defaults: %v", err)
	}
	return &Store{
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Create builds clients for the API key and registers a new session.
func (st *Store) Create(apiKey string) (*Session, error) {
	clients, err := st.opts.NewClients(apiKey)
	if err != nil {
		return nil, err
	}

	now := st.now()
	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		opts:       &st.opts,
		clients:    clients,
		retrievers: make(map[string]*rag.Retriever),
	}

	st.mu.Lock()
	st.sessions[s.ID] = &entry{session: s, lastUsed: now}
	st.mu.Unlock()

	log.Debugf("created session %s", s.ID)

	return s, nil
}

// Get returns the session and marks it as used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok || st.expired(e) {
		return nil, models.NewNotFoundError("session " + id)
	}
	e.lastUsed = st.now()

	return e.session, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return models.NewNotFoundError("session " + id)
	}
	delete(st.sessions, id)

	return nil
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, e := range st.sessions {
		if st.expired(e) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *Store) expired(e *entry) bool {
	return st.opts.TTL > 0 && st.now().Sub(e.lastUsed) > st.opts.TTL
}

// StartSweeper sweeps expired sessions every interval until ctx is done.
func (st *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if st.opts.TTL <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := st.Sweep(); n > 0 {
					log.Infof("expired %d idle sessions", n)
				}
			}
		}
	}()
}
