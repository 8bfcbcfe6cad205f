package stylist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// maxSessions bounds the number of live sessions; every session costs 1.
const maxSessions = 10_000

// SessionStore keeps sessions in memory with a sliding TTL.
type SessionStore struct {
	mu        sync.Mutex
	cache     *cache.Cache[*Session]
	ristretto *ristretto.Cache
	ttl       time.Duration
}

func NewSessionStore(ttl time.Duration) (*SessionStore, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxSessions * 10,
		MaxCost:            maxSessions,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	return &SessionStore{
		cache:     cache.New[*Session](ristretto_store.NewRistretto(ristrettoCache)),
		ristretto: ristrettoCache,
		ttl:       ttl,
	}, nil
}

// Get returns the session or false when it does not exist or has expired.
func (st *SessionStore) Get(ctx context.Context, id string) (*Session, bool) {
	session, err := st.cache.Get(ctx, id)
	if err != nil || session == nil {
		return nil, false
	}
	return session, true
}

// GetOrCreate returns the session for id, creating an empty one when needed,
// and extends its expiry.
func (st *SessionStore) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.Get(ctx, id)
	if !ok {
		session = NewSession(id)
	}
	if err := st.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (st *SessionStore) Close() {
	st.ristretto.Close()
}

// save must be called with mu held. Ristretto applies writes asynchronously,
// Wait makes the write visible to the next Get.
func (st *SessionStore) save(ctx context.Context, session *Session) error {
	err := st.cache.Set(ctx, session.ID, session, store.WithExpiration(st.ttl), store.WithCost(1))
	if err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	st.ristretto.Wait()
	return nil
}
