package api

import (
	"sync"
	"time"
)

const oauthStateTTL = 10 * time.Minute

// oauthStateRegistry tracks outstanding OAuth state parameters so the
// callback can verify the handshake was started by the same user.
type oauthStateRegistry struct {
	mu     sync.Mutex
	states map[string]oauthStateEntry
}

type oauthStateEntry struct {
	userID    uint
	expiresAt time.Time
}

func newOAuthStateRegistry() *oauthStateRegistry {
	return &oauthStateRegistry{states: map[string]oauthStateEntry{}}
}

func (registry *oauthStateRegistry) add(state string, userID uint, now time.Time) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for key, entry := range registry.states {
		if now.After(entry.expiresAt) {
			delete(registry.states, key)
		}
	}
	registry.states[state] = oauthStateEntry{userID: userID, expiresAt: now.Add(oauthStateTTL)}
}

// consume validates and removes a state token. A state is single-use.
func (registry *oauthStateRegistry) consume(state string, userID uint, now time.Time) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	entry, found := registry.states[state]
	if !found {
		return false
	}
	delete(registry.states, state)
	return entry.userID == userID && !now.After(entry.expiresAt)
}
