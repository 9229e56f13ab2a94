package tui

import "sync"

// playerRegistry tracks which player names have a live SSH session.
// A player's saved game is a single row, so one session per player.
// Thread-safe for concurrent access.
type playerRegistry struct {
	mu      sync.RWMutex
	players map[string]string // player -> session id
}

func newPlayerRegistry() *playerRegistry {
	return &playerRegistry{
		players: make(map[string]string),
	}
}

// Claim registers session id for player. It fails if another session
// already holds the name.
func (r *playerRegistry) Claim(player, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.players[player]; taken {
		return false
	}
	r.players[player] = id
	return true
}

// Release frees player if id still holds it.
func (r *playerRegistry) Release(player, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.players[player] == id {
		delete(r.players, player)
	}
}

// Count returns the number of connected players.
func (r *playerRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
