package server

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"webdesk/internal/desk"
)

// SessionStore maps bearer tokens to user ids. Sessions are as
// transient as everything else here and die with the process.
type SessionStore struct {
	mu     sync.Mutex
	tokens map[string]string
	idgen  desk.IDGenerator
}

func NewSessionStore(idgen desk.IDGenerator) *SessionStore {
	return &SessionStore{
		tokens: make(map[string]string),
		idgen:  idgen,
	}
}

// Create opens a session for userID and returns its token.
func (s *SessionStore) Create(userID string) string {
	token := s.idgen.New()
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
	return token
}

// UserID resolves a token to a user id.
func (s *SessionStore) UserID(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	return id, ok
}

// Delete closes a session.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// HashPassword is the (deliberately simple) credential digest: hex
// SHA-256. The permission model is advisory, not a security boundary.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
