package survey

import (
	"fmt"
	"sync"

	"behavior-go/internal/models"
	"behavior-go/internal/utils"
)

// Store keeps assessment sessions in memory, keyed by the id stored in the
// participant's cookie session.
type Store struct {
	mu       sync.Mutex
	bank     *models.Bank
	sessions map[string]*Session
}

// NewStore returns an empty store whose sessions draw questions from bank.
func NewStore(bank *models.Bank) *Store {
	return &Store{bank: bank, sessions: make(map[string]*Session)}
}

// Bank returns the question bank shared by all sessions.
func (st *Store) Bank() *models.Bank { return st.bank }

// Create starts a new session at the consent stage.
func (st *Store) Create() (*Session, error) {
	id, err := utils.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	s := NewSession(id, st.bank)

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	return s, nil
}

// Get looks up a session by id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete forgets a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len is the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
