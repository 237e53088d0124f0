package cartstore

import (
	"context"
	"sync"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
)

var _ checkout.CartStore = (*MemoryStore)(nil)

// MemoryStore implementación en memoria del CartStore, para pruebas y para
// correr sin Redis en desarrollo.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]checkout.Session
}

// NewMemoryStore construye el store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]checkout.Session)}
}

// Get devuelve la sesión guardada, o una sesión vacía si no existe.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*checkout.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return &checkout.Session{}, nil
	}
	cp := session
	cp.Cart = append(checkout.Cart(nil), session.Cart...)
	return &cp, nil
}

// Save guarda una copia de la sesión.
func (s *MemoryStore) Save(_ context.Context, sessionID string, session *checkout.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	cp.Cart = append(checkout.Cart(nil), session.Cart...)
	s.sessions[sessionID] = cp
	return nil
}

// Clear vacía el carrito de la sesión.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
