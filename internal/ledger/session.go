package ledger

import (
	"context"
	"sync"
)

// Operator is the signed-in console user.
type Operator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session holds the bearer token of the signed-in operator. One Session is
// created at startup and shared by everything that talks to the service.
type Session struct {
	mu       sync.RWMutex
	token    string
	operator Operator
}

func NewSession() *Session { return &Session{} }

// SignIn authenticates through gw and stores the result.
func (s *Session) SignIn(ctx context.Context, gw AuthGateway, email, password string) (Operator, error) {
	token, op, err := gw.Login(ctx, email, password)
	if err != nil {
		return Operator{}, err
	}
	s.mu.Lock()
	s.token, s.operator = token, op
	s.mu.Unlock()
	return op, nil
}

// Logout clears the session.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token, s.operator = "", Operator{}
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Operator() (Operator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operator, s.token != ""
}

func (s *Session) Authenticated() bool { return s.Token() != "" }
