package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/navdurga/steeldesk/internal/domain"
	"github.com/navdurga/steeldesk/internal/store"
	"github.com/rs/zerolog"
)

type authService struct {
	backend Backend
	creds   *store.CredentialsRepo
	log     zerolog.Logger

	mu      sync.RWMutex
	session *domain.Session
}

// NewAuthService creates the session store backed by the API and the local
// credentials repository.
func NewAuthService(backend Backend, creds *store.CredentialsRepo, log zerolog.Logger) AuthService {
	return &authService{backend: backend, creds: creds, log: log}
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	result, err := s.backend.Login(ctx, username, password)
	if err != nil {
		s.log.Warn().Str("username", username).Msg("login rejected")
		return nil, err
	}

	session := domain.Session{Username: result.Username, Token: result.AccessToken}
	s.backend.SetToken(session.Token)
	s.setSession(&session)

	if err := s.creds.Save(ctx, session); err != nil {
		// The session is usable in memory; it just won't survive a restart.
		s.log.Error().Err(err).Msg("persisting session")
	}

	s.log.Info().Str("username", session.Username).Msg("logged in")
	return &session, nil
}

func (s *authService) Restore(ctx context.Context) (*domain.Session, error) {
	session, err := s.creds.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	// No local expiry check; a dead token is discovered on the next call.
	s.backend.SetToken(session.Token)
	s.setSession(session)
	s.log.Info().Str("username", session.Username).Msg("session restored")
	return session, nil
}

func (s *authService) Logout(ctx context.Context) error {
	s.setSession(nil)
	s.backend.ClearToken()
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clearing stored session: %w", err)
	}
	s.log.Info().Msg("logged out")
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	return s.backend.UpdatePassword(ctx, current, newPassword, confirm)
}

func (s *authService) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *authService) setSession(session *domain.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
}
