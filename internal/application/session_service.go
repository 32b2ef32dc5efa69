package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// SessionService authenticates editor logins against the shared editor
// password and tracks the workspace owned by each issued session.
type SessionService struct {
	passwordHash   string
	verifyPassword PasswordVerifier
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	session   EditorSession
	workspace *Workspace
}

// NewSessionService constructs a SessionService with the provided dependencies.
func NewSessionService(passwordHash string, verify PasswordVerifier, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration) *SessionService {
	return NewSessionServiceWithLogger(passwordHash, verify, tokenGenerator, now, sessionTTL, nil)
}

// NewSessionServiceWithLogger constructs a SessionService with a specified logger.
func NewSessionServiceWithLogger(passwordHash string, verify PasswordVerifier, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *SessionService {
	if verify == nil {
		verify = VerifyPassword
	}
	if tokenGenerator == nil {
		tokenGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &SessionService{
		passwordHash:   passwordHash,
		verifyPassword: verify,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
		entries:        make(map[string]*sessionEntry),
	}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// Authenticate validates the editor password and issues a new session with
// an empty workspace.
func (s *SessionService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthenticateResult, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Authenticate")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("session_id", result.Session.ID).InfoContext(ctx, "authentication succeeded")
	}()

	if params.Password == "" || s.passwordHash == "" {
		err = ErrInvalidCredentials
		return
	}
	if err = s.verifyPassword(s.passwordHash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	now := s.now()
	session := EditorSession{
		ID:        s.tokenGenerator(),
		Token:     s.tokenGenerator(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	s.mu.Lock()
	s.pruneExpiredLocked(now)
	s.entries[session.Token] = &sessionEntry{session: session, workspace: NewWorkspace()}
	s.mu.Unlock()

	result = AuthenticateResult{Session: session}
	return
}

// Resolve validates a session token and returns the session together with
// the workspace it owns.
func (s *SessionService) Resolve(ctx context.Context, token string) (session EditorSession, workspace *Workspace, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "Resolve", "token_provided", trimmed != "")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "session resolution failed", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if trimmed == "" {
		err = ErrUnauthorized
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[trimmed]
	if !ok {
		err = ErrUnauthorized
		return
	}

	now := s.now()
	if entry.session.RevokedAt != nil && !entry.session.RevokedAt.IsZero() {
		err = ErrSessionRevoked
		return
	}
	if !entry.session.ExpiresAt.IsZero() && !entry.session.ExpiresAt.After(now) {
		err = ErrSessionExpired
		return
	}

	session = entry.session
	workspace = entry.workspace
	return
}

// Revoke invalidates a session token and releases its workspace.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if s == nil {
		return fmt.Errorf("SessionService is nil")
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "Revoke", "token_provided", trimmed != "")

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[trimmed]
	if !ok {
		logger.ErrorContext(ctx, "failed to revoke session", "error", ErrUnauthorized, "error_kind", ErrorKind(ErrUnauthorized))
		return ErrUnauthorized
	}

	now := s.now()
	entry.session.RevokedAt = &now
	delete(s.entries, trimmed)
	s.pruneExpiredLocked(now)
	logger.InfoContext(ctx, "session revoked")
	return nil
}

// PruneExpired drops every session whose validity window has passed.
func (s *SessionService) PruneExpired(ctx context.Context) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneExpiredLocked(s.now())
}

func (s *SessionService) pruneExpiredLocked(now time.Time) int {
	pruned := 0
	for token, entry := range s.entries {
		if !entry.session.ExpiresAt.IsZero() && !entry.session.ExpiresAt.After(now) {
			delete(s.entries, token)
			pruned++
		}
	}
	return pruned
}
