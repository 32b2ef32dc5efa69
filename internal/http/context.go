package http

import (
	"context"
	"log/slog"

	"github.com/example/resort-points-editor/internal/application"
	"github.com/example/resort-points-editor/internal/logging"
)

type contextKey string

const (
	sessionContextKey   contextKey = "session"
	workspaceContextKey contextKey = "workspace"
	resortIDContextKey  contextKey = "resort_id"
)

// ContextWithSession returns a derived context containing the authenticated editor session.
func ContextWithSession(ctx context.Context, session application.EditorSession) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext extracts the authenticated editor session from context if available.
func SessionFromContext(ctx context.Context) (application.EditorSession, bool) {
	session, ok := ctx.Value(sessionContextKey).(application.EditorSession)
	return session, ok
}

// ContextWithWorkspace injects the workspace owned by the authenticated session.
func ContextWithWorkspace(ctx context.Context, ws *application.Workspace) context.Context {
	return context.WithValue(ctx, workspaceContextKey, ws)
}

// WorkspaceFromContext extracts the session's workspace from context if available.
func WorkspaceFromContext(ctx context.Context) (*application.Workspace, bool) {
	ws, ok := ctx.Value(workspaceContextKey).(*application.Workspace)
	return ws, ok && ws != nil
}

// ContextWithResortID injects the resort identifier resolved from the request path.
func ContextWithResortID(ctx context.Context, resortID string) context.Context {
	return context.WithValue(ctx, resortIDContextKey, resortID)
}

// ResortIDFromContext extracts a resort identifier previously associated with the context.
func ResortIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(resortIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request-scoped logger to the context. The
// logger travels on the shared logging key so service-layer logging picks it
// up too.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext returns the request-scoped logger, or nil when none is attached.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
