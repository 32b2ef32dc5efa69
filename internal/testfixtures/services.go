package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/resort-points-editor/internal/application"
	"github.com/example/resort-points-editor/internal/persistence"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// SessionServiceDeps captures dependencies for constructing a session service.
type SessionServiceDeps struct {
	PasswordHash   string
	PasswordVerify application.PasswordVerifier
	TokenGenerator func() string
	Now            func() time.Time
	SessionTTL     time.Duration
	Logger         *slog.Logger
}

// NewSessionService builds a session service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewSessionService(deps SessionServiceDeps) *application.SessionService {
	token := deps.TokenGenerator
	if token == nil {
		token = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewSessionServiceWithLogger(
		deps.PasswordHash,
		deps.PasswordVerify,
		token,
		now,
		deps.SessionTTL,
		deps.Logger,
	)
}

// EditorServiceDeps captures dependencies for constructing an editor service.
type EditorServiceDeps struct {
	DefaultYears []string
	Logger       *slog.Logger
}

// NewEditorService builds an editor service using the supplied dependencies.
func (f *ServiceFactory) NewEditorService(deps EditorServiceDeps) *application.EditorService {
	return application.NewEditorServiceWithLogger(deps.DefaultYears, deps.Logger)
}

// DocumentServiceDeps captures dependencies for constructing a document service.
type DocumentServiceDeps struct {
	Store  persistence.DocumentStore
	Now    func() time.Time
	Logger *slog.Logger
}

// NewDocumentService builds a document service using the supplied dependencies.
func (f *ServiceFactory) NewDocumentService(deps DocumentServiceDeps) *application.DocumentService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewDocumentServiceWithLogger(deps.Store, now, deps.Logger)
}

// SummaryServiceDeps captures dependencies for constructing a summary service.
type SummaryServiceDeps struct {
	BaseYear string
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewSummaryService builds a summary service using the supplied dependencies.
func (f *ServiceFactory) NewSummaryService(deps SummaryServiceDeps) *application.SummaryService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewSummaryServiceWithLogger(deps.BaseYear, now, deps.Logger)
}
