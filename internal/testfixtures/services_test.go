package testfixtures

import (
	"context"
	"testing"
	"time"

	"github.com/example/resort-points-editor/internal/application"
)

func TestServiceFactoryNewSessionService(t *testing.T) {
	factory := NewServiceFactory(WithIDGenerator(NewIDGenerator("token")))

	verify := func(hash, password string) error {
		if hash == "hash:"+password {
			return nil
		}
		return application.ErrInvalidCredentials
	}
	svc := factory.NewSessionService(SessionServiceDeps{
		PasswordHash:   "hash:opensesame",
		PasswordVerify: verify,
		SessionTTL:     time.Hour,
	})

	result, err := svc.Authenticate(context.Background(), application.AuthenticateParams{Password: "opensesame"})
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}

	if result.Session.ID != "token-1" {
		t.Fatalf("expected generated session id token-1, got %q", result.Session.ID)
	}
	if result.Session.Token != "token-2" {
		t.Fatalf("expected generated token token-2, got %q", result.Session.Token)
	}
	if !result.Session.CreatedAt.Equal(factory.Clock.Current()) {
		t.Fatalf("expected timestamp %v, got %v", factory.Clock.Current(), result.Session.CreatedAt)
	}
	if want := factory.Clock.Current().Add(time.Hour); !result.Session.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, result.Session.ExpiresAt)
	}
}

func TestDocumentFixtureIsValid(t *testing.T) {
	doc := NewDocumentFixture()

	if len(doc.Resorts) != 1 {
		t.Fatalf("expected 1 resort, got %d", len(doc.Resorts))
	}
	year, ok := doc.Resorts[0].Years["2025"]
	if !ok {
		t.Fatalf("expected the fixture resort to carry year 2025")
	}
	if len(year.Seasons) != 1 || len(year.Holidays) != 1 {
		t.Fatalf("expected 1 season and 1 holiday, got %d and %d", len(year.Seasons), len(year.Holidays))
	}
}
