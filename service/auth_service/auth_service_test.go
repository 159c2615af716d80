package auth_service

import (
	"errors"
	"testing"

	"expo-update-service/storage"
)

func newTestService(t *testing.T) (*AuthService, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage(storage.NewURLSigner("http://localhost:7290", "test-key"))
	return NewAuthService(store, "updates", "auth_token"), store
}

func TestInitializeTokenOnce(t *testing.T) {
	svc, store := newTestService(t)

	token, err := svc.InitializeToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 32 {
		t.Fatalf("expected 32-char hex token, got %q", token)
	}

	// The plaintext token is never stored, only a digest.
	digest, _, err := store.ReadObject("updates/auth_token")
	if err != nil {
		t.Fatalf("expected digest object: %v", err)
	}
	if string(digest) == token {
		t.Fatalf("plaintext token stored at rest")
	}

	if _, err := svc.InitializeToken(); !errors.Is(err, ErrTokenAlreadyInitialized) {
		t.Fatalf("expected ErrTokenAlreadyInitialized, got %v", err)
	}
}

func TestVerifyBearer(t *testing.T) {
	svc, _ := newTestService(t)
	token, err := svc.InitializeToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.VerifyBearer("Bearer " + token); err != nil {
		t.Fatalf("expected valid token accepted, got %v", err)
	}

	tests := []struct {
		name  string
		value string
	}{
		{"empty header", ""},
		{"no scheme", token},
		{"empty token", "Bearer "},
		{"wrong token", "Bearer deadbeefdeadbeefdeadbeefdeadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.VerifyBearer(tt.value); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestVerifyBearerWithoutInitialization(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.VerifyBearer("Bearer sometoken"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
