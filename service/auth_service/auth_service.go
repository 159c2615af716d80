package auth_service

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"expo-update-service/storage"
	"expo-update-service/tool"
)

// AuthService issues and verifies the admin bearer token guarding all
// mutating endpoints. Only a bcrypt digest of the token is stored; the
// plaintext is returned exactly once at initialization.
type AuthService struct {
	store        storage.Storage
	rootFolder   string
	authFileName string
}

// NewAuthService create an auth service instance
func NewAuthService(store storage.Storage, rootFolder, authFileName string) *AuthService {
	return &AuthService{
		store:        store,
		rootFolder:   rootFolder,
		authFileName: authFileName,
	}
}

var (
	// ErrUnauthorized bearer token missing or mismatched
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenAlreadyInitialized the auth token object already exists
	ErrTokenAlreadyInitialized = errors.New("auth token already initialized")
)

// tokenByteLength random bytes per generated token (hex-encoded to double
// that many characters).
const tokenByteLength = 16

func (s *AuthService) authFilePath() string {
	return s.rootFolder + "/" + s.authFileName
}

// InitializeToken generates the admin token and stores its digest. It
// refuses to overwrite an existing token object.
func (s *AuthService) InitializeToken() (string, error) {
	if _, err := s.store.StatObject(s.authFilePath()); err == nil {
		return "", ErrTokenAlreadyInitialized
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", err
	}

	token, err := tool.GenerateToken(tokenByteLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	if err := s.store.WriteObject(s.authFilePath(), digest, "text/plain"); err != nil {
		return "", fmt.Errorf("failed to store token digest: %w", err)
	}
	return token, nil
}

// VerifyBearer checks an Authorization header value against the stored
// token digest. It must be called before any storage mutation.
func (s *AuthService) VerifyBearer(authorization string) error {
	if authorization == "" {
		return ErrUnauthorized
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return ErrUnauthorized
	}
	token := parts[1]

	digest, _, err := s.store.ReadObject(s.authFilePath())
	if err != nil {
		return ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword(digest, []byte(token)) != nil {
		return ErrUnauthorized
	}
	return nil
}
