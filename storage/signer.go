package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// URLSigner issues and verifies HMAC-signed, time-limited asset URLs.
// Signed URLs have the shape:
//
//	<base>/assets/<object path>?expires=<unix seconds>&signature=<hex hmac>
type URLSigner struct {
	baseURL string
	secret  []byte
}

// NewURLSigner create a URL signer for the given public base URL and key
func NewURLSigner(baseURL, secret string) *URLSigner {
	return &URLSigner{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
	}
}

// Sign return a signed download URL for path valid for ttl
func (s *URLSigner) Sign(path string, ttl time.Duration) (string, error) {
	expires := time.Now().Add(ttl).Unix()
	sig := s.signature(path, expires)
	return fmt.Sprintf("%s/assets/%s?expires=%d&signature=%s", s.baseURL, path, expires, sig), nil
}

// Verify check a presented signature and expiry for path
func (s *URLSigner) Verify(path string, expires int64, signature string) error {
	if time.Now().Unix() > expires {
		return ErrURLExpired
	}
	want := s.signature(path, expires)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func (s *URLSigner) signature(path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
