package storage

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestSignerRoundTrip(t *testing.T) {
	signer := NewURLSigner("http://localhost:7290", "secret")

	signed, err := signer.Sign("updates/app-ios/1.0.0/100/bundles/ios.js", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(signed, "http://localhost:7290/assets/updates/app-ios/1.0.0/100/bundles/ios.js?") {
		t.Fatalf("unexpected url shape: %s", signed)
	}

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("failed to parse signed url: %v", err)
	}
	expires, err := strconv.ParseInt(u.Query().Get("expires"), 10, 64)
	if err != nil {
		t.Fatalf("failed to parse expires: %v", err)
	}

	if err := signer.Verify("updates/app-ios/1.0.0/100/bundles/ios.js", expires, u.Query().Get("signature")); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
}

func TestSignerRejectsTamperedPath(t *testing.T) {
	signer := NewURLSigner("http://localhost:7290", "secret")
	expires := time.Now().Add(time.Minute).Unix()

	signed, err := signer.Sign("updates/a/file", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ := url.Parse(signed)

	if err := signer.Verify("updates/b/file", expires, u.Query().Get("signature")); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestSignerRejectsExpired(t *testing.T) {
	signer := NewURLSigner("http://localhost:7290", "secret")

	if err := signer.Verify("updates/a/file", time.Now().Add(-time.Minute).Unix(), "whatever"); !errors.Is(err, ErrURLExpired) {
		t.Fatalf("expected ErrURLExpired, got %v", err)
	}
}

func TestSignerDifferentKeysDisagree(t *testing.T) {
	a := NewURLSigner("http://localhost:7290", "key-a")
	b := NewURLSigner("http://localhost:7290", "key-b")

	signed, err := a.Sign("updates/a/file", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ := url.Parse(signed)
	expires, _ := strconv.ParseInt(u.Query().Get("expires"), 10, 64)

	if err := b.Verify("updates/a/file", expires, u.Query().Get("signature")); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature across keys, got %v", err)
	}
}
