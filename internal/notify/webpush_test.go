package notify

import (
	"encoding/base64"
	"log/slog"
	"testing"

	"github.com/calebriley/daybook/internal/store"
)

func testWebPush(t *testing.T, cfg Config) (*WebPush, store.Subscriptions) {
	t.Helper()
	subs := store.NewMemory().Subscriptions
	return NewWebPush(cfg, subs, slog.Default()), subs
}

func TestWebPushUnsupportedWithoutKeys(t *testing.T) {
	w, _ := testWebPush(t, Config{})

	if w.Supported() {
		t.Error("expected unsupported without VAPID keys")
	}
	perm, err := w.Permission()
	if err != nil {
		t.Fatalf("permission: %v", err)
	}
	if perm != PermissionDenied {
		t.Errorf("permission = %q, want %q", perm, PermissionDenied)
	}

	// Show must be a silent no-op
	if err := w.Show("title", "body", "tag"); err != nil {
		t.Errorf("show without keys: %v", err)
	}
}

func TestWebPushPermissionFollowsSubscriptions(t *testing.T) {
	w, subs := testWebPush(t, Config{VAPIDPublicKey: "pub", VAPIDPrivateKey: "priv"})

	if !w.Supported() {
		t.Fatal("expected supported with VAPID keys")
	}

	perm, err := w.Permission()
	if err != nil {
		t.Fatalf("permission: %v", err)
	}
	if perm != PermissionDefault {
		t.Errorf("permission with no subscribers = %q, want %q", perm, PermissionDefault)
	}

	if _, err := subs.Create("https://push.example/abc", "k", "a", "laptop"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	perm, err = w.Permission()
	if err != nil {
		t.Fatalf("permission: %v", err)
	}
	if perm != PermissionGranted {
		t.Errorf("permission with a subscriber = %q, want %q", perm, PermissionGranted)
	}

	// RequestPermission cannot prompt server-side; it reports current state
	perm, err = w.RequestPermission()
	if err != nil {
		t.Fatalf("request permission: %v", err)
	}
	if perm != PermissionGranted {
		t.Errorf("request permission = %q, want %q", perm, PermissionGranted)
	}
}

func TestWebPushShowNoopWithoutSubscribers(t *testing.T) {
	w, _ := testWebPush(t, Config{VAPIDPublicKey: "pub", VAPIDPrivateKey: "priv"})

	// Permission is default (no subscribers), so no send is attempted
	if err := w.Show("title", "body", "tag"); err != nil {
		t.Errorf("show without subscribers: %v", err)
	}
}

func TestGenerateVAPIDKeys(t *testing.T) {
	pub, priv, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate VAPID keys: %v", err)
	}

	if pub == "" {
		t.Error("expected non-empty public key")
	}
	if priv == "" {
		t.Error("expected non-empty private key")
	}

	// Public key should be base64url-encoded, 65 bytes uncompressed P-256 point
	pubBytes, err := base64.RawURLEncoding.DecodeString(pub)
	if err != nil {
		t.Fatalf("decode public key: %v", err)
	}
	if len(pubBytes) != 65 {
		t.Errorf("public key length = %d, want 65", len(pubBytes))
	}

	privBytes, err := base64.RawURLEncoding.DecodeString(priv)
	if err != nil {
		t.Fatalf("decode private key: %v", err)
	}
	if len(privBytes) == 0 || len(privBytes) > 32 {
		t.Errorf("private key length = %d, want at most 32", len(privBytes))
	}

	// Generate again — should be different
	pub2, _, _ := GenerateVAPIDKeys()
	if pub == pub2 {
		t.Error("expected different keys on second generation")
	}
}
