package notify

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/calebriley/daybook/internal/model"
	"github.com/calebriley/daybook/internal/store"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrExpired is returned when a push subscription is no longer valid (410 Gone).
var ErrExpired = errors.New("push subscription expired")

// Payload is the JSON sent to the push service.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag,omitempty"`
}

// Config holds VAPID configuration.
type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
}

// WebPush delivers notifications over the Web Push protocol to every
// subscribed browser. Supported means VAPID keys are configured; permission
// is granted once at least one device has subscribed.
type WebPush struct {
	publicKey  string
	privateKey string
	subs       store.Subscriptions
	logger     *slog.Logger
}

func NewWebPush(cfg Config, subs store.Subscriptions, logger *slog.Logger) *WebPush {
	return &WebPush{
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
		subs:       subs,
		logger:     logger,
	}
}

// VAPIDPublicKey returns the VAPID public key for client-side subscription.
func (w *WebPush) VAPIDPublicKey() string {
	return w.publicKey
}

func (w *WebPush) Supported() bool {
	return w.publicKey != "" && w.privateKey != ""
}

func (w *WebPush) Permission() (Permission, error) {
	if !w.Supported() {
		return PermissionDenied, nil
	}
	subs, err := w.subs.List()
	if err != nil {
		return PermissionDefault, fmt.Errorf("list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return PermissionDefault, nil
	}
	return PermissionGranted, nil
}

// RequestPermission cannot prompt from the server side; the browser grants
// permission by subscribing. It just reports the current state.
func (w *WebPush) RequestPermission() (Permission, error) {
	return w.Permission()
}

// Show sends the payload to every subscription. Per-subscription failures are
// logged and skipped; expired endpoints are pruned. It no-ops unless
// permission is granted.
func (w *WebPush) Show(title, body, tag string) error {
	perm, err := w.Permission()
	if err != nil {
		return err
	}
	if perm != PermissionGranted {
		return nil
	}

	subs, err := w.subs.List()
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}

	payload := Payload{Title: title, Body: body, Tag: tag}
	for _, sub := range subs {
		if err := w.send(&sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := w.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
					w.logger.Error("prune expired subscription", "endpoint_id", sub.ID, "error", err)
				}
				continue
			}
			w.logger.Error("send push", "endpoint_id", sub.ID, "error", err)
		}
	}
	return nil
}

func (w *WebPush) send(sub *model.PushSubscription, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := webpush.SendNotification(data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		VAPIDPublicKey:  w.publicKey,
		VAPIDPrivateKey: w.privateKey,
		Subscriber:      "mailto:noreply@daybook.local",
		TTL:             86400,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		return ErrExpired
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}

	return nil
}

// GenerateVAPIDKeys generates a new ECDSA P-256 key pair for VAPID.
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate ECDSA key: %w", err)
	}

	pubBytes := elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y)
	publicKey = base64.RawURLEncoding.EncodeToString(pubBytes)
	privateKey = base64.RawURLEncoding.EncodeToString(key.D.Bytes())

	return publicKey, privateKey, nil
}
