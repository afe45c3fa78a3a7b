// Package notify is the outbound notification port. The reminder evaluator
// talks to a Notifier without knowing how (or whether) alerts reach the user.
package notify

// Permission mirrors the browser Notification permission states.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notifier surfaces notifications to the user. Show is fire-and-forget: it
// must be a no-op when unsupported or permission is not granted, and callers
// get no delivery confirmation. The tag is a deduplication key so repeated
// fires for the same source collapse into one visible alert.
type Notifier interface {
	Supported() bool
	Permission() (Permission, error)
	RequestPermission() (Permission, error)
	Show(title, body, tag string) error
}
