package notify

// NoticeType identifies the kind of notice being delivered.
type NoticeType string

const (
	// TempSecretNotice carries a freshly generated temporary secret.
	// It is sent at most once per credential-generating operation; the
	// plaintext is never stored anywhere else.
	TempSecretNotice NoticeType = "temp_secret"
)

// Notice is a single message to a recipient.
type Notice struct {
	To      string            // Recipient identifier (email address)
	Subject string            // Subject line
	Body    string            // Message content
	Data    map[string]string // Additional metadata
}

// Notifier delivers notices. Implementations must treat delivery as
// best-effort; the caller logs failures and never retries.
type Notifier interface {
	Send(noticeType NoticeType, notice Notice) error
}
