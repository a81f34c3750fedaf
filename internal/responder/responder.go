package responder

import "context"

// Responder converts user text into a reply. Anticipated provider failures
// (missing credential, invalid credential, rate limits, malformed upstream
// responses, network trouble) come back as human-readable reply strings so
// the caller can render them as ordinary bot messages. A non-nil error
// means the call itself fell over unexpectedly.
type Responder interface {
	Respond(ctx context.Context, text string) (string, error)
}

// CredentialSource supplies the API key for a remote responder. The key is
// read once per request so a freshly saved credential takes effect
// immediately.
type CredentialSource interface {
	APIKey() string
}

// CredentialFunc adapts a plain function to a CredentialSource.
type CredentialFunc func() string

func (f CredentialFunc) APIKey() string {
	return f()
}
