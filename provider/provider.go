package provider

import "context"

// Message represents a role-tagged message in a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the interface streaming completion implementations must satisfy.
// Stream invokes fn once per text increment, in emission order, and returns
// the first error from the transport, the API, or fn itself. Increments may
// be empty strings; callers decide whether to skip them.
type Provider interface {
	Stream(ctx context.Context, messages []Message, fn func(delta string) error) error
}
