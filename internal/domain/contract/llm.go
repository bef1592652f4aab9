package contract

import "context"

// ChatClient relays a user question to the hosted LLM and returns the
// generated reply.
type ChatClient interface {
	Complete(ctx context.Context, userText string) (string, error)
}
