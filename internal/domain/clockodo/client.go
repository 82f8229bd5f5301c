package clockodo

import "context"

// Client is the versioned resource client. Implementations route each family
// to its API version and return normalized envelopes.
type Client interface {
	// Fetch reads a family. Collection families are normalized to their plural key.
	Fetch(ctx context.Context, family Family, params Params) (Envelope, error)
	Create(ctx context.Context, family Family, body map[string]any) (Envelope, error)
	Update(ctx context.Context, family Family, id int, body map[string]any) (Envelope, error)
	Delete(ctx context.Context, family Family, id int) (Envelope, error)

	// APIUser is the login the client authenticates as.
	APIUser() string
}
