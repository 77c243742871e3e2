// Package challenge obtains anti-automation proof tokens for sensitive
// operations (sign-up, sign-in, checkout). Providers never fail the caller:
// when the challenge service is unreachable or errors, the token is simply
// empty and the operation proceeds without proof.
package challenge

import (
	"context"

	"github.com/mkaleva/ornata/internal/logging"
)

// Provider yields a proof token for the named action. An empty token means
// "proceed without proof".
type Provider interface {
	Token(ctx context.Context, action string) string
}

// Disabled is the no-challenge implementation selected when no challenge
// service is configured.
type Disabled struct{}

func (Disabled) Token(ctx context.Context, action string) string { return "" }

// New selects the provider implementation at startup: HTTP-backed when a
// challenge service URL is configured, Disabled otherwise.
func New(url, siteKey string, log logging.Logger) Provider {
	if url == "" {
		return Disabled{}
	}
	return NewHTTPProvider(url, siteKey, log)
}
