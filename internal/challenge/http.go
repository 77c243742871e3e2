package challenge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/mkaleva/ornata/internal/logging"
)

// HTTPProvider requests a proof token from an external challenge service.
// Every failure degrades to an empty token.
type HTTPProvider struct {
	url        string
	siteKey    string
	httpClient *http.Client
	log        logging.Logger
}

var _ Provider = (*HTTPProvider)(nil)

func NewHTTPProvider(url, siteKey string, log logging.Logger) *HTTPProvider {
	return &HTTPProvider{
		url:        url,
		siteKey:    siteKey,
		httpClient: &http.Client{},
		log:        log,
	}
}

func (p *HTTPProvider) Token(ctx context.Context, action string) string {
	payload, err := json.Marshal(map[string]string{
		"siteKey": p.siteKey,
		"action":  action,
	})
	if err != nil {
		p.log.Warn(ctx, "challenge request encode failed, proceeding without token", "error", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		p.log.Warn(ctx, "challenge request failed, proceeding without token", "error", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.Warn(ctx, "challenge service unreachable, proceeding without token", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.Warn(ctx, "challenge service error, proceeding without token", "status", resp.StatusCode)
		return ""
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		p.log.Warn(ctx, "challenge response decode failed, proceeding without token", "error", err)
		return ""
	}

	return result.Token
}
