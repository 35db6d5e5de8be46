package cmr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/glorpus-work/podaac-subset/internal/logger"
	"github.com/glorpus-work/podaac-subset/pkg/auth"
	"github.com/glorpus-work/podaac-subset/pkg/errors"
	pkghttp "github.com/glorpus-work/podaac-subset/pkg/http"
)

// maxTokenLimitCode is returned by the token endpoint when the user already holds
// the maximum number of tokens.
const maxTokenLimitCode = "max_token_limit"

type tokenResponse struct {
	AccessToken    string `json:"access_token"`
	TokenType      string `json:"token_type,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	Error          string `json:"error,omitempty"`
	Description    string `json:"error_description,omitempty"`
}

// TokenManager creates, lists and deletes CMR tokens for one user.
type TokenManager struct {
	client   pkghttp.Doer
	tokenURL string
	auth     auth.Authenticator
}

// NewTokenManager returns a manager for the token collection at tokenURL.
// Every request carries Basic credentials from cred.
func NewTokenManager(client pkghttp.Doer, tokenURL string, cred auth.Credential) *TokenManager {
	return &TokenManager{
		client:   client,
		tokenURL: tokenURL,
		auth:     cred.BasicAuth(),
	}
}

// Acquire creates a new token. When the account is at its token limit, the first
// existing token is reused instead.
func (m *TokenManager) Acquire(ctx context.Context) (string, error) {
	body, _, err := m.do(ctx, http.MethodPost, m.tokenURL)
	if err != nil {
		return "", errors.Wrap(errors.ErrTokenRequest, err.Error())
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", errors.Wrapf(errors.ErrTokenRequest, "malformed token response: %v", err)
	}

	if tr.Error == maxTokenLimitCode {
		logger.Info("Max tokens acquired from URS. Using existing token")
		tokens, err := m.List(ctx)
		if err != nil {
			return "", errors.Wrap(errors.ErrMaxTokenLimit, err.Error())
		}
		if len(tokens) == 0 {
			return "", errors.Wrap(errors.ErrNoReusableToken, errors.ErrMaxTokenLimit.Error())
		}
		return tokens[0], nil
	}
	if tr.Error != "" {
		return "", errors.Wrapf(errors.ErrTokenRequest, "%s: %s", tr.Error, tr.Description)
	}
	if tr.AccessToken == "" {
		return "", errors.ErrTokenMissing
	}
	return tr.AccessToken, nil
}

// List returns the access_token of every token the user holds.
// The slice is empty, never nil, when an error is returned.
func (m *TokenManager) List(ctx context.Context) ([]string, error) {
	tokens := []string{}

	body, status, err := m.do(ctx, http.MethodGet, m.tokenURL)
	if err != nil {
		return tokens, errors.Wrap(errors.ErrTokenRequest, err.Error())
	}
	if status != http.StatusOK {
		return tokens, errors.Wrapf(errors.ErrTokenRequest, "unexpected status code: %d", status)
	}

	var items []tokenResponse
	if err := json.Unmarshal(body, &items); err != nil {
		return tokens, errors.Wrapf(errors.ErrTokenRequest, "malformed token list: %v", err)
	}
	for _, it := range items {
		tokens = append(tokens, it.AccessToken)
	}
	return tokens, nil
}

// Delete removes token. Only HTTP 204 counts as success. An empty token is a no-op.
func (m *TokenManager) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	target, err := url.JoinPath(m.tokenURL, token)
	if err != nil {
		return errors.Wrap(errors.ErrTokenDelete, err.Error())
	}

	_, status, err := m.do(ctx, http.MethodDelete, target)
	if err != nil {
		return errors.Wrap(errors.ErrTokenDelete, err.Error())
	}
	if status != http.StatusNoContent {
		return errors.Wrapf(errors.ErrTokenDelete, "unexpected status code: %d", status)
	}
	return nil
}

func (m *TokenManager) do(ctx context.Context, method, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if err := m.auth.Apply(req); err != nil {
		return nil, 0, err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
