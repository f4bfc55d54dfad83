package idbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// RESTIdentityBridge implements IdentityBridge against an external
// identity service exposing a JSON account API:
//
//	GET    /accounts?login={login}
//	POST   /accounts
//	PUT    /accounts/{ref}
//	PUT    /accounts/{ref}/secret
//	DELETE /accounts/{ref}
//
// The service token passed to the constructor is the elevated capability
// that authorizes account mutations regardless of the calling user's own
// permissions. It is sent as a bearer token on every request; no ambient
// context is consulted.
type RESTIdentityBridge struct {
	baseURL      string
	serviceToken string
	client       *http.Client
}

// RESTBridgeOption configures a RESTIdentityBridge.
type RESTBridgeOption func(*RESTIdentityBridge)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) RESTBridgeOption {
	return func(b *RESTIdentityBridge) {
		b.client = client
	}
}

// NewRESTIdentityBridge creates a bridge for the identity service at
// baseURL, authorized by serviceToken.
func NewRESTIdentityBridge(baseURL, serviceToken string, opts ...RESTBridgeOption) *RESTIdentityBridge {
	b := &RESTIdentityBridge{
		baseURL:      baseURL,
		serviceToken: serviceToken,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

type accountPayload struct {
	Ref AccountRef `json:"ref"`
	AccountSnapshot
	Secret string `json:"secret,omitempty"`
}

// FindByLogin looks up an account by login.
func (b *RESTIdentityBridge) FindByLogin(ctx context.Context, login string) (AccountRef, bool, error) {
	endpoint := fmt.Sprintf("%s/accounts?login=%s", b.baseURL, url.QueryEscape(login))
	resp, err := b.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, unexpectedStatus(resp)
	}

	var payload accountPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("failed to decode account: %w", err)
	}
	if payload.Ref == "" {
		return "", false, nil
	}
	return payload.Ref, true, nil
}

// CreateAccount provisions a new account.
func (b *RESTIdentityBridge) CreateAccount(ctx context.Context, snapshot AccountSnapshot, secret string) (AccountRef, error) {
	body := accountPayload{
		AccountSnapshot: snapshot,
		Secret:          secret,
	}

	resp, err := b.do(ctx, http.MethodPost, b.baseURL+"/accounts", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", unexpectedStatus(resp)
	}

	var payload accountPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode created account: %w", err)
	}
	if payload.Ref == "" {
		return "", fmt.Errorf("identity service returned no account ref")
	}
	return payload.Ref, nil
}

// UpdateAccount pushes snapshot fields onto an existing account.
func (b *RESTIdentityBridge) UpdateAccount(ctx context.Context, ref AccountRef, snapshot AccountSnapshot) error {
	endpoint := fmt.Sprintf("%s/accounts/%s", b.baseURL, url.PathEscape(string(ref)))
	resp, err := b.do(ctx, http.MethodPut, endpoint, accountPayload{AccountSnapshot: snapshot})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus(resp)
	}
	return nil
}

// SetAccountSecret replaces the account's credential.
func (b *RESTIdentityBridge) SetAccountSecret(ctx context.Context, ref AccountRef, secret string) error {
	endpoint := fmt.Sprintf("%s/accounts/%s/secret", b.baseURL, url.PathEscape(string(ref)))
	body := struct {
		Secret string `json:"secret"`
	}{Secret: secret}

	resp, err := b.do(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus(resp)
	}
	return nil
}

// DeleteAccount removes the account.
func (b *RESTIdentityBridge) DeleteAccount(ctx context.Context, ref AccountRef) error {
	endpoint := fmt.Sprintf("%s/accounts/%s", b.baseURL, url.PathEscape(string(ref)))
	resp, err := b.do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus(resp)
	}
	return nil
}

func (b *RESTIdentityBridge) do(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+b.serviceToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		slog.Error("Identity service request failed", "method", method, "endpoint", endpoint, "err", err)
		return nil, fmt.Errorf("identity service request failed: %w", err)
	}
	return resp, nil
}

func unexpectedStatus(resp *http.Response) error {
	// Drain a little of the body for context; never expose it to API callers.
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("identity service returned status %d: %s", resp.StatusCode, string(data))
}
