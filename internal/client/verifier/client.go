// Package verifier is the HTTP client for the backend verifier service: it
// obtains sign-in challenges, submits signatures for verification, and
// handles the email/password authentication endpoints.
package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/decentrix/decentrix/internal/common"
)

// Client talks to a single verifier endpoint. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New builds a Client for baseURL. A nil httpc gets a client with a liberal
// default timeout.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// Profile is the bearer-authenticated user record from /users/me.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName renders the profile's human-readable name.
func (p *Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return "User"
	}
	return name
}

// Challenge requests a sign-in challenge for address. The response body is
// the challenge message itself and is treated as opaque: it must be signed
// verbatim and is never parsed on the client.
func (c *Client) Challenge(ctx context.Context, address, domain, uri string) (string, error) {
	body, err := json.Marshal(map[string]string{"address": address, "domain": domain, "uri": uri})
	if err != nil {
		return "", err
	}

	resp, err := c.post(ctx, "/metamask/message", body, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("challenge request failed: status %d", resp.StatusCode)
	}

	message, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("challenge read error: %w", err)
	}
	if len(message) == 0 {
		return "", fmt.Errorf("challenge request failed: empty message")
	}
	return string(message), nil
}

// Verify submits {message, signature} and returns the verifier's explicit
// success flag. A false return with nil error means the signature was
// examined and rejected; an error means the verifier could not be consulted.
func (c *Client) Verify(ctx context.Context, message string, signature []byte) (bool, error) {
	body, err := json.Marshal(map[string]string{
		"message":   message,
		"signature": hexutil.Encode(signature),
	})
	if err != nil {
		return false, err
	}

	resp, err := c.post(ctx, "/metamask/verify", body, "")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return false, fmt.Errorf("verification failed: status %d", resp.StatusCode)
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("verification decode error: %w", err)
	}
	return out.Success, nil
}

// SignIn authenticates with email and password and returns a bearer token.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	return c.tokenRequest(ctx, "/auth/signin", body)
}

// SignUpInput holds the registration form fields.
type SignUpInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SignUp registers a new account and returns a bearer token.
func (c *Client) SignUp(ctx context.Context, input SignUpInput) (string, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return c.tokenRequest(ctx, "/auth/signup", body)
}

// Me fetches the profile for the given bearer token.
func (c *Client) Me(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, common.ErrorUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile request failed: status %d", resp.StatusCode)
	}

	profile := &Profile{}
	if err := json.NewDecoder(resp.Body).Decode(profile); err != nil {
		return nil, fmt.Errorf("profile decode error: %w", err)
	}
	return profile, nil
}

func (c *Client) tokenRequest(ctx context.Context, path string, body []byte) (string, error) {
	resp, err := c.post(ctx, path, body, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", common.ErrorUnauthorized
	}
	if resp.StatusCode == http.StatusConflict {
		return "", common.ErrorConflict
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("auth request failed: status %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("auth decode error: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("auth request failed: no token issued")
	}
	return out.AccessToken, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verifier request error: %w", err)
	}
	return resp, nil
}
