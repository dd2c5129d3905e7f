// Package googleauth verifies Google OAuth ID tokens against the tokeninfo
// endpoint. The API guard uses it to validate the session token the browser
// obtained from the Google sign-in flow.
package googleauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/anupkhare/finreport/internal/config"
)

// Verifier validates an ID token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*TokenInfo, error)
}

// TokenInfo mirrors the claims returned by the tokeninfo endpoint.
type TokenInfo struct {
	Audience      string `json:"aud"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Expiry        string `json:"exp"`
}

type apiError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Client is a resty-backed Verifier.
type Client struct {
	httpClient *resty.Client
	clientID   string
}

// NewClient builds a verifier for tokens issued to the given OAuth client ID.
func NewClient(cfg config.GoogleConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.AuthBaseURL, "/")).
		SetTimeout(10 * time.Second)

	return &Client{
		httpClient: restyClient,
		clientID:   cfg.OAuthClientID,
	}
}

// Verify calls the tokeninfo endpoint and checks that the token was issued
// for this application.
func (c *Client) Verify(ctx context.Context, idToken string) (*TokenInfo, error) {
	if idToken == "" {
		return nil, fmt.Errorf("empty id token")
	}

	info := new(TokenInfo)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("id_token", idToken).
		SetResult(info).
		SetError(apiErr).
		Get("/tokeninfo")
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.ErrorDescription
		if message == "" {
			message = apiErr.Error
		}
		return nil, fmt.Errorf("tokeninfo rejected token: status=%d, message=%s", resp.StatusCode(), message)
	}

	if c.clientID != "" && info.Audience != c.clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}

	return info, nil
}
