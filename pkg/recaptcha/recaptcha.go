package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultEndpoint is the Google siteverify endpoint.
const DefaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"

var (
	// ErrMissingToken indicates the form did not include a captcha response.
	ErrMissingToken = errors.New("captcha token is required")
	// ErrVerificationFailed indicates the provider rejected the token.
	ErrVerificationFailed = errors.New("captcha verification failed")
)

// Verifier checks a captcha response token.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Client verifies reCAPTCHA tokens against the siteverify endpoint.
type Client struct {
	httpClient *http.Client
	secret     string
	endpoint   string
	logger     zerolog.Logger
}

// New constructs a reCAPTCHA client.
func New(secret string, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		secret:     secret,
		endpoint:   DefaultEndpoint,
		logger:     logger.With().Str("component", "recaptcha").Logger(),
	}
}

// WithEndpoint overrides the verification endpoint, mainly for tests.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to the provider and returns ErrVerificationFailed
// when the provider does not confirm it.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingToken
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("captcha endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode captcha response: %w", err)
	}

	if !result.Success {
		c.logger.Warn().Strs("error_codes", result.ErrorCodes).Msg("captcha verification rejected")
		return ErrVerificationFailed
	}

	return nil
}
