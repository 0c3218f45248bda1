package esign

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Envelope creation payload sent to the provider
type CreateEnvelopeInput struct {
	TemplateKey    string `json:"template_key"`
	Title          string `json:"title"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
}

// Provider speaks to the external e-signature service
type Provider interface {
	CreateEnvelope(ctx context.Context, input CreateEnvelopeInput) (string, error)
	VoidEnvelope(ctx context.Context, envelopeID string) error
	DocumentURL(ctx context.Context, envelopeID string) (string, error)
}

// Client is the HTTP implementation of Provider
type Client struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	httpClient    *http.Client
}

var _ Provider = (*Client)(nil)

// NewClient creates a provider client
func NewClient(baseURL, apiKey, webhookSecret string) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateEnvelope sends a document for signature and returns the envelope ID
func (c *Client) CreateEnvelope(ctx context.Context, input CreateEnvelopeInput) (string, error) {
	var result struct {
		EnvelopeID string `json:"envelope_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/envelopes", input, &result); err != nil {
		return "", err
	}
	if result.EnvelopeID == "" {
		return "", fmt.Errorf("esign: provider returned empty envelope id")
	}
	return result.EnvelopeID, nil
}

// VoidEnvelope cancels an envelope before completion
func (c *Client) VoidEnvelope(ctx context.Context, envelopeID string) error {
	path := fmt.Sprintf("/v1/envelopes/%s/void", envelopeID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// DocumentURL returns a short-lived link to the signed document
func (c *Client) DocumentURL(ctx context.Context, envelopeID string) (string, error) {
	var result struct {
		URL string `json:"url"`
	}
	path := fmt.Sprintf("/v1/envelopes/%s/document", envelopeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return "", err
	}
	return result.URL, nil
}

// VerifySignature checks the HMAC-SHA256 hex signature on a webhook payload
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	if c.webhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("esign: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("esign: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("esign: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("esign: %s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("esign: decode response: %w", err)
		}
	}
	return nil
}
