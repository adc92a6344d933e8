package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/domain/gateway"
)

const defaultBaseURL = "https://api.paystack.co"

// Client talks to the Paystack transaction API. Each call is a single
// bounded round trip; no retries.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Paystack client. A zero timeout defaults to 15s.
func NewClient(secretKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		secretKey:  secretKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type initializeRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Reference   string                 `json:"reference"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status bool `json:"status"`
	Data   *struct {
		Status string `json:"status"`
	} `json:"data"`
}

// Initialize starts a transaction for the reference. Amount is in whole
// Naira and converted to kobo here.
func (c *Client) Initialize(ctx context.Context, params gateway.InitializeParams) (*gateway.Authorization, error) {
	if c.secretKey == "" {
		return nil, domainerrors.NewAppError(http.StatusBadGateway, "payment gateway is not configured", domainerrors.ErrGateway)
	}

	body, err := json.Marshal(initializeRequest{
		Email:       params.Email,
		Amount:      params.Amount * 100,
		Reference:   params.Reference,
		Description: params.Description,
		Metadata:    params.Metadata,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: %w: %v", domainerrors.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("paystack initialize: %w: status %d: %s", domainerrors.ErrGateway, resp.StatusCode, snippet)
	}

	var out initializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("paystack initialize: %w: %v", domainerrors.ErrGateway, err)
	}
	if !out.Status || out.Data == nil {
		return nil, fmt.Errorf("paystack initialize: %w: %s", domainerrors.ErrGateway, out.Message)
	}

	return &gateway.Authorization{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

// Verify checks the transaction status for the reference. It reports
// success only when the API responds OK and the transaction status is
// "success"; a clean "not successful" answer is (false, nil).
func (c *Client) Verify(ctx context.Context, reference string) (bool, error) {
	if c.secretKey == "" {
		return false, domainerrors.NewAppError(http.StatusBadGateway, "payment gateway is not configured", domainerrors.ErrGateway)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("paystack verify: %w: %v", domainerrors.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("paystack verify: %w: status %d: %s", domainerrors.ErrGateway, resp.StatusCode, snippet)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("paystack verify: %w: %v", domainerrors.ErrGateway, err)
	}

	return out.Status && out.Data != nil && out.Data.Status == "success", nil
}
