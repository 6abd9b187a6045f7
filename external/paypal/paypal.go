package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"

	// OrderCompleted is the status PayPal reports on a fully captured order.
	OrderCompleted = "COMPLETED"
)

// Client talks to the PayPal Orders v2 REST API. It is constructed once at
// startup and injected wherever orders are created or captured.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient builds a client for the given mode ("live" or anything else for
// sandbox). Credentials are required; a missing secret is a configuration
// error, not something to discover on the first donation.
func NewClient(clientID, clientSecret, mode string) (*Client, error) {
	if clientID == "" {
		return nil, errors.New("PAYPAL_CLIENT_ID not set")
	}
	if clientSecret == "" {
		return nil, errors.New("PAYPAL_CLIENT_SECRET not set")
	}

	baseURL := sandboxBaseURL
	if mode == "live" || mode == "production" {
		baseURL = liveBaseURL
	}

	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) ClientID() string { return c.clientID }

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token returns a cached OAuth access token, fetching a fresh one via the
// client-credentials grant when the cached token is missing or near expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/oauth2/token",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("paypal token request failed: %s: %s", resp.Status, body)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("paypal token response missing access_token")
	}

	c.accessToken = tok.AccessToken
	// renew a minute early so in-flight requests never carry a stale token
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)

	return c.accessToken, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("paypal %s failed: %s: %s", path, resp.Status, raw)
	}

	return raw, nil
}

// OrderResult is a created order: the parsed identifier/status plus the raw
// payload, which the API hands back to the donor's browser unchanged.
type OrderResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Raw    json.RawMessage
}

// Amount is PayPal's money representation: a decimal string plus a
// currency code.
type Amount struct {
	Value        string `json:"value"`
	CurrencyCode string `json:"currency_code"`
}

type Capture struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Amount *Amount `json:"amount"`
}

type Payments struct {
	Captures []Capture `json:"captures"`
}

type PurchaseUnit struct {
	Payments *Payments `json:"payments"`
}

// CaptureResult is a captured order: the parsed status and nested capture
// tree plus the raw payload for passthrough.
type CaptureResult struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
	Raw           json.RawMessage
}

// FirstCaptureAmount digs out purchase_units[0].payments.captures[0].amount,
// returning nil when any level of the structure is missing.
func (r *CaptureResult) FirstCaptureAmount() *Amount {
	if len(r.PurchaseUnits) == 0 {
		return nil
	}
	p := r.PurchaseUnits[0].Payments
	if p == nil || len(p.Captures) == 0 {
		return nil
	}
	return p.Captures[0].Amount
}

type createOrderRequest struct {
	Intent        string              `json:"intent"`
	PurchaseUnits []purchaseUnitInput `json:"purchase_units"`
}

type purchaseUnitInput struct {
	Amount      Amount `json:"amount"`
	Description string `json:"description,omitempty"`
}

// CreateOrder creates a CAPTURE-intent order for the given amount.
func (c *Client) CreateOrder(
	ctx context.Context,
	amount decimal.Decimal,
	currencyCode string,
	description string,
) (*OrderResult, error) {

	body := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnitInput{
			{
				Amount: Amount{
					CurrencyCode: currencyCode,
					Value:        amount.StringFixed(2),
				},
				Description: description,
			},
		},
	}

	raw, err := c.post(ctx, "/v2/checkout/orders", body)
	if err != nil {
		return nil, err
	}

	var out OrderResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("paypal create order: malformed response: %w", err)
	}
	out.Raw = raw

	return &out, nil
}

// CaptureOrder finalizes a previously created order into an actual charge.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	raw, err := c.post(ctx, "/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", struct{}{})
	if err != nil {
		return nil, err
	}

	var out CaptureResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("paypal capture order: malformed response: %w", err)
	}
	out.Raw = raw

	return &out, nil
}
