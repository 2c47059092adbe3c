package omise

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/pkg/logger"
)

// Client talks to the Omise REST API. Requests are form-encoded and
// authenticated with HTTP basic auth, secret key as the username.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	config = config.withDefaults()
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

var _ gateway.Gateway = (*Client)(nil)

func (c *Client) CreateCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.Charge, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	if req.CardToken != "" {
		form.Set("card", req.CardToken)
	}
	if req.SourceID != "" {
		form.Set("source", req.SourceID)
	}
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	if req.ReturnURI != "" {
		form.Set("return_uri", req.ReturnURI)
	}
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var resp chargeResponse
	if err := c.do(ctx, http.MethodPost, "/charges", form, &resp); err != nil {
		return nil, err
	}
	return toCharge(&resp), nil
}

func (c *Client) GetCharge(ctx context.Context, chargeID string) (*gateway.Charge, error) {
	var resp chargeResponse
	if err := c.do(ctx, http.MethodGet, "/charges/"+url.PathEscape(chargeID), nil, &resp); err != nil {
		return nil, err
	}
	return toCharge(&resp), nil
}

func (c *Client) CreatePromptPaySource(ctx context.Context, amount int64, currency string) (*gateway.Source, error) {
	form := url.Values{}
	form.Set("type", "promptpay")
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)

	var resp sourceResponse
	if err := c.do(ctx, http.MethodPost, "/sources", form, &resp); err != nil {
		return nil, err
	}
	return &gateway.Source{
		ID:         resp.ID,
		Type:       resp.Type,
		Amount:     resp.Amount,
		QRImageURI: resp.qrImageURI(),
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.APIURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build omise request: %w", err)
	}
	req.SetBasicAuth(c.config.SecretKey, "")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("omise request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read omise response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
			logger.Error("omise api error", fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message))
			return fmt.Errorf("omise: %s (%s)", apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("omise: unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode omise response: %w", err)
	}
	return nil
}

func toCharge(resp *chargeResponse) *gateway.Charge {
	return &gateway.Charge{
		ID:             resp.ID,
		Status:         resp.Status,
		Paid:           resp.Paid,
		Amount:         resp.Amount,
		Currency:       resp.Currency,
		AuthorizeURI:   resp.AuthorizeURI,
		QRImageURI:     resp.Source.qrImageURI(),
		FailureCode:    resp.FailureCode,
		FailureMessage: resp.FailureMessage,
	}
}
