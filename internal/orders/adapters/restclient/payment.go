package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dvukoje/ordersvc/internal/orders/ports"
)

// PaymentClient talks to the payment service over HTTP. The charge call
// folds every failure cause into a failed PaymentResult; the caller never
// distinguishes a rejection from a timeout.
type PaymentClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentClient(baseURL string, client *http.Client) *PaymentClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &PaymentClient{baseURL: baseURL, client: client}
}

// DoPayment executes a charge for an order.
func (c *PaymentClient) DoPayment(ctx context.Context, payment ports.PaymentRequest) ports.PaymentResult {
	body, err := json.Marshal(payment)
	if err != nil {
		return ports.PaymentFailed(fmt.Sprintf("encode payment request: %v", err))
	}

	url := c.baseURL + "/payment"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ports.PaymentFailed(fmt.Sprintf("build payment request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return ports.PaymentFailed(fmt.Sprintf("payment call failed: %v", err))
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.PaymentFailed(fmt.Sprintf("payment service returned %d", resp.StatusCode))
	}

	return ports.PaymentSucceeded()
}

// FetchPaymentDetails retrieves the transaction view owned by the payment
// service.
func (c *PaymentClient) FetchPaymentDetails(ctx context.Context, orderID int64) (ports.PaymentDetails, error) {
	url := fmt.Sprintf("%s/payment/order/%d", c.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.PaymentDetails{}, fmt.Errorf("build payment details request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ports.PaymentDetails{}, fmt.Errorf("fetch payment for order %d: %w", orderID, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return ports.PaymentDetails{}, fmt.Errorf("fetch payment for order %d: payment service returned %d", orderID, resp.StatusCode)
	}

	var details ports.PaymentDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return ports.PaymentDetails{}, fmt.Errorf("decode payment details for order %d: %w", orderID, err)
	}

	return details, nil
}
