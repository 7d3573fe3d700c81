package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dvukoje/ordersvc/internal/orders/ports"
)

// ProductClient talks to the product service over HTTP. It covers both the
// write path (stock reservation) and the read path (product details).
type ProductClient struct {
	baseURL string
	client  *http.Client
}

func NewProductClient(baseURL string, client *http.Client) *ProductClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ProductClient{baseURL: baseURL, client: client}
}

// ReduceQuantity asks the product service to decrement available stock.
// Any non-2xx response or transport failure is an error; the caller aborts
// order placement on it.
func (c *ProductClient) ReduceQuantity(ctx context.Context, productID, quantity int64) error {
	url := fmt.Sprintf("%s/product/reduceQuantity/%d?quantity=%s",
		c.baseURL, productID, strconv.FormatInt(quantity, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("build reduce quantity request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("reduce quantity for product %d: %w", productID, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("reduce quantity for product %d: product service returned %d", productID, resp.StatusCode)
	}

	return nil
}

// FetchProductDetails retrieves the product view owned by the product service.
func (c *ProductClient) FetchProductDetails(ctx context.Context, productID int64) (ports.ProductDetails, error) {
	url := fmt.Sprintf("%s/product/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.ProductDetails{}, fmt.Errorf("build product details request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ports.ProductDetails{}, fmt.Errorf("fetch product %d: %w", productID, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return ports.ProductDetails{}, fmt.Errorf("fetch product %d: product service returned %d", productID, resp.StatusCode)
	}

	var details ports.ProductDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return ports.ProductDetails{}, fmt.Errorf("decode product %d details: %w", productID, err)
	}

	return details, nil
}

// drainAndClose reads the remainder of a response body so the underlying
// connection can be reused, then closes it.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
