package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// catalogAPI - REST-операции для подготовки данных и сверки остатка.
type catalogAPI interface {
	CreateProduct(ctx context.Context, name string, quantity int64, price string) (int64, error)
	CreateOrder(ctx context.Context, description string) (int64, error)
	ProductQuantity(ctx context.Context, productID int64) (int64, error)
}

type httpCatalog struct {
	baseURL string
	client  *http.Client
}

func newHTTPCatalog(baseURL string, client *http.Client) *httpCatalog {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpCatalog{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *httpCatalog) CreateProduct(ctx context.Context, name string, quantity int64, price string) (int64, error) {
	body := map[string]any{
		"name":        name,
		"description": "load test product",
		"quantity":    quantity,
		"price":       json.Number(price),
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/products", body, http.StatusCreated, &created); err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return created.ID, nil
}

func (c *httpCatalog) CreateOrder(ctx context.Context, description string) (int64, error) {
	var created struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", map[string]any{"description": description}, http.StatusCreated, &created); err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	return created.ID, nil
}

func (c *httpCatalog) ProductQuantity(ctx context.Context, productID int64) (int64, error) {
	var product struct {
		Quantity int64 `json:"quantity"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", productID), nil, http.StatusOK, &product); err != nil {
		return 0, fmt.Errorf("get product: %w", err)
	}
	return product.Quantity, nil
}

func (c *httpCatalog) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return json.Unmarshal(raw, out)
}
