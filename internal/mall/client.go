package mall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API defines the mall REST surface the rest of the application consumes.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, payload CreateUser) (*User, error)
	UpdateUser(ctx context.Context, id string, payload UpdateUser) (*User, error)
	DeleteUser(ctx context.Context, id string) error

	ListShops(ctx context.Context) ([]Shop, error)
	CreateShop(ctx context.Context, payload CreateShop) (*Shop, error)
	UpdateShop(ctx context.Context, id string, payload UpdateShop) (*Shop, error)
	DeleteShop(ctx context.Context, id string) error

	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	CreateProduct(ctx context.Context, payload CreateProduct) (*Product, error)
	UpdateProduct(ctx context.Context, id string, payload UpdateProduct) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	Login(ctx context.Context, creds Credentials) (json.RawMessage, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the mall HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:8080"
	defaultUserAgent = "mallboard/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client using the provided apiBase host:port or URL value.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListUsers retrieves all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/api/users", nil, &users, "failed to fetch users"); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user and returns the server's canonical record.
func (c *Client) CreateUser(ctx context.Context, payload CreateUser) (*User, error) {
	if payload.Role == "" {
		payload.Role = DefaultRole
	}
	var created User
	if err := c.write(ctx, http.MethodPost, "/api/users", payload, &created, "failed to create user"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser replaces a user's mutable fields and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, id string, payload UpdateUser) (*User, error) {
	var updated User
	if err := c.write(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), payload, &updated, "failed to update user"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes a user. No body is expected on success.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil, "failed to delete user")
}

// ListShops retrieves all shops.
func (c *Client) ListShops(ctx context.Context) ([]Shop, error) {
	var shops []Shop
	if err := c.get(ctx, "/api/shops", nil, &shops, "failed to fetch shops"); err != nil {
		return nil, err
	}
	return shops, nil
}

// CreateShop creates a shop and returns the server's canonical record.
func (c *Client) CreateShop(ctx context.Context, payload CreateShop) (*Shop, error) {
	var created Shop
	if err := c.write(ctx, http.MethodPost, "/api/shops", payload, &created, "failed to create shop"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateShop replaces a shop's mutable fields and returns the updated record.
func (c *Client) UpdateShop(ctx context.Context, id string, payload UpdateShop) (*Shop, error) {
	var updated Shop
	if err := c.write(ctx, http.MethodPut, "/api/shops/"+url.PathEscape(id), payload, &updated, "failed to update shop"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteShop removes a shop.
func (c *Client) DeleteShop(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodDelete, "/api/shops/"+url.PathEscape(id), nil, nil, "failed to delete shop")
}

// ListProducts retrieves products, optionally narrowed to one shop.
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	var values url.Values
	if shopID := strings.TrimSpace(filter.ShopID); shopID != "" {
		values = url.Values{}
		values.Set("shopId", shopID)
	}
	var products []Product
	if err := c.get(ctx, "/api/products", values, &products, "failed to fetch products"); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a product and returns the server's canonical record.
func (c *Client) CreateProduct(ctx context.Context, payload CreateProduct) (*Product, error) {
	var created Product
	if err := c.write(ctx, http.MethodPost, "/api/products", payload, &created, "failed to create product"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces a product's mutable fields and returns the updated record.
func (c *Client) UpdateProduct(ctx context.Context, id string, payload UpdateProduct) (*Product, error) {
	var updated Product
	if err := c.write(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), payload, &updated, "failed to update product"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil, "failed to delete product")
}

// Login exchanges credentials for the server's session object. The body is
// returned verbatim; callers persist it without interpreting it.
func (c *Client) Login(ctx context.Context, creds Credentials) (json.RawMessage, error) {
	const failMsg = "invalid credentials"

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}
	rel := &url.URL{Path: "/api/auth/login"}
	req, err := c.newRequest(ctx, http.MethodPost, rel, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failMsg, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		return nil, &RequestError{Message: failMsg, Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return json.RawMessage(raw), nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values, dest any, failMsg string) error {
	rel := &url.URL{Path: path}
	if len(values) > 0 {
		rel.RawQuery = values.Encode()
	}
	return c.doURL(ctx, http.MethodGet, rel, nil, dest, failMsg)
}

func (c *Client) write(ctx context.Context, method, path string, body, dest any, failMsg string) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest, failMsg)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any, failMsg string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, rel, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		// The status code is recorded but never branched on; the server's
		// error body is discarded in favor of the fixed message.
		return &RequestError{Message: failMsg, Status: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, rel *url.URL, body io.Reader) (*http.Request, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
