// Package client talks to the contract API. It keeps the bearer token in a TokenStore and
// drops it when the server rejects it.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/sjperalta/vehifin-api/pkg/logger"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrUnauthorized means there is no token or the server rejected it. Log in again.
	ErrUnauthorized = errors.New("not authenticated")
	// ErrNotFound is returned for a missing contract
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx response
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// ContractDetail is the response of GET /contracts/:id
type ContractDetail struct {
	models.ContractResponse
	PaymentSummary roster.PaymentSummary `json:"payment_summary"`
}

type listResponse struct {
	Contracts []models.ContractSummary `json:"contracts"`
	Total     int                      `json:"total"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
}

// Client is safe for concurrent use
type Client struct {
	baseURL string
	http    *fasthttp.Client
	tokens  TokenStore
	timeout time.Duration
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080/api/v1
func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			Name:                "rosterctl",
			ReadTimeout:         defaultTimeout,
			WriteTimeout:        defaultTimeout,
			MaxIdleConnDuration: time.Minute,
			// escaped path segments such as a contract id must reach the server as sent
			DisablePathNormalizing: true,
		},
		tokens:  tokens,
		timeout: defaultTimeout,
	}
}

// Login exchanges credentials for a token and stores it
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	body := map[string]string{"username": username, "password": password}

	var resp loginResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/auth/login", nil, body, &resp, false); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		}
		return nil, err
	}

	token := &Token{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken, Username: resp.Username}
	if err := c.tokens.Save(token); err != nil {
		return nil, err
	}
	return token, nil
}

// Logout revokes the refresh token and forgets the session
func (c *Client) Logout(ctx context.Context) error {
	token, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if token != nil && token.RefreshToken != "" {
		body := map[string]string{"refresh_token": token.RefreshToken}
		if err := c.do(ctx, fasthttp.MethodPost, "/auth/logout", nil, body, nil, false); err != nil {
			logger.Warn("logout request failed", "error", err)
		}
	}
	return c.tokens.Clear()
}

// ListContracts fetches the roster with params applied by the server
func (c *Client) ListContracts(ctx context.Context, params roster.ViewParameters) ([]models.ContractSummary, error) {
	query := map[string]string{
		"search":         params.SearchQuery,
		"status_filter":  params.StatusFilter,
		"company_filter": params.CompanyFilter,
		"sort_by":        string(params.SortBy),
	}

	var resp listResponse
	if err := c.do(ctx, fasthttp.MethodGet, "/contracts", query, nil, &resp, true); err != nil {
		return nil, err
	}
	if resp.Contracts == nil {
		resp.Contracts = []models.ContractSummary{}
	}
	return resp.Contracts, nil
}

// GetContract fetches one contract with its schedule and payment summary
func (c *Client) GetContract(ctx context.Context, id string) (*ContractDetail, error) {
	var detail ContractDetail
	if err := c.do(ctx, fasthttp.MethodGet, "/contracts/"+url.PathEscape(id), nil, nil, &detail, true); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Refresh reloads the full roster into session. The response is dropped when a newer refresh
// started in the meantime; applied reports whether this one landed.
func (c *Client) Refresh(ctx context.Context, session *roster.Session) (applied bool, err error) {
	gen, err := session.BeginFetch(ctx)
	if err != nil {
		return false, err
	}

	all := roster.ViewParameters{StatusFilter: roster.FilterAll, CompanyFilter: roster.FilterAll}
	contracts, err := c.ListContracts(ctx, all)
	if err != nil {
		session.FailFetch(ctx, gen, err)
		return false, err
	}
	return session.CompleteFetch(ctx, gen, contracts), nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any, auth bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	for k, v := range query {
		if v != "" {
			req.URI().QueryArgs().Add(k, v)
		}
	}

	if auth {
		token, err := c.tokens.Load()
		if err != nil {
			return err
		}
		if token == nil {
			return ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(data)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusUnauthorized && auth:
		if err := c.tokens.Clear(); err != nil {
			logger.Warn("failed to clear token", "error", err)
		}
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, errorMessage(resp.Body()))
	case status < 200 || status >= 300:
		return &APIError{Status: status, Message: errorMessage(resp.Body())}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
