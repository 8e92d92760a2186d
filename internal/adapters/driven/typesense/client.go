// Package typesense provides a driven.SearchEngine adapter for a single
// Typesense node, built on the official typesense-go client.
package typesense

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	ts "github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.SearchEngine = (*Client)(nil)

// DefaultConnectionTimeout bounds every request to the node.
const DefaultConnectionTimeout = 5 * time.Second

// Config holds configuration for the Typesense client.
type Config struct {
	// BaseURL is the node address, e.g. http://localhost:8108.
	BaseURL string

	// APIKey is sent with every request.
	APIKey string

	// ConnectionTimeout bounds each request (default: 5s).
	ConnectionTimeout time.Duration
}

// ConfigFromConnection builds a client configuration for conn.
func ConfigFromConnection(conn domain.Connection) Config {
	return Config{
		BaseURL: conn.BaseURL(),
		APIKey:  conn.APIKey,
	}
}

// Client talks to one Typesense node. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	client  *ts.Client
	timeout time.Duration
}

// APIError is a non-2xx response from Typesense.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with HTTP code %d | server said: %s", e.Status, e.Message)
}

// NewClient creates a new Typesense client. Each call is attempted once:
// a single server has no failover nodes, and the circuit breaker never opens.
func NewClient(cfg Config) *Client {
	if cfg.ConnectionTimeout == 0 {
		cfg.ConnectionTimeout = DefaultConnectionTimeout
	}

	return &Client{
		client: ts.NewClient(
			ts.WithServer(cfg.BaseURL),
			ts.WithAPIKey(cfg.APIKey),
			ts.WithConnectionTimeout(cfg.ConnectionTimeout),
			ts.WithNumRetries(0),
			ts.WithCircuitBreakerReadyToTrip(neverTrip),
		),
		timeout: cfg.ConnectionTimeout,
	}
}

func neverTrip(gobreaker.Counts) bool {
	return false
}

// ListCollections returns every collection on the server.
func (c *Client) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	resp, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	collections := make([]domain.Collection, 0, len(resp))
	for _, r := range resp {
		raw, err := toMap(r)
		if err != nil {
			return nil, err
		}
		collections = append(collections, toCollection(raw))
	}
	return collections, nil
}

// RetrieveCollection returns the schema and metadata of one collection.
func (c *Client) RetrieveCollection(ctx context.Context, name string) (domain.Collection, error) {
	resp, err := c.client.Collection(name).Retrieve(ctx)
	if err != nil {
		return domain.Collection{}, wrapError(err)
	}

	raw, err := toMap(resp)
	if err != nil {
		return domain.Collection{}, err
	}
	return toCollection(raw), nil
}

// Search runs a document search against one collection.
func (c *Client) Search(
	ctx context.Context, collection string, params domain.SearchParams,
) (domain.SearchResult, error) {
	resp, err := c.client.Collection(collection).Documents().Search(ctx, searchParams(params))
	if err != nil {
		return domain.SearchResult{}, wrapError(err)
	}

	var result domain.SearchResult
	if resp.Found != nil {
		result.Found = *resp.Found
	}
	if resp.Hits != nil {
		result.Hits = make([]map[string]any, 0, len(*resp.Hits))
		for _, hit := range *resp.Hits {
			m, err := toMap(hit)
			if err != nil {
				return domain.SearchResult{}, err
			}
			result.Hits = append(result.Hits, m)
		}
	}
	return result, nil
}

// RetrieveDocument fetches one document by ID.
func (c *Client) RetrieveDocument(ctx context.Context, collection, id string) (domain.Document, error) {
	raw, err := ts.GenericCollection[json.RawMessage](c.client, collection).Document(id).Retrieve(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	return decodeMap(raw)
}

// Health reports whether the node is ready to serve requests.
func (c *Client) Health(ctx context.Context) (bool, error) {
	ok, err := c.client.Health(ctx, c.timeout)
	if err != nil {
		return false, wrapError(err)
	}
	return ok, nil
}

// searchParams maps params onto the library's search parameters.
// Empty optional values are left unset.
func searchParams(p domain.SearchParams) *api.SearchCollectionParams {
	out := &api.SearchCollectionParams{Q: pointer.String(p.Query)}
	if p.QueryBy != "" {
		out.QueryBy = pointer.String(p.QueryBy)
	}
	if p.FilterBy != "" {
		out.FilterBy = pointer.String(p.FilterBy)
	}
	if p.SortBy != "" {
		out.SortBy = pointer.String(p.SortBy)
	}
	if p.PerPage > 0 {
		out.PerPage = pointer.Int(p.PerPage)
	}
	if p.Prefix != nil {
		out.Prefix = pointer.String(strconv.FormatBool(*p.Prefix))
	}
	if len(p.ExcludeFields) > 0 {
		out.ExcludeFields = pointer.String(strings.Join(p.ExcludeFields, ","))
	}
	return out
}

// wrapError converts the library's HTTP errors into APIError and marks
// transport failures.
func wrapError(err error) error {
	var httpErr *ts.HTTPError
	if errors.As(err, &httpErr) {
		return apiError(httpErr.Status, httpErr.Body)
	}
	return fmt.Errorf("send request: %w", err)
}

// apiError builds an APIError, preferring the message field Typesense puts
// in error bodies.
func apiError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

// toMap re-encodes a typed library response as a generic map.
func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return decodeMap(data)
}

// decodeMap decodes a JSON object with numbers kept as json.Number so they
// pass through unchanged.
func decodeMap(data []byte) (map[string]any, error) {
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// toCollection projects a raw collection response onto the domain type.
func toCollection(raw map[string]any) domain.Collection {
	c := domain.Collection{Raw: raw}
	if name, ok := raw["name"].(string); ok {
		c.Name = name
	}
	if n, ok := raw["num_documents"].(json.Number); ok {
		if v, err := n.Int64(); err == nil {
			c.NumDocuments = &v
		}
	}
	if fields, ok := raw["fields"].([]any); ok {
		c.Fields = make([]map[string]any, 0, len(fields))
		for _, f := range fields {
			if m, ok := f.(map[string]any); ok {
				c.Fields = append(c.Fields, m)
			}
		}
	}
	return c
}
