package nsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL = "https://www.nationstates.net/cgi-bin/api.cgi"
	// DefaultAPIVersion is the API version requested unless overridden.
	DefaultAPIVersion = 12
)

// Client issues typed queries. Every request goes through the Gate it was
// built with.
type Client struct {
	gate    *Gate
	baseURL string
	version int
	logger  *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithAPIVersion sets the API version; zero omits the parameter.
func WithAPIVersion(v int) ClientOption {
	return func(c *Client) {
		c.version = v
	}
}

// WithClientLogger sets the client's logger.
func WithClientLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l.Named("nsapi.client")
		}
	}
}

// NewClient returns a Client bound to g.
func NewClient(g *Gate, opts ...ClientOption) (*Client, error) {
	if g == nil {
		return nil, errors.New("nsapi: client requires a gate")
	}
	c := &Client{
		gate:    g,
		baseURL: DefaultBaseURL,
		version: DefaultAPIVersion,
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Gate returns the gate the client sends through.
func (c *Client) Gate() *Gate {
	return c.gate
}

// Do sends r and decodes the XML reply into v.
//
// Gate errors are returned unchanged. A response with broken rate limit
// headers is not decoded; its *HeaderError is returned. A non-200 reply is
// a *StatusError.
func (c *Client) Do(ctx context.Context, r Request, v any) error {
	if r.Version == 0 {
		r.Version = c.version
	}
	u, err := r.URL(c.baseURL)
	if err != nil {
		return err
	}

	resp, err := c.gate.Send(ctx, u)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: u}
	}

	if err := decodeXML(resp.Body, v); err != nil {
		c.logger.Debug("decode failed", zap.String("url", u), zap.Error(err))
		return fmt.Errorf("nsapi: decode %s response: %w", r.Kind, err)
	}
	return nil
}

// Nation fetches the given shards of a nation.
func (c *Client) Nation(ctx context.Context, name string, shards ...NationShard) (*Nation, error) {
	var n Nation
	if err := c.Do(ctx, NationRequest(name, shards...), &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Region fetches the given shards of a region.
func (c *Client) Region(ctx context.Context, name string, shards ...RegionShard) (*Region, error) {
	var r Region
	if err := c.Do(ctx, RegionRequest(name, shards...), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// World fetches world-wide shards.
func (c *Client) World(ctx context.Context, shards ...WorldShard) (*World, error) {
	var w World
	if err := c.Do(ctx, WorldRequest(shards...), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// WA fetches shards of a World Assembly council.
func (c *Client) WA(ctx context.Context, council Council, shards ...WAShard) (*WA, error) {
	var wa WA
	if err := c.Do(ctx, WARequest(council, shards...), &wa); err != nil {
		return nil, err
	}
	return &wa, nil
}
