package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crmarques/apirecord/config"
	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/resource"
	"github.com/crmarques/apirecord/transport"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMediaType   = "application/json"
	requestIDHeader    = "X-Request-ID"
)

var _ transport.Transport = (*Gateway)(nil)

// Gateway is the HTTP implementation of the transport collaborator. It maps
// lifecycle actions onto HTTP methods against a single base URL; the
// lifecycle engine above it never sees status codes or headers.
type Gateway struct {
	baseURL        *url.URL
	defaultHeaders map[string]string
	auth           authConfig
	client         *http.Client
}

type GatewayOption func(*Gateway)

// WithHTTPClient replaces the default client, mainly for tests.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(g *Gateway) {
		if g == nil || client == nil {
			return
		}
		g.client = client
	}
}

func NewGateway(cfg config.HTTPServer, opts ...GatewayOption) (*Gateway, error) {
	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	auth, err := buildAuthConfig(cfg.Auth)
	if err != nil {
		return nil, err
	}

	gateway := &Gateway{
		baseURL:        baseURL,
		defaultHeaders: cloneStringMap(cfg.DefaultHeaders),
		auth:           auth,
		client:         &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(gateway)
	}
	return gateway, nil
}

// Invoke issues one remote operation and decodes the JSON response body.
func (g *Gateway) Invoke(
	ctx context.Context,
	action metadata.Action,
	endpointPath string,
	payload resource.Value,
) (resource.Value, error) {
	method := action.HTTPMethod()
	if method == "" {
		return nil, validationError("request action is required", nil)
	}

	resolvedPath := strings.TrimSpace(endpointPath)
	if resolvedPath == "" {
		return nil, validationError("request path is required", nil)
	}

	request, err := g.newRequest(ctx, method, resolvedPath, payload)
	if err != nil {
		return nil, err
	}

	body, err := g.execute(request)
	if err != nil {
		return nil, err
	}

	return decodeJSONResponse(body)
}

func parseBaseURL(value string) (*url.URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, validationError("server.base-url is required", nil)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, validationError("server.base-url must be an absolute URL", err)
	}
	return parsed, nil
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return map[string]string{}
	}
	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
