package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/crmarques/apirecord/resource"
)

func (g *Gateway) newRequest(
	ctx context.Context,
	method string,
	endpointPath string,
	payload resource.Value,
) (*http.Request, error) {
	targetURL, err := g.resolveRequestURL(endpointPath)
	if err != nil {
		return nil, err
	}

	requestBody, err := encodeRequestBody(payload)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if len(requestBody) > 0 {
		bodyReader = bytes.NewReader(requestBody)
	}

	request, err := http.NewRequestWithContext(ctx, method, targetURL, bodyReader)
	if err != nil {
		return nil, internalError("failed to create remote request", err)
	}

	request.Header.Set("Accept", defaultMediaType)
	if len(requestBody) > 0 {
		request.Header.Set("Content-Type", defaultMediaType)
	}
	request.Header.Set(requestIDHeader, uuid.NewString())

	if len(g.defaultHeaders) > 0 {
		keys := make([]string, 0, len(g.defaultHeaders))
		for key := range g.defaultHeaders {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			request.Header.Set(key, g.defaultHeaders[key])
		}
	}

	g.applyAuth(request)

	return request, nil
}

func (g *Gateway) resolveRequestURL(endpointPath string) (string, error) {
	if parsed, err := url.Parse(endpointPath); err == nil && parsed.Scheme != "" {
		return "", validationError("endpoint path must be relative to server.base-url", nil)
	}

	target := *g.baseURL
	target.Path = joinBaseAndRequestPath(g.baseURL.Path, endpointPath)
	return target.String(), nil
}

func joinBaseAndRequestPath(basePath string, requestPath string) string {
	trimmedBase := strings.TrimSuffix(basePath, "/")
	trimmedRequest := strings.TrimPrefix(strings.TrimSpace(requestPath), "/")
	if trimmedRequest == "" {
		if trimmedBase == "" {
			return "/"
		}
		return trimmedBase
	}
	return trimmedBase + "/" + trimmedRequest
}

func (g *Gateway) execute(request *http.Request) ([]byte, error) {
	response, err := g.client.Do(request)
	if err != nil {
		return nil, transportError("remote request failed", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, transportError("failed to read remote response body", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return nil, classifyStatusError(response.StatusCode, body)
	}

	return body, nil
}
