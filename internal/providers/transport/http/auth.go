package http

import (
	"net/http"

	"github.com/crmarques/apirecord/config"
)

type authMode int

const (
	authModeNone authMode = iota
	authModeBasic
	authModeBearer
	authModeCustomHeader
)

type authConfig struct {
	mode         authMode
	basicAuth    config.BasicAuth
	bearerToken  config.BearerTokenAuth
	customHeader config.HeaderTokenAuth
}

func buildAuthConfig(cfg *config.HTTPAuth) (authConfig, error) {
	if cfg == nil {
		return authConfig{}, nil
	}

	setCount := 0
	if cfg.BasicAuth != nil {
		setCount++
	}
	if cfg.BearerToken != nil {
		setCount++
	}
	if cfg.CustomHeader != nil {
		setCount++
	}
	if setCount != 1 {
		return authConfig{}, validationError("server.auth must define exactly one auth mode", nil)
	}

	switch {
	case cfg.BasicAuth != nil:
		basic := *cfg.BasicAuth
		if basic.Username == "" || basic.Password == "" {
			return authConfig{}, validationError("server.auth.basic-auth requires username and password", nil)
		}
		return authConfig{mode: authModeBasic, basicAuth: basic}, nil
	case cfg.BearerToken != nil:
		bearer := *cfg.BearerToken
		if bearer.Token == "" {
			return authConfig{}, validationError("server.auth.bearer-token.token is required", nil)
		}
		return authConfig{mode: authModeBearer, bearerToken: bearer}, nil
	default:
		custom := *cfg.CustomHeader
		if custom.Header == "" || custom.Token == "" {
			return authConfig{}, validationError("server.auth.custom-header requires header and token", nil)
		}
		return authConfig{mode: authModeCustomHeader, customHeader: custom}, nil
	}
}

func (g *Gateway) applyAuth(request *http.Request) {
	switch g.auth.mode {
	case authModeBasic:
		request.SetBasicAuth(g.auth.basicAuth.Username, g.auth.basicAuth.Password)
	case authModeBearer:
		request.Header.Set("Authorization", "Bearer "+g.auth.bearerToken.Token)
	case authModeCustomHeader:
		request.Header.Set(g.auth.customHeader.Header, g.auth.customHeader.Token)
	}
}
