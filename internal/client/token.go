package client

import (
	"net/http"
	"net/url"
)

// TokenSource supplies the CSRF token sent with every answer request.
type TokenSource interface {
	CSRFToken() (string, error)
}

// JarTokenSource reads the CSRF cookie the server stored in a cookie jar.
type JarTokenSource struct {
	jar  http.CookieJar
	site *url.URL
}

func NewJarTokenSource(jar http.CookieJar, site *url.URL) *JarTokenSource {
	return &JarTokenSource{jar: jar, site: site}
}

func (s *JarTokenSource) CSRFToken() (string, error) {
	if s.jar == nil {
		return "", ErrMissingToken
	}
	for _, c := range s.jar.Cookies(s.site) {
		if c.Name == CSRFCookieName && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", ErrMissingToken
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

func (s StaticTokenSource) CSRFToken() (string, error) {
	if s == "" {
		return "", ErrMissingToken
	}
	return string(s), nil
}
