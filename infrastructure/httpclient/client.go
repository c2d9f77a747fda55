// Package httpclient implements the HTTP Collaborator
// (SPEC_FULL.md §4.7): a net/http-backed application.HTTPClient that
// follows redirects, tracks cookies in a cookiejar.Jar, and remembers
// the final URL a redirect chain landed on (needed to recover the
// "realm=" query parameter spec.md §4.3 INIT looks for).
package httpclient

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const userAgent = "Mozilla/5.0 SV1"

// Client adapts net/http to application.HTTPClient.
type Client struct {
	base     *url.URL
	http     *http.Client
	finalURL string
}

// New builds a Client rooted at baseURL (scheme+host, no trailing
// path), with TLS verification controlled by insecureSkipVerify.
func New(baseURL string, insecureSkipVerify bool) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	transport := cloneDefaultTransport()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: insecureSkipVerify}

	return &Client{
		base: base,
		http: &http.Client{
			Jar:       jar,
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}, nil
}

func cloneDefaultTransport() *http.Transport {
	if base, ok := http.DefaultTransport.(*http.Transport); ok && base != nil {
		return base.Clone()
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// Request issues method against path relative to the client's base
// URL, following redirects via the stdlib client's default policy,
// and records the final landed-on URL for FinalURL.
func (c *Client) Request(ctx context.Context, method, path, contentType string, body []byte) (int, []byte, error) {
	target := *c.base
	if strings.HasPrefix(path, "/") {
		target.Path = path
	} else {
		target.Path = "/" + path
	}

	var reqBody *strings.Reader
	if body != nil {
		reqBody = strings.NewReader(string(body))
	} else {
		reqBody = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	c.finalURL = resp.Request.URL.String()

	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}
		if readErr != nil {
			break
		}
	}

	return resp.StatusCode, buf, nil
}

// Cookie returns the named cookie's current value from the jar.
func (c *Client) Cookie(name string) (string, bool) {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value, true
		}
	}
	return "", false
}

func (c *Client) FinalURL() string {
	return c.finalURL
}
