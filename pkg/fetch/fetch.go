// Package fetch retrieves source-image bytes from a URL. It is a
// collaborator outside the generation core: the pipeline only ever sees
// the bytes it returns.
//
// Targets resolving to loopback, link-local, private or unspecified
// addresses are refused outright. Retry policy lives here and only
// here: one direct attempt, then one pass through the configured proxy.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

const (
	requestTimeout = 15 * time.Second
	maxBodyBytes   = 32 << 20
)

// Client fetches remote bytes with an SSRF guard and optional proxy
// fallback.
type Client struct {
	http      *http.Client
	proxyBase string
	logger    hclog.Logger
}

// New creates a fetch client. proxyBase may be empty to disable the
// fallback.
func New(proxyBase string, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{
		http:      &http.Client{Timeout: requestTimeout},
		proxyBase: proxyBase,
		logger:    logger,
	}
}

// Fetch retrieves raw bytes and the reported content type.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, "", fmt.Errorf("%w: unsupported url %q", icnerrors.ErrFetchFailed, rawURL)
	}

	// Guarded before any request is made; blocked targets are not
	// routed through the proxy either.
	if err := c.checkHost(u.Hostname()); err != nil {
		return nil, "", err
	}

	data, contentType, directErr := c.get(ctx, rawURL)
	if directErr == nil {
		return data, contentType, nil
	}
	if c.proxyBase == "" {
		return nil, "", fmt.Errorf("%w: %v", icnerrors.ErrFetchFailed, directErr)
	}

	c.logger.Warn("⚠️ Direct fetch failed, falling back to proxy", "url", rawURL, "error", directErr)
	proxied := c.proxyBase + "?url=" + url.QueryEscape(rawURL)
	data, contentType, proxyErr := c.get(ctx, proxied)
	if proxyErr != nil {
		return nil, "", fmt.Errorf("%w: direct: %v; proxy: %v", icnerrors.ErrFetchFailed, directErr, proxyErr)
	}
	return data, contentType, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxBodyBytes {
		return nil, "", fmt.Errorf("body exceeds %d bytes", maxBodyBytes)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) checkHost(host string) error {
	ips, err := net.LookupIP(host)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %v", icnerrors.ErrFetchFailed, host, err)
	}
	for _, ip := range ips {
		if BlockedIP(ip) {
			return fmt.Errorf("%w: %s resolves to %s", icnerrors.ErrBlockedAddress, host, ip)
		}
	}
	return nil
}

// BlockedIP reports whether an address falls in a range the fetcher
// refuses to contact.
func BlockedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsPrivate() ||
		ip.IsUnspecified()
}
