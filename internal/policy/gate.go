// Package policy loads and evaluates the target site's robots directives.
package policy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// Gate evaluates the site's crawling policy for a single user agent. The
// policy document is fetched exactly once, by Load; a Gate never operates
// without a successfully parsed policy.
type Gate struct {
	group *robotstxt.Group
	agent string
}

// Load fetches and parses the robots document at the site's well-known
// location. Any network or parse failure is returned to the caller; the
// pipeline must not run without a confirmed policy.
func Load(ctx context.Context, client *http.Client, siteURL, agent string, logger *zap.Logger) (*Gate, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	base, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("parse site url: %w", err)
	}

	robotsURL := *base
	robotsURL.Path = path.Join("/", "robots.txt")
	robotsURL.RawQuery = ""
	robotsURL.Fragment = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new robots request: %w", err)
	}
	req.Header.Set("User-Agent", agent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Debug("Failed to close robots response body", zap.Error(cerr))
		}
	}()

	// 4xx means "no robots file", which the parser maps to allow-all. Any
	// other non-2xx status leaves the policy unknown, and an unknown policy
	// is a fatal condition for the run.
	if resp.StatusCode >= 300 && resp.StatusCode < 400 || resp.StatusCode >= 500 {
		return nil, fmt.Errorf("robots fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read robots body: %w", err)
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots: %w", err)
	}

	logger.Info("robots policy loaded",
		zap.String("url", robotsURL.String()),
		zap.Int("status", resp.StatusCode),
	)
	return &Gate{group: data.FindGroup(agent), agent: agent}, nil
}

// Allowed reports whether the policy permits fetching rawURL. Unparseable
// URLs are denied.
func (g *Gate) Allowed(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if g.group == nil {
		return true
	}
	p := parsed.Path
	if p == "" {
		p = "/"
	}
	return g.group.Test(p)
}
