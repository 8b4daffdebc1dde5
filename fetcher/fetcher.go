// Package fetcher retrieves rule lists and suffix databases from HTTP
// URLs or local files.
package fetcher

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/josexy/logx"
)

const (
	DefaultCoreURL         = "https://raw.githubusercontent.com/Ultimate-Hosts-Blacklist/whitelist/master/domains.list"
	DefaultRootZoneDBURL   = "https://raw.githubusercontent.com/funilrys/PyFunceble/master/iana-domains-db.json"
	DefaultPublicSuffixURL = "https://raw.githubusercontent.com/funilrys/PyFunceble/master/public-suffix.json"

	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "hosts-whitelist"

	// maxLineSize bounds a single rule or candidate line.
	maxLineSize = 1 << 20
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

type Links struct {
	Core         string
	RootZoneDB   string
	PublicSuffix string
}

func DefaultLinks() Links {
	return Links{
		Core:         DefaultCoreURL,
		RootZoneDB:   DefaultRootZoneDBURL,
		PublicSuffix: DefaultPublicSuffixURL,
	}
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	links      Links
}

func New(links Links, timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		links:      links,
	}
}

// IsURL reports whether src should be downloaded instead of read from disk.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Get downloads url and returns the body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: %w: %d", url, ErrUnexpectedStatus, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	logger.Logger.Debug("downloaded", logx.String("url", url), logx.Int("bytes", len(data)))
	return data, nil
}

// Read returns the content of a URL or a local file.
func (c *Client) Read(ctx context.Context, src string) ([]byte, error) {
	if IsURL(src) {
		return c.Get(ctx, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}

// Lines reads src and splits it into lines, without line terminators.
func (c *Client) Lines(ctx context.Context, src string) ([]string, error) {
	data, err := c.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	return SplitLines(data)
}

// AllLines concatenates the lines of every source in order.
func (c *Client) AllLines(ctx context.Context, srcs []string) ([]string, error) {
	var all []string
	for _, src := range srcs {
		lines, err := c.Lines(ctx, src)
		if err != nil {
			return nil, err
		}
		all = append(all, lines...)
	}
	return all, nil
}

func SplitLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return lines, nil
}

func (c *Client) getJSON(ctx context.Context, src string, v any) error {
	data, err := c.Read(ctx, src)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}
	return nil
}

// Core returns the official whitelist.
func (c *Client) Core(ctx context.Context) ([]string, error) {
	return c.Lines(ctx, c.links.Core)
}

func (c *Client) RootZone(ctx context.Context) (map[string]any, error) {
	var db map[string]any
	if err := c.getJSON(ctx, c.links.RootZoneDB, &db); err != nil {
		return nil, err
	}
	return db, nil
}

func (c *Client) PublicSuffix(ctx context.Context) (map[string][]string, error) {
	var db map[string][]string
	if err := c.getJSON(ctx, c.links.PublicSuffix, &db); err != nil {
		return nil, err
	}
	return db, nil
}
