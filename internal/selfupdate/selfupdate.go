// Package selfupdate looks up the latest envguard release on GitHub.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner   = "safedep"
	defaultRepo    = "envguard"
	defaultTimeout = 5 * time.Second
	defaultBaseURL = "https://api.github.com"
)

// Release is the newest published release.
type Release struct {
	Tag string
	URL string
}

// Result compares the running build against the latest release.
type Result struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	ReleaseURL      string `json:"release_url"`
	UpdateAvailable bool   `json:"update_available"`
}

// Option configures a Checker.
type Option func(*Checker)

// Checker queries the GitHub releases API.
type Checker struct {
	owner   string
	repo    string
	baseURL string
	client  *http.Client
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithBaseURL points the checker at another API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Checker) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewChecker creates a Checker for the envguard repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:   defaultOwner,
		repo:    defaultRepo,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Latest fetches the latest release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query releases: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release has no tag")
	}

	return &Release{Tag: release.TagName, URL: release.HTMLURL}, nil
}

// Check compares current against the latest release. Development builds
// never report an update.
func (c *Checker) Check(ctx context.Context, current string) (*Result, error) {
	release, err := c.Latest(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		CurrentVersion:  current,
		LatestVersion:   release.Tag,
		ReleaseURL:      release.URL,
		UpdateAvailable: IsNewer(current, release.Tag),
	}, nil
}

// IsNewer reports whether latest is a higher semantic version than current.
// Versions that do not parse are never newer.
func IsNewer(current, latest string) bool {
	current = normalize(current)
	latest = normalize(latest)

	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return false
	}

	return semver.Compare(latest, current) > 0
}

func normalize(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
