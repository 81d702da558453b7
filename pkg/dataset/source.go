// Package dataset loads voter rolls from files, HTTP endpoints and Postgres,
// and writes snapshots back out.
//
// A Source is consumed exactly once, at startup; what it returns becomes the
// immutable record store. Supported encodings are JSON (the
// votersJSON.json export), YAML and msgpack.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/votersearch/pkg/voter"
	"github.com/charmbracelet/log"
)

// Source produces a full voter roll in its natural order.
type Source interface {
	// Name identifies the source in logs and info responses.
	Name() string
	// Load fetches and decodes every record.
	Load(ctx context.Context) ([]voter.Record, error)
}

// FileSource reads a dataset file from disk.
type FileSource struct {
	Path   string
	Format Format // FormatUnknown detects from the extension
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) ([]voter.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := s.Format
	if format == FormatUnknown {
		format = DetectFormat(s.Path)
	}
	if format == FormatUnknown {
		return nil, fmt.Errorf("cannot detect dataset format of %s", s.Path)
	}
	if err := ValidateFileFormat(s.Path, format); err != nil {
		return nil, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", s.Path, err)
	}
	defer file.Close()

	log.Debugf("Decoding %s dataset from %s", format, s.Path)
	return Decode(file, format)
}

// HTTPSource fetches a dataset with a single GET.
type HTTPSource struct {
	URL    string
	Format Format // FormatUnknown detects from Content-Type, then the URL path
	Client *http.Client
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Load(ctx context.Context) ([]voter.Record, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", s.URL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	format := s.Format
	if format == FormatUnknown {
		format = FormatForMediaType(resp.Header.Get("Content-Type"))
	}
	if format == FormatUnknown {
		if u, err := url.Parse(s.URL); err == nil {
			format = DetectFormat(u.Path)
		}
	}
	if format == FormatUnknown {
		format = FormatJSON
	}

	log.Debugf("Decoding %s dataset from %s", format, s.URL)
	return Decode(resp.Body, format)
}

// OpenOptions carries the settings OpenSource needs for non-file locations.
type OpenOptions struct {
	Format      Format
	Table       string
	OrderBy     string
	HTTPTimeout time.Duration
}

// OpenSource picks a Source for location: http(s) URLs are fetched,
// postgres DSNs are queried, anything else is read as a file.
func OpenSource(location string, opts OpenOptions) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("no dataset location configured")
	}

	switch schemeOf(location) {
	case "http", "https":
		client := &http.Client{Timeout: opts.HTTPTimeout}
		return &HTTPSource{URL: location, Format: opts.Format, Client: client}, nil

	case "postgres", "postgresql":
		db, err := sql.Open("postgres", location)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		return NewDBSource(db, opts.Table, opts.OrderBy, redactDSN(location)), nil
	}

	return &FileSource{Path: location, Format: opts.Format}, nil
}

// IsRemoteLocation reports whether location is a URL or a database DSN
// rather than a file path. Schemes are matched case-insensitively.
func IsRemoteLocation(location string) bool {
	switch schemeOf(location) {
	case "http", "https", "postgres", "postgresql":
		return true
	}
	return false
}

func schemeOf(location string) string {
	scheme, _, ok := strings.Cut(strings.TrimSpace(location), "://")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}

// redactDSN drops the password from a connection URL so it can be logged.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "postgres"
	}
	return u.Redacted()
}
