// Package csvsource loads the earthquake catalog CSV from a local file or an
// HTTP(S) URL.
package csvsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/klauspost/compress/gzip"

	"github.com/couchcryptid/quake-eda/internal/domain"
)

// Columns are the catalog columns the analysis reads, in RawRecord order.
var Columns = []string{"time", "mag", "depth", "place", "latitude", "longitude"}

// Loader reads catalog CSVs.
type Loader struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLoader creates a loader whose HTTP fetches time out after timeout.
func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Load reads every row of source. Sources whose path ends in .gz are
// decompressed. Any failure is returned as a *domain.DataSourceError and no
// records are returned.
func (l *Loader) Load(ctx context.Context, source string) ([]domain.RawRecord, error) {
	rc, err := l.open(ctx, source)
	if err != nil {
		return nil, &domain.DataSourceError{Source: source, Err: err}
	}
	defer rc.Close()

	var r io.Reader = rc
	if isGzip(source) {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, &domain.DataSourceError{Source: source, Err: fmt.Errorf("gzip: %w", err)}
		}
		defer gz.Close()
		r = gz
	}

	records, err := parse(r)
	if err != nil {
		return nil, &domain.DataSourceError{Source: source, Err: err}
	}
	l.logger.Info("catalog loaded", "source", source, "rows", len(records))
	return records, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	l.logger.Debug("catalog fetched", "url", source, "content_length", resp.ContentLength)
	return resp.Body, nil
}

// parse reads a CSV with a header row, keeping every value as a string.
func parse(r io.Reader) ([]domain.RawRecord, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}
	df = df.Select(Columns)
	if df.Err != nil {
		return nil, fmt.Errorf("select columns: %w", df.Err)
	}

	rows := df.Records()
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse csv: no header row")
	}
	out := make([]domain.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		out = append(out, domain.RawRecord{
			Line:      i + 2,
			Time:      row[0],
			Magnitude: row[1],
			Depth:     row[2],
			Place:     row[3],
			Latitude:  row[4],
			Longitude: row[5],
		})
	}
	return out, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isGzip(source string) bool {
	if isURL(source) {
		if u, err := url.Parse(source); err == nil {
			return strings.HasSuffix(u.Path, ".gz")
		}
	}
	return strings.HasSuffix(source, ".gz")
}
