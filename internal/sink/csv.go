// Record sink: one append-only CSV store per query. The header row is written
// exactly once, when the store is created; records land in extraction order
// and are never deduplicated.

package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go-indeed-automation/internal/queries"
	"go-indeed-automation/internal/scraper"
)

// header is the store schema, in column order.
var header = []string{
	"Job Title",
	"Salary",
	"Job Type",
	"Location",
	"Company Name",
	"Date Posted",
	"Reviews",
	"Job URL",
	"Listing URL",
}

type CSVSink struct {
	dir string
}

func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &CSVSink{dir: dir}, nil
}

// Path is the store file for query.
func (s *CSVSink) Path(query string) string {
	return filepath.Join(s.dir, queries.Slug(query)+".csv")
}

func (s *CSVSink) Append(query string, posting scraper.JobPosting) error {
	path := s.Path(query)

	_, statErr := os.Stat(path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open store for %q: %w", query, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write store header for %q: %w", query, err)
		}
	}
	if err := w.Write(row(posting)); err != nil {
		return fmt.Errorf("append record for %q: %w", query, err)
	}
	w.Flush()
	return w.Error()
}

func row(p scraper.JobPosting) []string {
	return []string{
		p.JobTitle,
		p.Salary,
		p.JobType,
		p.Location,
		p.CompanyName,
		p.DatePosted,
		p.ReviewsText,
		p.JobURL,
		p.ListingURL,
	}
}
