// Query source: an ordered list of city queries read from a CSV file.

package queries

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Load reads the queries file and returns the cities in file order. The file
// carries a header row; the column named "City" is used, defaulting to the
// first column.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse queries file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("queries file %s is empty", path)
	}

	col := 0
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), "City") {
			col = i
			break
		}
	}

	var cities []string
	for _, record := range records[1:] {
		if col >= len(record) {
			continue
		}
		if city := strings.TrimSpace(record[col]); city != "" {
			cities = append(cities, city)
		}
	}
	return cities, nil
}

// Slug turns a query into a portable file name: diacritics stripped,
// lowercased, whitespace collapsed to hyphens. "Montréal" becomes "montreal".
func Slug(query string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, query)
	if err != nil {
		stripped = query
	}
	stripped = strings.ToLower(strings.TrimSpace(stripped))
	return strings.Join(strings.Fields(stripped), "-")
}
