package network

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

var ErrNoEntries = errors.New("no entries available")

// Provider hands out one random entry from a line-delimited file, e.g. a
// user-agent list or a proxy list. One pick is consumed per browser session.
type Provider struct {
	entries []string
}

func NewProvider(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read provider file %s: %w", path, err)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	return &Provider{entries: entries}, nil
}

func (p *Provider) Pick() (string, error) {
	if len(p.entries) == 0 {
		return "", ErrNoEntries
	}
	return p.entries[rand.Intn(len(p.entries))], nil
}

func (p *Provider) Len() int {
	return len(p.entries)
}
