package postgres

import (
	"context"
	"fmt"
	"sync"
)

const (
	fullTextProbeQuery = `SELECT EXISTS (
		SELECT 1 FROM pg_indexes WHERE tablename = 'search_index' AND indexname = 'search_index_document_idx'
	)`
	soundexProbeQuery   = `SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'fuzzystrmatch')`
	populatedProbeQuery = `SELECT EXISTS (SELECT 1 FROM search_index)`
)

// Probe checks once whether an optional database capability is installed.
// A successful answer is kept for the lifetime of the probe, a failed
// check is retried on the next call. Probes with recheck set only keep a
// positive answer.
type Probe struct {
	client  *Client
	name    string
	query   string
	recheck bool

	mu        sync.Mutex
	checked   bool
	available bool
}

// NewFullTextProbe reports whether the search_index table and its GIN
// index exist.
func NewFullTextProbe(c *Client) *Probe {
	return &Probe{client: c, name: "full text index", query: fullTextProbeQuery}
}

// NewPopulatedProbe reports whether search_index holds at least one row.
// An empty projection is checked again on every call until a rebuild has
// filled it.
func NewPopulatedProbe(c *Client) *Probe {
	return &Probe{client: c, name: "search index rows", query: populatedProbeQuery, recheck: true}
}

// NewSoundexProbe reports whether the fuzzystrmatch extension is installed.
func NewSoundexProbe(c *Client) *Probe {
	return &Probe{client: c, name: "fuzzystrmatch", query: soundexProbeQuery}
}

func (p *Probe) Available(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.checked {
		return p.available, nil
	}

	var ok bool
	if err := p.client.GetContext(ctx, &ok, p.query); err != nil {
		return false, fmt.Errorf("probe %s: %w", p.name, err)
	}
	p.checked, p.available = ok || !p.recheck, ok
	return ok, nil
}

// Reset forgets the memoized answer.
func (p *Probe) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checked, p.available = false, false
}
