// Package uniqueness measures lexical overlap of new drafts against the
// content accepted earlier in the same generation run.
package uniqueness

import "sync"

// Corpus is the in-run accumulator of accepted page bodies. It grows
// monotonically during a batch and is discarded at run end; it is never
// persisted. Scorers read an immutable snapshot, so synchronizing a future
// concurrent executor only requires this one structure.
type Corpus struct {
	mu      sync.RWMutex
	entries []string
}

// NewCorpus returns an empty corpus
func NewCorpus() *Corpus {
	return &Corpus{}
}

// Add appends an accepted content body
func (c *Corpus) Add(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, content)
}

// Len returns the number of accepted bodies
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of the current entries. The append-only discipline
// means a snapshot taken before a job can never include content from jobs
// that have not run yet.
func (c *Corpus) Snapshot() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make([]string, len(c.entries))
	copy(snapshot, c.entries)
	return snapshot
}
