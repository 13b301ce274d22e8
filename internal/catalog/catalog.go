// Package catalog holds the fixed set of backend configurations the manager
// may launch. A Catalog is immutable after construction and safe for
// concurrent readers.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

type Catalog struct {
	models []types.Model
	index  map[string]int
}

// New builds a catalog, rejecting empty or duplicate identifiers.
// Entry order is preserved for List.
func New(models []types.Model) (*Catalog, error) {
	c := &Catalog{
		models: make([]types.Model, 0, len(models)),
		index:  make(map[string]int, len(models)),
	}
	for i, m := range models {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog entry %d: empty id", i)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, id)
		}
		if m.Name == "" {
			return nil, fmt.Errorf("catalog entry %q: empty name", id)
		}
		if m.MaxModelLen <= 0 {
			return nil, fmt.Errorf("catalog entry %q: max_model_len must be positive", id)
		}
		m.ID = id
		c.index[id] = len(c.models)
		c.models = append(c.models, m)
	}
	return c, nil
}

// MustNew is New that panics on error. For package-level tables only.
func MustNew(models []types.Model) *Catalog {
	c, err := New(models)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the configuration for id.
func (c *Catalog) Lookup(id string) (types.Model, bool) {
	i, ok := c.index[id]
	if !ok {
		return types.Model{}, false
	}
	return c.models[i], true
}

// List returns a copy of all entries in catalog order.
func (c *Catalog) List() []types.Model {
	out := make([]types.Model, len(c.models))
	copy(out, c.models)
	return out
}

// IDs returns the identifiers sorted lexically.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.models))
	for _, m := range c.models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Len() int { return len(c.models) }
