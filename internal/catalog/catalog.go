package catalog

import (
	"fmt"
	"sort"

	"cuelang.org/go/cue"

	"github.com/reprise-ui/reprise/internal/widget"
	"github.com/reprise-ui/reprise/internal/wire"
)

// Entry describes one widget element kind in a catalog.
type Entry struct {
	Element widget.ElementType
	Slot    wire.Slot
	Doc     string

	// schema is the CUE config schema; the zero value means the entry
	// accepts any configuration.
	schema cue.Value
}

// HasSchema reports whether the entry carries a config schema.
func (e Entry) HasSchema() bool {
	return e.schema.Exists()
}

// Catalog is a compiled widget catalog.
type Catalog struct {
	entries map[widget.ElementType]Entry
}

// Slot returns the value slot declared for an element kind.
func (c *Catalog) Slot(t widget.ElementType) (wire.Slot, bool) {
	entry, ok := c.entries[t]
	if !ok {
		return "", false
	}
	return entry.Slot, true
}

// Entry returns the catalog entry for an element kind.
func (c *Catalog) Entry(t widget.ElementType) (Entry, bool) {
	entry, ok := c.entries[t]
	return entry, ok
}

// Entries returns all catalog entries in lexical element order.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Element < entries[j].Element })
	return entries
}

// Len returns the number of element kinds in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// ValidateConfig unifies a declared widget configuration against the
// element's config schema. Configurations for elements without a schema
// always validate.
func (c *Catalog) ValidateConfig(t widget.ElementType, config map[string]any) error {
	entry, ok := c.entries[t]
	if !ok {
		return fmt.Errorf("unknown element type %q", t)
	}
	if !entry.schema.Exists() {
		return nil
	}

	if config == nil {
		config = map[string]any{}
	}
	cctx := entry.schema.Context()
	declared := cctx.Encode(config)
	if err := declared.Err(); err != nil {
		return formatCUEError(err)
	}

	unified := entry.schema.Unify(declared)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s config: %w", t, formatCUEError(err))
	}
	return nil
}
