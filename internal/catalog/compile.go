package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/reprise-ui/reprise/internal/widget"
	"github.com/reprise-ui/reprise/internal/wire"
)

//go:embed catalog.cue
var defaultCatalogCUE string

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded widget catalog. It mirrors the runtime's
// static element table; the two are tested for agreement.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = compileSource(defaultCatalogCUE, "catalog.cue")
	})
	return defaultCatalog, defaultErr
}

// LoadFile compiles a widget catalog from a CUE file. The file must
// declare its entries under a top-level "widgets" struct.
func LoadFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return compileSource(string(src), path)
}

func compileSource(src, filename string) (*Catalog, error) {
	cctx := cuecontext.New()
	v := cctx.CompileString(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	widgets := v.LookupPath(cue.ParsePath("widgets"))
	if !widgets.Exists() {
		return nil, &CompileError{
			Field:   "widgets",
			Message: "catalog must declare a top-level widgets struct",
			Pos:     v.Pos(),
		}
	}
	return CompileCatalog(widgets)
}

// CompileCatalog parses a CUE value holding the widgets struct into a
// Catalog. Uses the CUE SDK's Go API directly (not a CLI subprocess).
func CompileCatalog(v cue.Value) (*Catalog, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	entries := make(map[widget.ElementType]Entry)
	for iter.Next() {
		element := iter.Selector().String()
		entry, err := compileEntry(element, iter.Value())
		if err != nil {
			return nil, err
		}
		entries[entry.Element] = entry
	}

	if len(entries) == 0 {
		return nil, &CompileError{
			Field:   "widgets",
			Message: "catalog declares no widgets",
			Pos:     v.Pos(),
		}
	}

	return &Catalog{entries: entries}, nil
}

func compileEntry(element string, v cue.Value) (Entry, error) {
	entry := Entry{Element: widget.ElementType(element)}

	slotVal := v.LookupPath(cue.ParsePath("slot"))
	if !slotVal.Exists() {
		return Entry{}, &CompileError{
			Element: element,
			Field:   "slot",
			Message: "slot is required",
			Pos:     v.Pos(),
		}
	}
	slot, err := slotVal.String()
	if err != nil {
		return Entry{}, formatCUEError(err)
	}
	if !wire.ValidSlot(wire.Slot(slot)) {
		return Entry{}, &CompileError{
			Element: element,
			Field:   "slot",
			Message: fmt.Sprintf("unknown value slot %q", slot),
			Pos:     slotVal.Pos(),
		}
	}
	entry.Slot = wire.Slot(slot)

	docVal := v.LookupPath(cue.ParsePath("doc"))
	if docVal.Exists() {
		doc, err := docVal.String()
		if err != nil {
			return Entry{}, formatCUEError(err)
		}
		entry.Doc = doc
	}

	configVal := v.LookupPath(cue.ParsePath("config"))
	if configVal.Exists() {
		entry.schema = configVal
	}

	return entry, nil
}
