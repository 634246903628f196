package widget

import (
	"fmt"

	"github.com/reprise-ui/reprise/internal/wire"
)

// Descriptor is the declared shape of one widget for the duration of a
// single declaration call: its element kind, its configuration (label,
// bounds, options, ...), and the identity assigned during registration.
type Descriptor struct {
	Type   ElementType
	Config map[string]any

	// ID is assigned by Register once the identity has been derived.
	ID string

	encoded []byte
}

// NewDescriptor builds a descriptor for one widget declaration.
func NewDescriptor(t ElementType, config map[string]any) *Descriptor {
	return &Descriptor{Type: t, Config: config}
}

// EncodedConfig returns the canonical byte encoding of the configuration.
// The encoding is cached: descriptors live for a single declaration call
// and the config must not change after construction.
func (d *Descriptor) EncodedConfig() ([]byte, error) {
	if d.encoded != nil {
		return d.encoded, nil
	}
	config := d.Config
	if config == nil {
		config = map[string]any{}
	}
	encoded, err := wire.MarshalCanonical(config)
	if err != nil {
		return nil, fmt.Errorf("encode %s config: %w", d.Type, err)
	}
	d.encoded = encoded
	return encoded, nil
}
