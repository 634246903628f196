// Package wire defines the widget state wire format exchanged between the
// server runtime and the display client.
//
// A widget's value is a tagged union: exactly one slot of a fixed set
// (trigger, bool, int, double, string, array variants, json, file upload)
// is active at a time. The active slot is an explicit discriminant carried
// on the wire (the JSON field name), never an only-one-set-by-convention
// group of optional fields. This makes "same slot" checks during state
// coalescing a type switch rather than a runtime convention.
//
// The package also provides canonical serialization for widget
// configurations. Widget identity is content-addressed from configuration
// bytes, so the encoding must be byte-stable across process restarts:
// object keys are sorted by UTF-16 code units (RFC 8785 ordering), strings
// are NFC normalized, and HTML characters are not escaped.
package wire
