package widget

import "github.com/reprise-ui/reprise/internal/wire"

// Deserializer converts a widget's wire value into the value returned to
// the declaring script. A nil wire value requests the widget's default.
// The widget identity is provided for deserializers that key off it.
type Deserializer func(v wire.Value, widgetID string) any

// Serializer converts a script-level value back into its wire
// representation. Returns an error when the value cannot occupy the
// widget's slot.
type Serializer func(v any) (wire.Value, error)

// Callback is invoked when a widget's value changes, with the positional
// and keyword arguments bound at registration.
type Callback func(args []any, kwargs map[string]any)

// CallbackBundle binds a change callback with its arguments.
type CallbackBundle struct {
	Fn     Callback
	Args   []any
	Kwargs map[string]any
}

// Metadata is the committed description of a widget handed to the session
// store. A new registration with the same identity supersedes the previous
// metadata; nothing is merged.
type Metadata struct {
	ID          string
	Type        ElementType
	Slot        wire.Slot
	Deserialize Deserializer
	Serialize   Serializer
	Callback    *CallbackBundle
}

// RegisterResult carries the value the declaring script observes this run.
// ValueChanged reports that the value was set programmatically and the
// client's copy is stale.
type RegisterResult struct {
	Value        any
	ValueChanged bool
}

// FallbackResult builds the result returned when no run context exists:
// the deserializer's notion of a default value.
func FallbackResult(deserialize Deserializer, widgetID string) RegisterResult {
	return RegisterResult{Value: deserialize(nil, widgetID)}
}

// SessionStore is the committal point for registered widgets. It holds
// committed metadata and values across runs and resolves the value the
// caller should observe. Implementations may fail for reasons outside
// this core (e.g. storage disconnected); such errors surface unchanged.
type SessionStore interface {
	RegisterWidget(meta Metadata, userKey string) (RegisterResult, error)
}
