package wire

// Slot names the active variant of a widget value union. Slot names are
// part of the wire payload (one-of semantics) and must be preserved
// verbatim through coalescing.
type Slot string

const (
	SlotTrigger     Slot = "trigger_value"
	SlotBool        Slot = "bool_value"
	SlotInt         Slot = "int_value"
	SlotDouble      Slot = "double_value"
	SlotString      Slot = "string_value"
	SlotIntArray    Slot = "int_array_value"
	SlotDoubleArray Slot = "double_array_value"
	SlotStringArray Slot = "string_array_value"
	SlotJSON        Slot = "json_value"
	SlotFile        Slot = "file_uploader_state_value"
)

// validSlots is the closed set of slot names accepted on the wire.
var validSlots = map[Slot]bool{
	SlotTrigger:     true,
	SlotBool:        true,
	SlotInt:         true,
	SlotDouble:      true,
	SlotString:      true,
	SlotIntArray:    true,
	SlotDoubleArray: true,
	SlotStringArray: true,
	SlotJSON:        true,
	SlotFile:        true,
}

// ValidSlot reports whether s names a known value slot.
func ValidSlot(s Slot) bool {
	return validSlots[s]
}

// Value is a sealed interface representing one widget value.
// Only Trigger, Bool, Int, Double, String, IntArray, DoubleArray,
// StringArray, JSON, and FileUpload implement it.
type Value interface {
	Slot() Slot
	widgetValue() // Sealed - only these types implement it
}

// Trigger is a one-shot "fired" signal (e.g. a button press), not a
// persistent value. True means the client reported a press the server has
// not yet observed.
type Trigger bool

func (Trigger) Slot() Slot   { return SlotTrigger }
func (Trigger) widgetValue() {}

// Bool is a persistent boolean value (e.g. a checkbox).
type Bool bool

func (Bool) Slot() Slot   { return SlotBool }
func (Bool) widgetValue() {}

// Int is an integer value, typically an option index (radio, selectbox).
type Int int64

func (Int) Slot() Slot   { return SlotInt }
func (Int) widgetValue() {}

// Double is a floating point value (number inputs).
type Double float64

func (Double) Slot() Slot   { return SlotDouble }
func (Double) widgetValue() {}

// String is a text value (text inputs, color picker, time input).
type String string

func (String) Slot() Slot   { return SlotString }
func (String) widgetValue() {}

// IntArray holds multiple option indices (multiselect).
type IntArray []int64

func (IntArray) Slot() Slot   { return SlotIntArray }
func (IntArray) widgetValue() {}

// DoubleArray holds multiple floating point values (range sliders).
type DoubleArray []float64

func (DoubleArray) Slot() Slot   { return SlotDoubleArray }
func (DoubleArray) widgetValue() {}

// StringArray holds multiple text values (date ranges).
type StringArray []string

func (StringArray) Slot() Slot   { return SlotStringArray }
func (StringArray) widgetValue() {}

// JSON is an opaque JSON document (custom component instances).
// The payload is stored verbatim; the runtime never interprets it.
type JSON string

func (JSON) Slot() Slot   { return SlotJSON }
func (JSON) widgetValue() {}

// UploadedFile describes one file held by an upload widget.
type UploadedFile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// FileUpload is the state of a file upload widget (file_uploader,
// camera_input).
type FileUpload struct {
	MaxFileID int64          `json:"max_file_id"`
	Files     []UploadedFile `json:"files,omitempty"`
}

func (FileUpload) Slot() Slot   { return SlotFile }
func (FileUpload) widgetValue() {}
