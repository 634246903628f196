package widget

import (
	"sort"

	"github.com/reprise-ui/reprise/internal/wire"
)

// ElementType tags the kind of UI control a widget declaration describes.
type ElementType string

const (
	ElementButton            ElementType = "button"
	ElementCameraInput       ElementType = "camera_input"
	ElementCheckbox          ElementType = "checkbox"
	ElementColorPicker       ElementType = "color_picker"
	ElementComponentInstance ElementType = "component_instance"
	ElementDateInput         ElementType = "date_input"
	ElementDownloadButton    ElementType = "download_button"
	ElementFileUploader      ElementType = "file_uploader"
	ElementMultiselect       ElementType = "multiselect"
	ElementNumberInput       ElementType = "number_input"
	ElementRadio             ElementType = "radio"
	ElementSelectbox         ElementType = "selectbox"
	ElementSlider            ElementType = "slider"
	ElementTextArea          ElementType = "text_area"
	ElementTextInput         ElementType = "text_input"
	ElementTimeInput         ElementType = "time_input"
)

// elementValueSlots maps each element kind to the value slot it occupies.
// Read-only configuration: the table is fixed at build time and never
// re-derived at runtime.
var elementValueSlots = map[ElementType]wire.Slot{
	ElementButton:            wire.SlotTrigger,
	ElementCameraInput:       wire.SlotFile,
	ElementCheckbox:          wire.SlotBool,
	ElementColorPicker:       wire.SlotString,
	ElementComponentInstance: wire.SlotJSON,
	ElementDateInput:         wire.SlotStringArray,
	ElementDownloadButton:    wire.SlotTrigger,
	ElementFileUploader:      wire.SlotFile,
	ElementMultiselect:       wire.SlotIntArray,
	ElementNumberInput:       wire.SlotDouble,
	ElementRadio:             wire.SlotInt,
	ElementSelectbox:         wire.SlotInt,
	ElementSlider:            wire.SlotDoubleArray,
	ElementTextArea:          wire.SlotString,
	ElementTextInput:         wire.SlotString,
	ElementTimeInput:         wire.SlotString,
}

// ValueSlotFor returns the value slot for an element kind.
func ValueSlotFor(t ElementType) (wire.Slot, bool) {
	slot, ok := elementValueSlots[t]
	return slot, ok
}

// ElementTypes returns all known element kinds in lexical order.
func ElementTypes() []ElementType {
	types := make([]ElementType, 0, len(elementValueSlots))
	for t := range elementValueSlots {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
