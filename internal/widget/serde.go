package widget

import (
	"fmt"

	"github.com/reprise-ui/reprise/internal/wire"
)

// DefaultCodec returns the standard codec for a value slot: wire values
// map to their native Go shapes and a nil wire value maps to the slot's
// zero default. Individual widget implementations layer their own codecs
// (option-index resolution, date parsing, ...) on top of these.
func DefaultCodec(slot wire.Slot) (Deserializer, Serializer) {
	return defaultDeserializer(slot), defaultSerializer(slot)
}

func defaultDeserializer(slot wire.Slot) Deserializer {
	return func(v wire.Value, _ string) any {
		if v == nil || v.Slot() != slot {
			return defaultValue(slot)
		}
		switch val := v.(type) {
		case wire.Trigger:
			return bool(val)
		case wire.Bool:
			return bool(val)
		case wire.Int:
			return int64(val)
		case wire.Double:
			return float64(val)
		case wire.String:
			return string(val)
		case wire.IntArray:
			return []int64(val)
		case wire.DoubleArray:
			return []float64(val)
		case wire.StringArray:
			return []string(val)
		case wire.JSON:
			return string(val)
		case wire.FileUpload:
			return val
		default:
			return defaultValue(slot)
		}
	}
}

func defaultSerializer(slot wire.Slot) Serializer {
	return func(v any) (wire.Value, error) {
		switch slot {
		case wire.SlotTrigger:
			if b, ok := v.(bool); ok {
				return wire.Trigger(b), nil
			}
		case wire.SlotBool:
			if b, ok := v.(bool); ok {
				return wire.Bool(b), nil
			}
		case wire.SlotInt:
			switch n := v.(type) {
			case int64:
				return wire.Int(n), nil
			case int:
				return wire.Int(n), nil
			}
		case wire.SlotDouble:
			switch f := v.(type) {
			case float64:
				return wire.Double(f), nil
			case int:
				return wire.Double(f), nil
			}
		case wire.SlotString:
			if s, ok := v.(string); ok {
				return wire.String(s), nil
			}
		case wire.SlotIntArray:
			if a, ok := v.([]int64); ok {
				return wire.IntArray(a), nil
			}
		case wire.SlotDoubleArray:
			if a, ok := v.([]float64); ok {
				return wire.DoubleArray(a), nil
			}
		case wire.SlotStringArray:
			if a, ok := v.([]string); ok {
				return wire.StringArray(a), nil
			}
		case wire.SlotJSON:
			if s, ok := v.(string); ok {
				return wire.JSON(s), nil
			}
		case wire.SlotFile:
			if f, ok := v.(wire.FileUpload); ok {
				return f, nil
			}
		}
		return nil, fmt.Errorf("value %T cannot occupy slot %s", v, slot)
	}
}

func defaultValue(slot wire.Slot) any {
	switch slot {
	case wire.SlotTrigger, wire.SlotBool:
		return false
	case wire.SlotInt:
		return int64(0)
	case wire.SlotDouble:
		return float64(0)
	case wire.SlotString:
		return ""
	case wire.SlotIntArray:
		return []int64{}
	case wire.SlotDoubleArray:
		return []float64{}
	case wire.SlotStringArray:
		return []string{}
	case wire.SlotJSON:
		return "null"
	case wire.SlotFile:
		return wire.FileUpload{}
	default:
		return nil
	}
}
