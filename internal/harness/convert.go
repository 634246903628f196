package harness

import (
	"fmt"

	"github.com/reprise-ui/reprise/internal/wire"
)

// convertToValue shapes a YAML-parsed payload into the wire value for a
// slot. YAML integers arrive as int, floats as float64; both are accepted
// where the slot allows.
func convertToValue(slot wire.Slot, val interface{}) (wire.Value, error) {
	switch slot {
	case wire.SlotTrigger:
		if b, ok := val.(bool); ok {
			return wire.Trigger(b), nil
		}
	case wire.SlotBool:
		if b, ok := val.(bool); ok {
			return wire.Bool(b), nil
		}
	case wire.SlotInt:
		if n, ok := toInt64(val); ok {
			return wire.Int(n), nil
		}
	case wire.SlotDouble:
		if f, ok := toFloat64(val); ok {
			return wire.Double(f), nil
		}
	case wire.SlotString:
		if s, ok := val.(string); ok {
			return wire.String(s), nil
		}
	case wire.SlotIntArray:
		if arr, ok := val.([]interface{}); ok {
			out := make([]int64, len(arr))
			for i, elem := range arr {
				n, ok := toInt64(elem)
				if !ok {
					return nil, fmt.Errorf("int_array[%d]: %T is not an integer", i, elem)
				}
				out[i] = n
			}
			return wire.IntArray(out), nil
		}
	case wire.SlotDoubleArray:
		if arr, ok := val.([]interface{}); ok {
			out := make([]float64, len(arr))
			for i, elem := range arr {
				f, ok := toFloat64(elem)
				if !ok {
					return nil, fmt.Errorf("double_array[%d]: %T is not a number", i, elem)
				}
				out[i] = f
			}
			return wire.DoubleArray(out), nil
		}
	case wire.SlotStringArray:
		if arr, ok := val.([]interface{}); ok {
			out := make([]string, len(arr))
			for i, elem := range arr {
				s, ok := elem.(string)
				if !ok {
					return nil, fmt.Errorf("string_array[%d]: %T is not a string", i, elem)
				}
				out[i] = s
			}
			return wire.StringArray(out), nil
		}
	case wire.SlotJSON:
		if s, ok := val.(string); ok {
			return wire.JSON(s), nil
		}
	case wire.SlotFile:
		return nil, fmt.Errorf("file upload payloads are not representable in scenarios")
	}
	return nil, fmt.Errorf("value %T cannot occupy slot %s", val, slot)
}

// valueToTrace normalizes a payload for the trace so canonical
// serialization accepts it. Typed slices become []interface{} and
// file states become plain maps.
func valueToTrace(v wire.Value) interface{} {
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
		out := make([]interface{}, len(val))
		for i, n := range val {
			out[i] = n
		}
		return out
	case wire.DoubleArray:
		out := make([]interface{}, len(val))
		for i, f := range val {
			out[i] = f
		}
		return out
	case wire.StringArray:
		out := make([]interface{}, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case wire.JSON:
		return string(val)
	case wire.FileUpload:
		files := make([]interface{}, len(val.Files))
		for i, f := range val.Files {
			files[i] = map[string]interface{}{
				"id":   f.ID,
				"name": f.Name,
				"size": f.Size,
			}
		}
		return map[string]interface{}{
			"max_file_id": val.MaxFileID,
			"files":       files,
		}
	default:
		return nil
	}
}

// normalizeTrace shapes a registration result value for the trace.
// The default codecs hand scripts typed slices and file states; canonical
// serialization wants []interface{} and plain maps.
func normalizeTrace(v interface{}) interface{} {
	switch val := v.(type) {
	case []int64:
		out := make([]interface{}, len(val))
		for i, n := range val {
			out[i] = n
		}
		return out
	case []float64:
		out := make([]interface{}, len(val))
		for i, f := range val {
			out[i] = f
		}
		return out
	case []string:
		out := make([]interface{}, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case wire.FileUpload:
		return valueToTrace(val)
	default:
		return v
	}
}

func toInt64(val interface{}) (int64, bool) {
	switch n := val.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func toFloat64(val interface{}) (float64, bool) {
	switch f := val.(type) {
	case float64:
		return f, true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	}
	return 0, false
}
