package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON implements json.Marshaler for WidgetState using one-of
// encoding: the active slot name is the JSON field name.
//
//	{"id":"$$WIDGET_ID-...","trigger_value":true}
func (ws WidgetState) MarshalJSON() ([]byte, error) {
	if ws.Value == nil {
		return nil, fmt.Errorf("widget state %q has no value", ws.ID)
	}

	payload, err := marshalPayload(ws.Value)
	if err != nil {
		return nil, fmt.Errorf("widget state %q: %w", ws.ID, err)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	idBytes, err := json.Marshal(ws.ID)
	if err != nil {
		return nil, err
	}
	buf.Write(idBytes)
	buf.WriteByte(',')
	keyBytes, err := json.Marshal(string(ws.Value.Slot()))
	if err != nil {
		return nil, err
	}
	buf.Write(keyBytes)
	buf.WriteByte(':')
	buf.Write(payload)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler for WidgetState.
// Exactly one slot field must be present alongside the id.
func (ws *WidgetState) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	idRaw, ok := raw["id"]
	if !ok {
		return fmt.Errorf("widget state missing id")
	}
	if err := json.Unmarshal(idRaw, &ws.ID); err != nil {
		return fmt.Errorf("widget state id: %w", err)
	}

	var value Value
	for key, payload := range raw {
		if key == "id" {
			continue
		}
		slot := Slot(key)
		if !ValidSlot(slot) {
			return fmt.Errorf("widget state %q: unknown slot %q", ws.ID, key)
		}
		if value != nil {
			return fmt.Errorf("widget state %q: multiple value slots set", ws.ID)
		}
		v, err := unmarshalPayload(slot, payload)
		if err != nil {
			return fmt.Errorf("widget state %q: %w", ws.ID, err)
		}
		value = v
	}
	if value == nil {
		return fmt.Errorf("widget state %q: no value slot set", ws.ID)
	}

	ws.Value = value
	return nil
}

// MarshalJSON implements json.Marshaler for Snapshot.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	widgets := s.Widgets
	if widgets == nil {
		widgets = []WidgetState{}
	}
	return json.Marshal(struct {
		Widgets []WidgetState `json:"widgets"`
	}{Widgets: widgets})
}

// UnmarshalJSON implements json.Unmarshaler for Snapshot.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Widgets []WidgetState `json:"widgets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Widgets = raw.Widgets
	return nil
}

// MarshalValue encodes a value as a one-field one-of object, e.g.
// {"trigger_value":true}. Used for trace output and the event log.
func MarshalValue(v Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("nil widget value")
	}
	payload, err := marshalPayload(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	keyBytes, err := json.Marshal(string(v.Slot()))
	if err != nil {
		return nil, err
	}
	buf.Write(keyBytes)
	buf.WriteByte(':')
	buf.Write(payload)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalValue decodes a one-field one-of object produced by MarshalValue.
func UnmarshalValue(data []byte) (Value, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) != 1 {
		return nil, fmt.Errorf("value object must have exactly one slot field, got %d", len(raw))
	}
	for key, payload := range raw {
		slot := Slot(key)
		if !ValidSlot(slot) {
			return nil, fmt.Errorf("unknown slot %q", key)
		}
		return unmarshalPayload(slot, payload)
	}
	return nil, fmt.Errorf("empty value object")
}

func marshalPayload(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Trigger:
		return json.Marshal(bool(val))
	case Bool:
		return json.Marshal(bool(val))
	case Int:
		return json.Marshal(int64(val))
	case Double:
		return json.Marshal(float64(val))
	case String:
		return json.Marshal(string(val))
	case IntArray:
		return json.Marshal([]int64(val))
	case DoubleArray:
		return json.Marshal([]float64(val))
	case StringArray:
		return json.Marshal([]string(val))
	case JSON:
		if !json.Valid([]byte(val)) {
			return nil, fmt.Errorf("json slot holds invalid JSON")
		}
		return []byte(val), nil
	case FileUpload:
		return json.Marshal(val)
	default:
		return nil, fmt.Errorf("unknown value type %T", v)
	}
}

func unmarshalPayload(slot Slot, payload json.RawMessage) (Value, error) {
	switch slot {
	case SlotTrigger:
		var b bool
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, err
		}
		return Trigger(b), nil
	case SlotBool:
		var b bool
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case SlotInt:
		var n int64
		if err := json.Unmarshal(payload, &n); err != nil {
			return nil, err
		}
		return Int(n), nil
	case SlotDouble:
		var f float64
		if err := json.Unmarshal(payload, &f); err != nil {
			return nil, err
		}
		return Double(f), nil
	case SlotString:
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		return String(s), nil
	case SlotIntArray:
		var a []int64
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, err
		}
		return IntArray(a), nil
	case SlotDoubleArray:
		var a []float64
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, err
		}
		return DoubleArray(a), nil
	case SlotStringArray:
		var a []string
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, err
		}
		return StringArray(a), nil
	case SlotJSON:
		if !json.Valid(payload) {
			return nil, fmt.Errorf("json slot holds invalid JSON")
		}
		return JSON(payload), nil
	case SlotFile:
		var f FileUpload
		if err := json.Unmarshal(payload, &f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown slot %q", slot)
	}
}
