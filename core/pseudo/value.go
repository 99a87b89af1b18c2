package pseudo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the dynamic type of a Value.
type ValueKind int

const (
	NumberValue ValueKind = iota
	StringValue
	BoolValue
)

func (k ValueKind) String() string {
	switch k {
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case BoolValue:
		return "boolean"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is a number, a string or a boolean. The zero Value is the number 0.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	b    bool
}

func Number(f float64) Value { return Value{kind: NumberValue, num: f} }
func String(s string) Value  { return Value{kind: StringValue, str: s} }
func Bool(b bool) Value      { return Value{kind: BoolValue, b: b} }

func (v Value) Kind() ValueKind { return v.kind }

// AsNumber, AsString and AsBool report false when v holds another kind.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == NumberValue }
func (v Value) AsString() (string, bool)  { return v.str, v.kind == StringValue }
func (v Value) AsBool() (bool, bool)      { return v.b, v.kind == BoolValue }

// String renders v the way print shows it: whole numbers without a fraction,
// strings unquoted, booleans as true/false.
func (v Value) String() string {
	switch v.kind {
	case StringValue:
		return v.str
	case BoolValue:
		return strconv.FormatBool(v.b)
	default:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case StringValue:
		return v.str == o.str
	case BoolValue:
		return v.b == o.b
	default:
		return v.num == o.num
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case StringValue:
		return json.Marshal(v.str)
	case BoolValue:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.num)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		*v = Number(x)
	case string:
		*v = String(x)
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("pseudo: cannot decode %s into a Value", string(data))
	}
	return nil
}
