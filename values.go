package remat

// ValueKind represents the kind of an input value.
type ValueKind int

const (
	// ValueNone indicates an input without a value.
	ValueNone ValueKind = iota
	// ValueNumber indicates a scalar value.
	ValueNumber
	// ValueColor indicates an RGB value.
	ValueColor
	// ValueString indicates a string value, such as an image file name.
	ValueString
)

// Value is the current value of a node input.
type Value struct {
	Str   string    // String value
	Color Color     // Color value
	Kind  ValueKind // Value kind
	Num   float64   // Number value
}

// NumberValue creates a scalar Value.
func NumberValue(v float64) Value { return Value{Kind: ValueNumber, Num: v} }

// RGBValue creates a color Value.
func RGBValue(r, g, b float64) Value { return Value{Kind: ValueColor, Color: SetColorRGB(r, g, b)} }

// ColorValue creates a color Value from c.
func ColorValue(c Color) Value { return Value{Kind: ValueColor, Color: c} }

// StringValue creates a string Value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// Float returns the value as a scalar. Colors collapse to their red channel,
// which is how the host reports a color input read as a number.
func (v Value) Float() float64 {
	switch v.Kind {
	case ValueNumber:
		return v.Num
	case ValueColor:
		return v.Color.R
	default:
		return 0
	}
}

// AsColor returns the value as a color. Scalars become gray.
func (v Value) AsColor() Color {
	switch v.Kind {
	case ValueColor:
		return v.Color
	case ValueNumber:
		return Gray(v.Num)
	default:
		return Black
	}
}

// AsString returns the string payload, empty for non-string values.
func (v Value) AsString() string {
	if v.Kind != ValueString {
		return ""
	}
	return v.Str
}
