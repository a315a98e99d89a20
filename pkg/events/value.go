package events

import (
	"fmt"
	"strconv"
)

// Value is a closed set of payload types carried by custom events: text,
// unsigned integers, floats, characters and opaque shared payloads.
type Value interface {
	isValue()
	String() string
}

// Text is a string value.
type Text string

// Uint is an unsigned integer value widened to 64 bits.
type Uint uint64

// Float is a floating point value widened to 64 bits.
type Float float64

// Char is a single character value.
type Char rune

// Custom wraps an application-defined payload. Copies of the value share the
// payload; the receiver decides how to use it.
type Custom struct {
	Payload any
}

func (Text) isValue()   {}
func (Uint) isValue()   {}
func (Float) isValue()  {}
func (Char) isValue()   {}
func (Custom) isValue() {}

func (v Text) String() string  { return string(v) }
func (v Uint) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Char) String() string  { return string(rune(v)) }
func (v Custom) String() string {
	return fmt.Sprintf("custom(%T)", v.Payload)
}

// Unsigned is the set of unsigned integer types accepted by UintValue.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floating is the set of float types accepted by FloatValue.
type Floating interface {
	~float32 | ~float64
}

// TextValue wraps s.
func TextValue(s string) Value { return Text(s) }

// UintValue widens any unsigned integer to a Uint.
func UintValue[T Unsigned](n T) Value { return Uint(uint64(n)) }

// FloatValue widens any float to a Float.
func FloatValue[T Floating](f T) Value { return Float(float64(f)) }

// CharValue wraps r.
func CharValue(r rune) Value { return Char(r) }

// CustomValue wraps an opaque payload.
func CustomValue(payload any) Value { return Custom{Payload: payload} }

// ValueOf converts a dynamic value. Strings, unsigned integers, floats and
// existing Values convert; everything else, including signed integers and
// runes, is rejected and must be wrapped explicitly.
func ValueOf(v any) (Value, bool) {
	switch x := v.(type) {
	case Value:
		return x, true
	case string:
		return Text(x), true
	case uint:
		return UintValue(x), true
	case uint8:
		return UintValue(x), true
	case uint16:
		return UintValue(x), true
	case uint32:
		return UintValue(x), true
	case uint64:
		return UintValue(x), true
	case uintptr:
		return UintValue(x), true
	case float32:
		return FloatValue(x), true
	case float64:
		return FloatValue(x), true
	default:
		return nil, false
	}
}

// CustomAs extracts a typed payload from a Custom value.
func CustomAs[T any](v Value) (T, bool) {
	var zero T
	c, ok := v.(Custom)
	if !ok {
		return zero, false
	}
	out, ok := c.Payload.(T)
	if !ok {
		return zero, false
	}
	return out, true
}

// FormatValues renders args as a comma separated list for logs.
func FormatValues(args []Value) string {
	if args == nil {
		return "none"
	}
	out := make([]byte, 0, 16*len(args))
	for i, a := range args {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = append(out, a.String()...)
	}
	return string(out)
}
