package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintValue_Widening(t *testing.T) {
	assert.Equal(t, Uint(5), UintValue(uint8(5)))
	assert.Equal(t, Uint(5), UintValue(uint16(5)))
	assert.Equal(t, Uint(5), UintValue(uint32(5)))
	assert.Equal(t, Uint(5), UintValue(uint64(5)))
	assert.Equal(t, Uint(5), UintValue(uint(5)))
	assert.Equal(t, UintValue(uint8(5)), UintValue(uint64(5)))
	assert.Equal(t, Uint(^uint64(0)), UintValue(^uint64(0)))
}

func TestFloatValue_Widening(t *testing.T) {
	f, ok := FloatValue(float32(3.5)).(Float)
	require.True(t, ok)
	assert.InDelta(t, 3.5, float64(f), 1e-9)
	assert.Equal(t, Float(0.25), FloatValue(0.25))
}

func TestValueConstructors(t *testing.T) {
	assert.Equal(t, Text("hello"), TextValue("hello"))
	assert.Equal(t, Char('x'), CharValue('x'))
	assert.Equal(t, "x", CharValue('x').String())
	assert.Equal(t, "42", UintValue(uint8(42)).String())
	assert.Equal(t, "3.5", FloatValue(3.5).String())
}

type payload struct {
	hits int
}

func TestCustomValue_SharedPayload(t *testing.T) {
	p := &payload{}
	v := CustomValue(p)
	copied := v

	got, ok := CustomAs[*payload](copied)
	require.True(t, ok)
	got.hits++

	orig, ok := CustomAs[*payload](v)
	require.True(t, ok)
	assert.Equal(t, 1, orig.hits)
	assert.Same(t, p, orig)

	_, ok = CustomAs[string](v)
	assert.False(t, ok)
	_, ok = CustomAs[*payload](TextValue("nope"))
	assert.False(t, ok)
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
		ok   bool
	}{
		{name: "string", in: "abc", want: Text("abc"), ok: true},
		{name: "uint8", in: uint8(7), want: Uint(7), ok: true},
		{name: "uint64", in: uint64(7), want: Uint(7), ok: true},
		{name: "uintptr", in: uintptr(9), want: Uint(9), ok: true},
		{name: "float32", in: float32(0.5), want: Float(0.5), ok: true},
		{name: "value passthrough", in: Char('z'), want: Char('z'), ok: true},
		{name: "signed int rejected", in: -3, ok: false},
		{name: "bool rejected", in: true, ok: false},
		{name: "slice rejected", in: []int{1}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValueOf(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatValues(t *testing.T) {
	assert.Equal(t, "none", FormatValues(nil))
	assert.Equal(t, "", FormatValues([]Value{}))
	assert.Equal(t, "a, 1, c", FormatValues([]Value{Text("a"), Uint(1), Char('c')}))
}
