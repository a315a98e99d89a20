package bridge

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/persistui/pkg/errors"
	"github.com/odvcencio/persistui/pkg/events"
)

// Envelope is the JSON form of a custom event on the bus.
type Envelope struct {
	ID     string      `json:"id"`
	Source string      `json:"source,omitempty"`
	Name   string      `json:"name"`
	Args   []WireValue `json:"args,omitempty"`
	Time   time.Time   `json:"time"`
}

// WireValue is one tagged argument.
type WireValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Argument type tags.
const (
	TypeText   = "text"
	TypeUint   = "uint"
	TypeFloat  = "float"
	TypeChar   = "char"
	TypeCustom = "custom"
)

// Encode serializes ev. Custom payloads must be JSON-marshalable; floats
// must be finite.
func Encode(ev events.CustomEvent, source string) ([]byte, error) {
	env := Envelope{
		ID:     ulid.Make().String(),
		Source: source,
		Name:   ev.Name,
		Time:   time.Now().UTC(),
	}
	for i, v := range ev.Args {
		wv, err := encodeValue(v)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "encode argument").
				WithContext("event", ev.Name).
				WithContext("index", i).
				WithContext("cause", err.Error())
		}
		env.Args = append(env.Args, wv)
	}
	return json.Marshal(env)
}

func encodeValue(v events.Value) (WireValue, error) {
	var (
		tag     string
		payload any
	)
	switch x := v.(type) {
	case events.Text:
		tag, payload = TypeText, string(x)
	case events.Uint:
		tag, payload = TypeUint, uint64(x)
	case events.Float:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return WireValue{}, fmt.Errorf("non-finite float %v", float64(x))
		}
		tag, payload = TypeFloat, float64(x)
	case events.Char:
		tag, payload = TypeChar, string(rune(x))
	case events.Custom:
		tag, payload = TypeCustom, x.Payload
	default:
		return WireValue{}, fmt.Errorf("unsupported value %T", v)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return WireValue{}, err
	}
	return WireValue{Type: tag, Value: raw}, nil
}

// Decode parses an envelope and rebuilds the custom event. Custom payloads
// come back as json.RawMessage.
func Decode(data []byte) (Envelope, events.CustomEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, events.CustomEvent{}, errors.Wrap(err, errors.ErrCodeBridgeDecode, "decode envelope")
	}
	if env.Name == "" {
		return env, events.CustomEvent{}, errors.New(errors.ErrCodeBridgeDecode, "envelope has no event name")
	}

	args := make([]events.Value, 0, len(env.Args))
	for i, wv := range env.Args {
		v, err := decodeValue(wv)
		if err != nil {
			return env, events.CustomEvent{}, errors.New(errors.ErrCodeBridgeDecode, "decode argument").
				WithContext("event", env.Name).
				WithContext("index", i).
				WithContext("cause", err.Error())
		}
		args = append(args, v)
	}
	return env, events.NewCustom(env.Name, args...), nil
}

func decodeValue(wv WireValue) (events.Value, error) {
	switch wv.Type {
	case TypeText:
		var s string
		if err := json.Unmarshal(wv.Value, &s); err != nil {
			return nil, err
		}
		return events.TextValue(s), nil
	case TypeUint:
		var n uint64
		if err := json.Unmarshal(wv.Value, &n); err != nil {
			return nil, err
		}
		return events.UintValue(n), nil
	case TypeFloat:
		var f float64
		if err := json.Unmarshal(wv.Value, &f); err != nil {
			return nil, err
		}
		return events.FloatValue(f), nil
	case TypeChar:
		var s string
		if err := json.Unmarshal(wv.Value, &s); err != nil {
			return nil, err
		}
		r := []rune(s)
		if len(r) != 1 {
			return nil, fmt.Errorf("char must be one rune, got %q", s)
		}
		return events.CharValue(r[0]), nil
	case TypeCustom:
		return events.CustomValue(append(json.RawMessage(nil), wv.Value...)), nil
	default:
		return nil, fmt.Errorf("unknown type %q", wv.Type)
	}
}
