package lcd

import (
	"encoding/json"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var codec = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Object is a parsed JSON object. Numbers are kept as json.Number.
type Object map[string]any

// parseObject reports false for anything that is not a JSON object,
// including null.
func parseObject(text string) (Object, bool) {
	// jsoniter skips number syntax checks when UseNumber is set
	if !json.Valid([]byte(text)) {
		return nil, false
	}

	var v any
	if err := codec.UnmarshalFromString(text, &v); err != nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Object(obj), true
}

// Code reports whether the body signals an application error.
// Absent, null, false, zero and "" mean success.
func (o Object) Code() bool {
	return truthy(o["code"])
}

func truthy(v any) bool {
	switch c := v.(type) {
	case nil:
		return false
	case bool:
		return c
	case string:
		return c != ""
	case json.Number:
		f, err := strconv.ParseFloat(c.String(), 64)
		return err != nil || f != 0
	case float64:
		return c != 0
	case int:
		return c != 0
	case int64:
		return c != 0
	default:
		return true
	}
}

// Decode returns a Transform that decodes body[key] into T, or the whole body
// when key is empty. A missing key is an error.
func Decode[T any](key string) Transform[T] {
	return func(body Object) (T, error) {
		var out T

		var src any = map[string]any(body)
		if key != "" {
			v, ok := body[key]
			if !ok {
				return out, errors.Errorf("response has no %q field", key)
			}
			src = v
		}

		raw, err := codec.Marshal(src)
		if err != nil {
			return out, errors.Wrap(err, "failed to re-encode response")
		}
		if err := codec.Unmarshal(raw, &out); err != nil {
			return out, errors.Wrapf(err, "failed to decode %T", out)
		}
		return out, nil
	}
}

// Identity hands back the parsed body unchanged.
func Identity(body Object) (Object, error) {
	return body, nil
}
