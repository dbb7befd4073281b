package builtin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/flowbylang/flowby/internal/value"
)

// JSONNamespace implements JSON.parse/stringify/get/set over
// github.com/tidwall/gjson and github.com/tidwall/sjson, using their
// path-string addressing for get/set instead of a decoded tree walk.
type JSONNamespace struct{}

func (JSONNamespace) Name() string { return "JSON" }

func (JSONNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	switch method {
	case "parse":
		if len(args) != 1 || args[0].Kind() != value.KindString {
			return value.None, fmt.Errorf("JSON.parse() expects a String argument")
		}
		if !gjson.Valid(args[0].AsString()) {
			return value.None, fmt.Errorf("JSON.parse(): invalid JSON")
		}
		return gjsonToValue(gjson.Parse(args[0].AsString())), nil
	case "stringify":
		if len(args) != 1 {
			return value.None, fmt.Errorf("JSON.stringify() expects exactly 1 argument")
		}
		return value.String(encodeJSON(args[0])), nil
	case "get":
		if len(args) != 2 || args[0].Kind() != value.KindString || args[1].Kind() != value.KindString {
			return value.None, fmt.Errorf("JSON.get() expects (jsonString, path)")
		}
		result := gjson.Get(args[0].AsString(), args[1].AsString())
		if !result.Exists() {
			return value.None, nil
		}
		return gjsonToValue(result), nil
	case "set":
		if len(args) != 3 || args[0].Kind() != value.KindString || args[1].Kind() != value.KindString {
			return value.None, fmt.Errorf("JSON.set() expects (jsonString, path, value)")
		}
		var out string
		var err error
		switch args[2].Kind() {
		case value.KindList, value.KindDict:
			out, err = sjson.SetRaw(args[0].AsString(), args[1].AsString(), encodeJSON(args[2]))
		default:
			out, err = sjson.Set(args[0].AsString(), args[1].AsString(), jsonScalar(args[2]))
		}
		if err != nil {
			return value.None, fmt.Errorf("JSON.set(): %w", err)
		}
		return value.String(out), nil
	default:
		return value.None, fmt.Errorf("JSON has no member %q", method)
	}
}

func gjsonToValue(r gjson.Result) value.Value {
	switch {
	case r.IsArray():
		var items []value.Value
		r.ForEach(func(_, v gjson.Result) bool {
			items = append(items, gjsonToValue(v))
			return true
		})
		return value.ListOf(items)
	case r.IsObject():
		d := value.NewDict()
		r.ForEach(func(k, v gjson.Result) bool {
			d.Set(k.String(), gjsonToValue(v))
			return true
		})
		return value.DictOf(d)
	case r.Type == gjson.String:
		return value.String(r.String())
	case r.Type == gjson.Number:
		if strings.ContainsAny(r.Raw, ".eE") {
			return value.Float(r.Float())
		}
		return value.Int(r.Int())
	case r.Type == gjson.True:
		return value.True
	case r.Type == gjson.False:
		return value.False
	default:
		return value.None
	}
}

// jsonScalar coerces a non-collection Value to whatever sjson.Set accepts
// directly.
func jsonScalar(v value.Value) interface{} {
	switch v.Kind() {
	case value.KindString:
		return v.AsString()
	case value.KindInt:
		return v.AsInt()
	case value.KindFloat:
		return v.AsFloat()
	case value.KindBool:
		return v.AsBool()
	default:
		return nil
	}
}

func encodeJSON(v value.Value) string {
	var sb strings.Builder
	writeJSON(&sb, v)
	return sb.String()
}

// writeJSON assembles lists and dicts by hand so Dict insertion order
// survives, but delegates every scalar — strings and keys in particular,
// whose control-character escaping JSON constrains tightly — to
// encoding/json.Marshal.
func writeJSON(sb *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNone:
		sb.WriteString("null")
	case value.KindBool:
		if v.AsBool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case value.KindInt:
		sb.WriteString(strconv.FormatInt(v.AsInt(), 10))
	case value.KindFloat:
		writeJSONScalar(sb, v.AsFloat())
	case value.KindString:
		writeJSONScalar(sb, v.AsString())
	case value.KindList:
		sb.WriteByte('[')
		items := v.AsList().Items()
		for i, item := range items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSON(sb, item)
		}
		sb.WriteByte(']')
	case value.KindDict:
		sb.WriteByte('{')
		keys := v.AsDict().Keys()
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONScalar(sb, k)
			sb.WriteByte(':')
			val, _ := v.AsDict().Get(k)
			writeJSON(sb, val)
		}
		sb.WriteByte('}')
	default:
		writeJSONScalar(sb, value.Str(v))
	}
}

func writeJSONScalar(sb *strings.Builder, x interface{}) {
	data, err := json.Marshal(x)
	if err != nil {
		// NaN/Inf floats are the only inputs Marshal can reject here.
		sb.WriteString("null")
		return
	}
	sb.Write(data)
}
