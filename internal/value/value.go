// Package value defines Flowby's runtime Value: a closed tagged union
// covering every type a script expression can produce.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the tag of a Value.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindDict
	KindFunction
	KindNamespace
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindDict:
		return "Dict"
	case KindFunction:
		return "Function"
	case KindNamespace:
		return "Namespace"
	case KindResource:
		return "Resource"
	}
	return "Unknown"
}

// Value is the dynamic value every Flowby expression evaluates to.
type Value struct {
	kind Kind

	b bool
	i int64
	f float64
	s string

	list *List
	dict *Dict
	fn   *Function
	ns   Namespace
	res  Resource
}

// Namespace is the member-dispatch protocol implemented by host-provided
// namespace objects (Math, random, http, env, JSON, util, ...) and is the
// contract NamespaceDispatch is built on.
type Namespace interface {
	Name() string
	Invoke(method string, args []Value, kwargs map[string]Value) (Value, error)
}

// Resource is the opaque handle produced by the `Resource()` built-in. Like
// Namespace it supports method dispatch, but is also a distinct Kind so
// equality and truthiness rules can special-case it.
type Resource interface {
	Invoke(method string, args []Value, kwargs map[string]Value) (Value, error)
	Describe() string
}

var (
	None  = Value{kind: KindNone}
	True  = Value{kind: KindBool, b: true}
	False = Value{kind: KindBool, b: false}
)

func Bool(b bool) Value    { return Value{kind: KindBool, b: b} }
func Int(i int64) Value    { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func ListOf(items []Value) Value { return Value{kind: KindList, list: NewList(items)} }
func DictOf(d *Dict) Value  { return Value{kind: KindDict, dict: d} }
func FuncVal(fn *Function) Value { return Value{kind: KindFunction, fn: fn} }
func NamespaceVal(ns Namespace) Value { return Value{kind: KindNamespace, ns: ns} }
func ResourceVal(r Resource) Value { return Value{kind: KindResource, res: r} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNone() bool { return v.kind == KindNone }

func (v Value) AsBool() bool       { return v.b }
func (v Value) AsInt() int64       { return v.i }
func (v Value) AsFloat() float64   { return v.f }
func (v Value) AsString() string  { return v.s }
func (v Value) AsList() *List     { return v.list }
func (v Value) AsDict() *Dict     { return v.dict }
func (v Value) AsFunction() *Function { return v.fn }
func (v Value) AsNamespace() Namespace { return v.ns }
func (v Value) AsResource() Resource  { return v.res }

// Truthy: None, False, 0, 0.0, "", empty List, empty
// Dict are falsy; everything else truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	case KindList:
		return v.list.Len() > 0
	case KindDict:
		return v.dict.Len() > 0
	default:
		return true
	}
}

// Equal: numbers compare across Int/Float,
// collections compare element-wise, Functions/Namespaces/Resources compare
// by identity.
func Equal(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return numericFloat(a) == numericFloat(b)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindList:
		if a.list.Len() != b.list.Len() {
			return false
		}
		for i := 0; i < a.list.Len(); i++ {
			if !Equal(a.list.Get(i), b.list.Get(i)) {
				return false
			}
		}
		return true
	case KindDict:
		if a.dict.Len() != b.dict.Len() {
			return false
		}
		for _, k := range a.dict.Keys() {
			av, _ := a.dict.Get(k)
			bv, ok := b.dict.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindFunction:
		return a.fn == b.fn
	case KindNamespace:
		return a.ns == b.ns
	case KindResource:
		return a.res == b.res
	}
	return false
}

func isNumeric(v Value) bool { return v.kind == KindInt || v.kind == KindFloat }
func numericFloat(v Value) float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Str renders v the way str(x) and f-string fragment conversion do.
func Str(v Value) string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, v.list.Len())
		for i := 0; i < v.list.Len(); i++ {
			parts[i] = reprOf(v.list.Get(i))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		keys := v.dict.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			val, _ := v.dict.Get(k)
			parts[i] = strconv.Quote(k) + ": " + reprOf(val)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.fn.Name)
	case KindNamespace:
		return fmt.Sprintf("<namespace %s>", v.ns.Name())
	case KindResource:
		return fmt.Sprintf("<resource %s>", v.res.Describe())
	}
	return ""
}

func reprOf(v Value) string {
	if v.kind == KindString {
		return strconv.Quote(v.s)
	}
	return Str(v)
}

// SortedDictKeys returns d's keys in alphabetical order, as opposed to the
// insertion order Keys returns.
func SortedDictKeys(d *Dict) []string {
	keys := append([]string(nil), d.Keys()...)
	sort.Strings(keys)
	return keys
}
