// Package report forces untrusted report documents into the fixed 11-section report shape.
//
// Normalization walks a template derived from types.NormalizedReport alongside the raw
// document. A raw value is kept only where its kind matches the template; everything else
// takes the field's default. The walk is pure and total: it never panics on input data and the
// same input always yields the same report, so normalizing a normalized report is a no-op.
package report

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	"github.com/jonathan/career-pathway/internal/types"
)

// Normalize returns the fully-populated report for any input value.
func Normalize(raw any) types.NormalizedReport {
	rep, _ := NormalizeWithDiagnostics(raw)
	return rep
}

// NormalizeJSON decodes data and normalizes it. Undecodable data yields the default report.
func NormalizeJSON(data []byte) types.NormalizedReport {
	rep, _ := NormalizeJSONWithDiagnostics(data)
	return rep
}

// NormalizeJSONWithDiagnostics is NormalizeJSON that also reports what was defaulted.
func NormalizeJSONWithDiagnostics(data []byte) (types.NormalizedReport, Diagnostics) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		var d Diagnostics
		d.add("$", DefectMalformedInput)
		return Default(), d
	}
	return NormalizeWithDiagnostics(raw)
}

// NormalizeWithDiagnostics is Normalize that also lists every path where a default was
// substituted or an element dropped. The report is identical to Normalize's.
func NormalizeWithDiagnostics(raw any) (types.NormalizedReport, Diagnostics) {
	var rep types.NormalizedReport
	var d Diagnostics
	tmpl := reportTemplate()
	dst := reflect.ValueOf(&rep).Elem()

	raw = generic(raw)
	if _, ok := raw.(map[string]any); !ok {
		d.add("$", DefectMalformedInput)
		fillDefault(tmpl, dst)
		return rep, d
	}

	w := walker{diags: &d}
	w.object(tmpl, raw.(map[string]any), dst, "")
	return rep, d
}

// Default returns the report produced for a missing document.
func Default() types.NormalizedReport {
	var rep types.NormalizedReport
	fillDefault(reportTemplate(), reflect.ValueOf(&rep).Elem())
	return rep
}

type walker struct {
	diags *Diagnostics
}

func (w walker) value(n *node, raw any, present bool, dst reflect.Value, path string) {
	if !present || raw == nil {
		w.diags.add(path, DefectMissing)
		fillDefault(n, dst)
		return
	}

	raw = generic(raw)
	switch n.kind {
	case kindObject:
		m, ok := raw.(map[string]any)
		if !ok {
			w.diags.add(path, DefectWrongKind)
			fillDefault(n, dst)
			return
		}
		w.object(n, m, dst, path)
	case kindList:
		items, ok := raw.([]any)
		if !ok {
			w.diags.add(path, DefectWrongKind)
			fillDefault(n, dst)
			return
		}
		w.list(n, items, dst, path)
	default:
		if !setScalar(n, raw, dst) {
			w.diags.add(path, DefectWrongKind)
			fillDefault(n, dst)
		}
	}
}

func (w walker) object(n *node, m map[string]any, dst reflect.Value, path string) {
	for _, f := range n.fields {
		child, present := m[f.name]
		w.value(f.node, child, present, dst.Field(f.index), join(path, f.name))
	}
}

func (w walker) list(n *node, items []any, dst reflect.Value, path string) {
	out := reflect.MakeSlice(n.typ, 0, len(items))
	for i, item := range items {
		itemPath := path + "[" + strconv.Itoa(i) + "]"
		item = generic(item)
		elem := reflect.New(n.elem.typ).Elem()

		switch n.elem.kind {
		case kindObject:
			m, ok := item.(map[string]any)
			if !ok {
				w.diags.add(itemPath, DefectDroppedElement)
				continue
			}
			w.object(n.elem, m, elem, itemPath)
		case kindList:
			nested, ok := item.([]any)
			if !ok {
				w.diags.add(itemPath, DefectDroppedElement)
				continue
			}
			w.list(n.elem, nested, elem, itemPath)
		default:
			if item == nil || !setScalar(n.elem, item, elem) {
				w.diags.add(itemPath, DefectDroppedElement)
				continue
			}
		}
		out = reflect.Append(out, elem)
	}
	dst.Set(out)
}

// fillDefault writes the template default into dst: scalars get their tag default,
// lists an empty non-nil slice, objects every field defaulted recursively.
func fillDefault(n *node, dst reflect.Value) {
	switch n.kind {
	case kindObject:
		for _, f := range n.fields {
			fillDefault(f.node, dst.Field(f.index))
		}
	case kindList:
		dst.Set(reflect.MakeSlice(n.typ, 0, 0))
	default:
		dst.Set(n.def)
	}
}

func setScalar(n *node, raw any, dst reflect.Value) bool {
	switch n.kind {
	case kindString:
		s, ok := raw.(string)
		if !ok {
			return false
		}
		dst.SetString(s)
		return true
	case kindBool:
		b, ok := raw.(bool)
		if !ok {
			return false
		}
		dst.SetBool(b)
		return true
	case kindNumber:
		f, ok := toFloat(raw)
		if !ok {
			return false
		}
		setNumber(dst, f)
		return true
	}
	return false
}

func toFloat(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		rv := reflect.ValueOf(raw)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			f = float64(rv.Uint())
		default:
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// unconvertible stands in for values that cannot be turned into a JSON-shaped tree.
// It matches no template kind.
type unconvertible struct{}

// generic returns raw as a JSON-shaped value (map[string]any, []any, string, bool, number
// or nil). Typed Go values such as structs, typed maps and typed slices are converted through
// encoding/json, which is what makes normalizing an already normalized report a no-op.
func generic(raw any) any {
	switch v := raw.(type) {
	case nil, map[string]any, []any, string, bool, float64, json.Number, unconvertible:
		return v
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32:
		return raw
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return generic(rv.Elem().Interface())
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		data, err := json.Marshal(raw)
		if err != nil {
			// NaN or Inf leaves make encoding/json fail for the whole value. Walk it by
			// reflection instead so only those leaves are defaulted.
			return tree(rv)
		}
		var out any
		if err := json.Unmarshal(data, &out); err != nil {
			return tree(rv)
		}
		return out
	default:
		return unconvertible{}
	}
}

// tree converts a struct, map, slice or array into map[string]any and []any nodes, keyed by
// json names. Leaves are left to generic, so floats keep their values, NaN included.
func tree(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return tree(rv.Elem())
	case reflect.Struct:
		out := make(map[string]any, rv.NumField())
		structFields(rv, out)
		return out
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := mapKey(iter.Key())
			if !ok {
				continue
			}
			out[key] = tree(iter.Value())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = tree(rv.Index(i))
		}
		return out
	default:
		if !rv.CanInterface() {
			return unconvertible{}
		}
		return generic(rv.Interface())
	}
}

func structFields(rv reflect.Value, out map[string]any) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if sf.Anonymous && sf.Tag.Get("json") == "" && fv.Kind() == reflect.Struct {
			structFields(fv, out)
			continue
		}
		name := jsonName(sf)
		if name == "-" {
			continue
		}
		out[name] = tree(fv)
	}
}

func mapKey(k reflect.Value) (string, bool) {
	switch k.Kind() {
	case reflect.String:
		return k.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), true
	default:
		return "", false
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
