package report

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/career-pathway/internal/types"
)

type nodeKind int

const (
	kindObject nodeKind = iota
	kindList
	kindString
	kindNumber
	kindBool
)

func (k nodeKind) String() string {
	switch k {
	case kindObject:
		return "object"
	case kindList:
		return "list"
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// node is one position in the report template. Objects carry their fields in declaration
// order, lists their element template, scalars their parsed default.
type node struct {
	kind   nodeKind
	typ    reflect.Type
	fields []field
	elem   *node
	def    reflect.Value
}

type field struct {
	name  string
	index int
	node  *node
}

var (
	templateOnce sync.Once
	reportTmpl   *node
)

// reportTemplate returns the template derived from types.NormalizedReport.
// It is built once and read-only afterwards.
func reportTemplate() *node {
	templateOnce.Do(func() {
		reportTmpl = buildNode(reflect.TypeOf(types.NormalizedReport{}), "", "$")
	})
	return reportTmpl
}

// buildNode panics on field types the report contract does not use; that is a
// programming error in the types package, caught by the first test that normalizes anything.
func buildNode(t reflect.Type, defTag, path string) *node {
	n := &node{typ: t}

	switch t.Kind() {
	case reflect.Struct:
		n.kind = kindObject
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			name := jsonName(sf)
			if name == "-" {
				continue
			}
			child := buildNode(sf.Type, sf.Tag.Get("default"), path+"."+name)
			n.fields = append(n.fields, field{name: name, index: i, node: child})
		}
	case reflect.Slice:
		n.kind = kindList
		n.elem = buildNode(t.Elem(), "", path+"[]")
	case reflect.String:
		n.kind = kindString
		n.def = reflect.ValueOf(defTag).Convert(t)
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n.kind = kindNumber
		n.def = reflect.New(t).Elem()
		if defTag != "" {
			f, err := strconv.ParseFloat(defTag, 64)
			if err != nil {
				panic(fmt.Sprintf("report template: bad default %q at %s: %v", defTag, path, err))
			}
			setNumber(n.def, f)
		}
	case reflect.Bool:
		n.kind = kindBool
		n.def = reflect.New(t).Elem()
		if defTag != "" {
			b, err := strconv.ParseBool(defTag)
			if err != nil {
				panic(fmt.Sprintf("report template: bad default %q at %s: %v", defTag, path, err))
			}
			n.def.SetBool(b)
		}
	default:
		panic(fmt.Sprintf("report template: unsupported kind %s at %s", t.Kind(), path))
	}

	return n
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}
	return name
}

func setNumber(v reflect.Value, f float64) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		v.SetFloat(f)
	default:
		v.SetInt(int64(f))
	}
}
