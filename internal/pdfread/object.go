// Package pdfread is a small reader for the PDFs this module writes. It
// understands classic and stream cross-reference sections, Flate content
// and the handful of content operators needed to recover filled rectangles
// and WinAnsi text runs with their positions and colors.
package pdfread

import "fmt"

// Kind identifies the type of a PDF object.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindName
	KindArray
	KindDict
	KindStream
	KindRef
)

var kindNames = [...]string{"null", "bool", "int", "real", "string", "name", "array", "dict", "stream", "ref"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Ref is an indirect object reference.
type Ref struct {
	Num int
	Gen int
}

// Object is any PDF value. Only the fields matching Kind are set.
type Object struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Real  float64
	Bytes []byte
	Name  string
	Items []*Object
	Dict  Dict
	Data  []byte // raw, still encoded stream data
	Ref   Ref
}

var null = &Object{Kind: KindNull}

// Number returns the numeric value of an int or real object.
func (o *Object) Number() (float64, bool) {
	if o == nil {
		return 0, false
	}
	switch o.Kind {
	case KindInt:
		return float64(o.Int), true
	case KindReal:
		return o.Real, true
	}
	return 0, false
}

// Dict maps names to values.
type Dict map[string]*Object

// Int returns an integer entry.
func (d Dict) Int(key string) (int64, bool) {
	f, ok := d[key].Number()
	return int64(f), ok
}

// Name returns a name entry.
func (d Dict) Name(key string) (string, bool) {
	o, ok := d[key]
	if !ok || o.Kind != KindName {
		return "", false
	}
	return o.Name, true
}

// Array returns an array entry. A lone value counts as a one-element
// array.
func (d Dict) Array(key string) ([]*Object, bool) {
	o, ok := d[key]
	if !ok {
		return nil, false
	}
	if o.Kind == KindArray {
		return o.Items, true
	}
	return []*Object{o}, true
}
