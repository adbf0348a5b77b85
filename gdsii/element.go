package gdsii

import "fmt"

// Kind identifies the variant of an Element.
type Kind uint8

// Element kinds.
const (
	KindBoundary Kind = iota + 1
	KindPath
	KindNode
	KindBox
	KindText
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindBoundary:
		return "boundary"
	case KindPath:
		return "path"
	case KindNode:
		return "node"
	case KindBox:
		return "box"
	case KindText:
		return "text"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Element is one entry of a structure's element list.
//
// The concrete types are *Boundary, *Path, *Node, *Box, *Text and
// *Reference. The set is closed.
type Element interface {
	Kind() Kind
	writeTo(rw *recordWriter)
}

// Point is a coordinate in database units.
type Point struct {
	X, Y int32
}

// Property is a user property attached to an element (PROPATTR/PROPVALUE).
type Property struct {
	Attr  int16
	Value string
}

// STRANS flag bits.
const (
	stransReflect  uint16 = 0x8000
	stransAbsMag   uint16 = 0x0004
	stransAbsAngle uint16 = 0x0002
)

// Transform is the STRANS/MAG/ANGLE group of text and reference elements.
// A zero Mag means a magnification of one and is not written.
type Transform struct {
	Reflect  bool
	AbsMag   bool
	AbsAngle bool
	Mag      float64
	Angle    float64 // degrees, counterclockwise
}

// Magnification returns Mag, or 1 when Mag is unset.
func (t *Transform) Magnification() float64 {
	if t == nil || t.Mag == 0 {
		return 1
	}
	return t.Mag
}

func (t *Transform) flags() uint16 {
	var v uint16
	if t.Reflect {
		v |= stransReflect
	}
	if t.AbsMag {
		v |= stransAbsMag
	}
	if t.AbsAngle {
		v |= stransAbsAngle
	}
	return v
}

func transformFromFlags(v uint16) *Transform {
	return &Transform{
		Reflect:  v&stransReflect != 0,
		AbsMag:   v&stransAbsMag != 0,
		AbsAngle: v&stransAbsAngle != 0,
	}
}

// ColRow is the tiling of an array reference.
type ColRow struct {
	Columns int16
	Rows    int16
}

// Count returns the number of instances in the array.
func (c ColRow) Count() int {
	return int(c.Columns) * int(c.Rows)
}

// Boundary is a filled polygon. The first and last points coincide.
type Boundary struct {
	Layer      int16
	DataType   int16
	XY         []Point
	Properties []Property
}

// Path is a wire with a width.
type Path struct {
	Layer    int16
	DataType int16
	PathType int16
	Width    int32
	// BeginExtension and EndExtension apply to PathType 4 only.
	BeginExtension int32
	EndExtension   int32
	XY             []Point
	Properties     []Property
}

// Node is an electrical net connection point set.
type Node struct {
	Layer      int16
	NodeType   int16
	XY         []Point
	Properties []Property
}

// Box is a rectangle given by five points.
type Box struct {
	Layer      int16
	BoxType    int16
	XY         []Point
	Properties []Property
}

// Text is a text label.
type Text struct {
	Layer        int16
	TextType     int16
	Presentation uint16
	PathType     int16
	Width        int32
	Transform    *Transform
	Position     Point
	String       string
	Properties   []Property
}

// Reference places another structure. It is an SREF when ColRow is nil
// and an AREF otherwise. An SREF has one point; an AREF has three: the
// origin, the column displacement corner and the row displacement corner.
type Reference struct {
	Name       string
	Transform  *Transform
	ColRow     *ColRow
	XY         []Point
	Properties []Property
}

// Count returns how many instances of the referenced structure this
// element places.
func (r *Reference) Count() int {
	if r.ColRow == nil {
		return 1
	}
	return r.ColRow.Count()
}

// IsArray reports whether r is an AREF.
func (r *Reference) IsArray() bool {
	return r.ColRow != nil
}

func (*Boundary) Kind() Kind  { return KindBoundary }
func (*Path) Kind() Kind      { return KindPath }
func (*Node) Kind() Kind      { return KindNode }
func (*Box) Kind() Kind       { return KindBox }
func (*Text) Kind() Kind      { return KindText }
func (*Reference) Kind() Kind { return KindReference }

// PropertiesOf returns the properties attached to e.
func PropertiesOf(e Element) []Property {
	switch e := e.(type) {
	case *Boundary:
		return e.Properties
	case *Path:
		return e.Properties
	case *Node:
		return e.Properties
	case *Box:
		return e.Properties
	case *Text:
		return e.Properties
	case *Reference:
		return e.Properties
	}
	return nil
}
