// Package nvobj implements the fixed-capacity response object list and
// the shared string arena used to assemble multi-value responses.
//
// Both structures are reset-and-reused per request: a reset invalidates
// every node and every arena view from the previous request. Nothing here
// locks; the list is owned by exactly one logical request at a time.
package nvobj

import "github.com/motionkit/nvcfg/internal/status"

// Type tags the kind of value a node carries.
type Type uint8

const (
	// TypeEmpty marks a free, reusable node.
	TypeEmpty Type = iota

	// TypeNull marks a node with no value; in a group write it means
	// "read the current value".
	TypeNull

	// TypeParent marks a group parent preceding its children.
	TypeParent

	// TypeInteger carries an integer in the numeric value field.
	TypeInteger

	// TypeFloat carries a float in the numeric value field.
	TypeFloat

	// TypeData carries an opaque 32-bit pattern in the Data field.
	TypeData

	// TypeString carries an arena view in the Str field.
	TypeString
)

// String returns the type tag name.
func (t Type) String() string {
	switch t {
	case TypeEmpty:
		return "empty"
	case TypeNull:
		return "null"
	case TypeParent:
		return "parent"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeData:
		return "data"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Object is one node of the response list. Index is a table index or
// status.NoMatch. Value is the canonical numeric carrier for integers and
// floats; Data carries raw 32-bit patterns that are not meaningfully
// numeric. Str is a view into the shared arena, valid until the next
// list reset.
type Object struct {
	Index     int
	Depth     int
	Type      Type
	Precision int8
	Token     string
	Group     string
	Value     float64
	Data      uint32
	Str       []byte

	// prev/next as array slots; -1 terminates the chain.
	pv, nx int
}

// resetValue clears everything but the links and depth.
func (nv *Object) resetValue() {
	nv.Index = 0
	nv.Type = TypeEmpty
	nv.Precision = 0
	nv.Token = ""
	nv.Group = ""
	nv.Value = 0
	nv.Data = 0
	nv.Str = nil
}

// SetIndexUnresolved marks the object as carrying no table index.
func (nv *Object) SetIndexUnresolved() {
	nv.Index = status.NoMatch
}
