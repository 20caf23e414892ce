package config

import (
	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
)

// AddObject resolves a token, then populates the first empty body node
// from its table row. Fails when the token doesn't resolve or the list
// is full.
func (e *Engine) AddObject(token string) (*nvobj.Object, error) {
	nv, err := e.list.FirstEmpty()
	if err != nil {
		return nil, err
	}
	idx := e.tbl.ResolveIndex("", token)
	if idx == status.NoMatch {
		return nil, status.ErrNoMatch
	}
	nv.Index = idx
	e.GetObject(nv)
	return nv, nil
}

// AddString adds an arena-backed string node, resolving the token when
// it names a parameter (an unresolvable token is carried as-is).
func (e *Engine) AddString(token, s string) (*nvobj.Object, error) {
	nv, err := e.list.AddString(token, s)
	if err != nil {
		return nil, err
	}
	nv.Index = e.tbl.ResolveIndex("", token)
	return nv, nil
}

// AddConditionalMessage queues a "msg" string node unless the active
// protocol mode is the structured mode with message echoing disabled.
// The no-op case returns nil, nil.
func (e *Engine) AddConditionalMessage(s string) (*nvobj.Object, error) {
	if e.mach.CommMode == machine.JSONMode && e.mach.MessageEcho == 0 {
		return nil, nil
	}
	return e.AddString("msg", s)
}

// ObjectType classifies a response node for the protocol layer.
type ObjectType uint8

const (
	// ObjectTypeNull is a node with no token.
	ObjectTypeNull ObjectType = iota

	// ObjectTypeGCode carries a gcode block.
	ObjectTypeGCode

	// ObjectTypeReport is a status or queue report request.
	ObjectTypeReport

	// ObjectTypeMessage is a message (errors are reported as messages).
	ObjectTypeMessage

	// ObjectTypeLineNum carries a gcode line number.
	ObjectTypeLineNum

	// ObjectTypeConfig is an ordinary parameter node.
	ObjectTypeConfig
)

// ClassifyObject returns the node's ObjectType from its token.
func ClassifyObject(nv *nvobj.Object) ObjectType {
	switch nv.Token {
	case "":
		return ObjectTypeNull
	case "gc":
		return ObjectTypeGCode
	case "sr", "qr":
		return ObjectTypeReport
	case "msg", "err":
		return ObjectTypeMessage
	case "n":
		return ObjectTypeLineNum
	default:
		return ObjectTypeConfig
	}
}
