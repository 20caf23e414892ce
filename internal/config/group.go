package config

import (
	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
)

// GroupIsPrefixed reports whether a group's children display
// group-prefixed tokens. The status-report and system groups are the
// exceptions: their children carry bare tokens. Serializers must consult
// this before rendering.
func GroupIsPrefixed(group string) bool {
	return group != "sr" && group != "sys"
}

// getGrp expands a parent group node. The node's token names the group;
// the node is tagged parent and one child node is appended for every
// single parameter whose group matches, populated through the single-
// entry get path, in table order.
func getGrp(e *Engine, nv *nvobj.Object) status.Status {
	parent := nv.Token
	nv.Type = nvobj.TypeParent
	child := nv
	for i := 0; e.tbl.IndexIsSingle(i); i++ {
		if e.tbl.Entry(i).Group != parent {
			continue
		}
		child = e.list.Next(child)
		if child == nil {
			return status.BufferFull
		}
		child.Index = i
		e.GetObject(child)
	}
	return status.OK
}

// setGrp walks the siblings after a group parent, reading or writing
// each: a null value kind means "read the current value", anything else
// means "write this value and persist it". Group writes are only valid
// in the structured protocol mode.
func setGrp(e *Engine, nv *nvobj.Object) status.Status {
	if e.mach.CommMode == machine.TextMode {
		return status.UnrecognizedCommand
	}
	for i := 0; i < nvobj.BodyLen; i++ {
		if nv = e.list.Next(nv); nv == nil {
			break
		}
		if nv.Type == nvobj.TypeEmpty {
			break
		}
		if nv.Type == nvobj.TypeNull {
			e.Get(nv)
		} else {
			e.Set(nv)
			if err := e.Persist(nv); err != nil {
				e.log.Warn("group persist failed", "token", nv.Token, "error", err)
			}
		}
	}
	return status.OK
}
