package protocol

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/motionkit/nvcfg/internal/config"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
)

// footerRevision identifies the response footer layout.
const footerRevision = 1

// ParseJSON executes one structured-mode command document against the
// engine. Accepted forms mirror the group protocol:
//
//	{"xvm":""}            read one parameter
//	{"xvm":1200}          write one parameter
//	{"x":""}              expand a group
//	{"x":{"vm":""}}       read group members
//	{"x":{"vm":1200}}     write group members (and persist)
//
// The response list is reset and left populated for RenderJSON.
func ParseJSON(e *config.Engine, doc string) status.Status {
	if !gjson.Valid(doc) {
		return status.UnrecognizedCommand
	}
	root := gjson.Parse(doc)
	if !root.IsObject() {
		return status.UnrecognizedCommand
	}

	nv := e.List().Reset()
	st := status.UnrecognizedCommand
	root.ForEach(func(k, v gjson.Result) bool {
		st = execPair(e, nv, strings.ToLower(k.String()), v)
		return false // one command object per document
	})
	return st
}

// execPair executes one top-level name/value pair.
func execPair(e *config.Engine, nv *nvobj.Object, name string, v gjson.Result) status.Status {
	idx := e.Table().ResolveIndex("", name)
	if idx == status.NoMatch {
		return status.NoMatchError
	}
	nv.Index = idx

	if v.IsObject() {
		return execGroup(e, nv, name, v)
	}

	if isNullValue(v) {
		e.GetObject(nv)
		return status.OK
	}

	nv.Token = e.Table().Entry(idx).Token
	nv.Value = v.Float()
	nv.Type = nvobj.TypeFloat
	st := e.Set(nv)
	if st != status.OK && st != status.Noop {
		return st
	}
	if st == status.OK {
		if err := e.Persist(nv); err != nil {
			e.Log().Warn("persist failed", "token", nv.Token, "error", err)
		}
	}
	e.GetObject(nv)
	return status.OK
}

// execGroup loads a parent node and its children from a nested command
// object, then dispatches through the group setter (which reads null
// children and writes the rest).
func execGroup(e *config.Engine, nv *nvobj.Object, group string, v gjson.Result) status.Status {
	nv.Token = group
	nv.Type = nvobj.TypeParent

	l := e.List()
	cur := nv
	var fill status.Status
	v.ForEach(func(k, cv gjson.Result) bool {
		cur = l.Next(cur)
		if cur == nil {
			fill = status.BufferFull
			return false
		}
		token := strings.ToLower(k.String())
		idx := e.Table().ResolveIndex(group, token)
		if idx == status.NoMatch && !config.GroupIsPrefixed(group) {
			idx = e.Table().ResolveIndex("", token)
		}
		if idx == status.NoMatch {
			fill = status.NoMatchError
			return false
		}
		cur.Index = idx
		cur.Token = token
		cur.Group = group
		cur.Depth = nv.Depth + 1
		if isNullValue(cv) {
			cur.Type = nvobj.TypeNull
		} else {
			cur.Value = cv.Float()
			cur.Type = nvobj.TypeFloat
		}
		return true
	})
	if fill != status.OK {
		return fill
	}

	if cur == nv {
		// no children named: expand the whole group
		e.GetObject(nv)
		return status.OK
	}
	return e.Set(nv)
}

// isNullValue reports whether a command value means "read this".
func isNullValue(v gjson.Result) bool {
	return v.Type == gjson.Null || (v.Type == gjson.String && v.String() == "")
}

// RenderJSON renders the response list as a structured response
// document: the body under an "r" parent, then a footer
// [revision, status, body count].
func RenderJSON(e *config.Engine, st status.Status) (string, error) {
	doc := "{}"
	l := e.List()
	var err error
	var parent string
	count := 0

	for nv := l.Body(); nv != nil; nv = l.Next(nv) {
		if nv.Type == nvobj.TypeEmpty {
			break
		}
		count++
		switch nv.Type {
		case nvobj.TypeParent:
			parent = nv.Token
			doc, err = sjson.SetRaw(doc, "r."+parent, "{}")
		default:
			doc, err = setValue(doc, nodePath(nv, parent), nv)
		}
		if err != nil {
			return "", err
		}
	}

	doc, err = sjson.SetRaw(doc, "f", footer(st, count))
	if err != nil {
		return "", err
	}
	return doc, nil
}

// nodePath places a node under its parent when it is nested, else
// directly under the response header with the group prefix restored
// for prefixed groups (the engine strips it into nv.Group).
func nodePath(nv *nvobj.Object, parent string) string {
	if nv.Depth >= 2 && parent != "" {
		return "r." + parent + "." + nv.Token
	}
	name := nv.Token
	if nv.Group != "" && config.GroupIsPrefixed(nv.Group) {
		name = nv.Group + nv.Token
	}
	return "r." + name
}

// setValue writes a node's value, honoring the node's display precision
// for floats and carrying raw data words as unsigned integers.
func setValue(doc, path string, nv *nvobj.Object) (string, error) {
	switch nv.Type {
	case nvobj.TypeInteger:
		return sjson.Set(doc, path, uint32(nv.Value))
	case nvobj.TypeFloat:
		return sjson.SetRaw(doc, path, strconv.FormatFloat(nv.Value, 'f', int(nv.Precision), 64))
	case nvobj.TypeData:
		return sjson.Set(doc, path, nv.Data)
	case nvobj.TypeString:
		return sjson.Set(doc, path, string(nv.Str))
	default: // TypeNull
		return sjson.SetRaw(doc, path, "null")
	}
}

// footer builds the raw footer array.
func footer(st status.Status, count int) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(footerRevision))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(st)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(count))
	b.WriteByte(']')
	return b.String()
}
