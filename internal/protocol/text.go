package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/motionkit/nvcfg/internal/config"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
)

// ParseText executes one text-mode command line against the engine.
// Accepted forms:
//
//	$xvm        read one parameter (or expand a group)
//	$xvm=1200   write one parameter
//	$xvm 1200   same, space separated
//
// The response list is reset and left populated for RenderText.
func ParseText(e *config.Engine, line string) status.Status {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "$")
	line = strings.ToLower(line)
	if line == "" {
		return status.NoMatchError
	}

	name := line
	var value string
	if i := strings.IndexAny(line, "= \t"); i >= 0 {
		name = line[:i]
		value = strings.TrimLeft(line[i+1:], "= \t")
	}

	nv := e.List().Reset()
	idx := e.Table().ResolveIndex("", name)
	if idx == status.NoMatch {
		return status.NoMatchError
	}
	nv.Index = idx

	if value == "" {
		e.GetObject(nv)
		return status.OK
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return status.ValueUnsupported
	}
	nv.Token = e.Table().Entry(idx).Token
	nv.Value = v
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
	e.GetObject(nv) // echo the stored value back
	return status.OK
}

// RenderText renders the response list as a multiline text report, one
// value per line, honoring display precision and the group-prefixing
// predicate.
func RenderText(e *config.Engine, st status.Status) string {
	var b strings.Builder
	l := e.List()
	for nv := l.Body(); nv != nil; nv = l.Next(nv) {
		if nv.Type == nvobj.TypeEmpty {
			break
		}
		writeTextNode(&b, e, nv)
	}
	if st != status.OK && st != status.Noop {
		fmt.Fprintf(&b, "err: %s\n", st)
	}
	return b.String()
}

func writeTextNode(b *strings.Builder, e *config.Engine, nv *nvobj.Object) {
	name := nv.Token
	if nv.Group != "" && config.GroupIsPrefixed(nv.Group) {
		name = nv.Group + nv.Token
	}
	switch nv.Type {
	case nvobj.TypeParent:
		fmt.Fprintf(b, "[%s]\n", nv.Token)
	case nvobj.TypeInteger:
		fmt.Fprintf(b, "$%s %d\n", name, uint32(nv.Value))
	case nvobj.TypeFloat:
		fmt.Fprintf(b, "$%s %.*f\n", name, int(nv.Precision), nv.Value)
	case nvobj.TypeData:
		fmt.Fprintf(b, "$%s 0x%08x\n", name, nv.Data)
	case nvobj.TypeString:
		fmt.Fprintf(b, "$%s %s\n", name, string(nv.Str))
	case nvobj.TypeNull:
		fmt.Fprintf(b, "$%s\n", name)
	}
}
