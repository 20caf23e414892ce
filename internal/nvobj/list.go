package nvobj

import "github.com/motionkit/nvcfg/internal/status"

// Capacity limits. The list holds a header node, a working body, and a
// reserve the serializer uses for its footer.
const (
	ListLen   = 40
	BodyStart = 1
	BodyLen   = ListLen - 2

	// ArenaLen is the shared string arena capacity in bytes.
	ArenaLen = 512
)

// HeaderToken is the fixed token of the response header node.
const HeaderToken = "r"

// List is the fixed-capacity response list plus its string arena.
// The zero value is unusable; call Reset before the first request and at
// the start of every request after that.
type List struct {
	nodes [ListLen]Object
	arena [ArenaLen]byte
	wp    int
}

// NewList returns a list ready for its first request.
func NewList() *List {
	l := &List{}
	l.Reset()
	return l
}

// Reset clears the arena cursor, relinks the node chain, resets every
// node to empty at depth 1, then fixes node 0 into header form (parent,
// depth 0, token "r"). It returns the first body node.
//
// All nodes and arena views handed out before the reset are invalid
// afterwards.
func (l *List) Reset() *Object {
	l.wp = 0
	for i := range l.nodes {
		nv := &l.nodes[i]
		nv.pv = i - 1
		nv.nx = i + 1
		nv.resetValue()
		nv.Depth = 1
	}
	l.nodes[ListLen-1].nx = -1

	hdr := &l.nodes[0]
	hdr.pv = -1
	hdr.Depth = 0
	hdr.Type = TypeParent
	hdr.Token = HeaderToken
	return &l.nodes[BodyStart]
}

// ResetObject clears a single node back to empty and recomputes its depth
// from its predecessor: one deeper when the predecessor is a parent, the
// same depth otherwise. The node must belong to this list.
func (l *List) ResetObject(nv *Object) *Object {
	nv.resetValue()
	if nv.pv < 0 {
		nv.Depth = 0
		return nv
	}
	prev := &l.nodes[nv.pv]
	if prev.Type == TypeParent {
		nv.Depth = prev.Depth + 1
	} else {
		nv.Depth = prev.Depth
	}
	return nv
}

// Header returns the response header node.
func (l *List) Header() *Object {
	return &l.nodes[0]
}

// Body returns the first body node.
func (l *List) Body() *Object {
	return &l.nodes[BodyStart]
}

// Next returns the successor of nv, or nil at the end of the chain.
func (l *List) Next(nv *Object) *Object {
	if nv.nx < 0 || nv.nx >= ListLen {
		return nil
	}
	return &l.nodes[nv.nx]
}

// Prev returns the predecessor of nv, or nil at the head of the chain.
func (l *List) Prev(nv *Object) *Object {
	if nv.pv < 0 {
		return nil
	}
	return &l.nodes[nv.pv]
}

// FirstEmpty returns the first empty body node, or status.ErrListFull
// when every body node is in use.
func (l *List) FirstEmpty() (*Object, error) {
	nv := l.Body()
	for i := 0; i < BodyLen; i++ {
		if nv.Type == TypeEmpty {
			return nv, nil
		}
		if nv = l.Next(nv); nv == nil {
			break
		}
	}
	return nil, status.ErrListFull
}

// CopyString appends src to the shared arena and links the view to nv.
// When remaining capacity is insufficient it returns status.BufferFull
// and writes nothing; the cursor is unchanged.
func (l *List) CopyString(nv *Object, src string) status.Status {
	if l.wp+len(src)+1 > ArenaLen {
		return status.BufferFull
	}
	dst := l.arena[l.wp : l.wp+len(src)]
	copy(dst, src)
	l.arena[l.wp+len(src)] = 0 // keep views NUL-delimited for ports
	l.wp += len(src) + 1
	nv.Str = dst
	return status.OK
}

// AddInteger populates the first empty body node with an integer value.
func (l *List) AddInteger(token string, value uint32) (*Object, error) {
	nv, err := l.FirstEmpty()
	if err != nil {
		return nil, err
	}
	nv.Token = token
	nv.SetIndexUnresolved()
	nv.Value = float64(value)
	nv.Type = TypeInteger
	return nv, nil
}

// AddData populates the first empty body node with an opaque 32-bit
// pattern. The pattern is carried in the Data field; the numeric value
// field is not used.
func (l *List) AddData(token string, value uint32) (*Object, error) {
	nv, err := l.FirstEmpty()
	if err != nil {
		return nil, err
	}
	nv.Token = token
	nv.SetIndexUnresolved()
	nv.Data = value
	nv.Type = TypeData
	return nv, nil
}

// AddFloat populates the first empty body node with a float value.
func (l *List) AddFloat(token string, value float64) (*Object, error) {
	nv, err := l.FirstEmpty()
	if err != nil {
		return nil, err
	}
	nv.Token = token
	nv.SetIndexUnresolved()
	nv.Value = value
	nv.Type = TypeFloat
	return nv, nil
}

// AddString populates the first empty body node with an arena-backed
// string. The node's index is left unresolved; callers that want the
// token resolved go through the engine.
func (l *List) AddString(token, s string) (*Object, error) {
	nv, err := l.FirstEmpty()
	if err != nil {
		return nil, err
	}
	if st := l.CopyString(nv, s); st != status.OK {
		return nil, st.Err()
	}
	nv.Token = token
	nv.SetIndexUnresolved()
	nv.Type = TypeString
	return nv, nil
}

// ArenaRemaining returns the free bytes left in the arena.
func (l *List) ArenaRemaining() int {
	return ArenaLen - l.wp
}
