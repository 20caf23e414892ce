package config

import (
	"testing"

	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
)

func TestGroupIsPrefixed(t *testing.T) {
	for _, g := range []string{"x", "c", "1", "g54", "uda"} {
		if !GroupIsPrefixed(g) {
			t.Errorf("GroupIsPrefixed(%q) = false, want true", g)
		}
	}
	for _, g := range []string{"sr", "sys"} {
		if GroupIsPrefixed(g) {
			t.Errorf("GroupIsPrefixed(%q) = true, want false", g)
		}
	}
}

func TestGetGroup_AxisExpansion(t *testing.T) {
	e, m, _ := newTestEngine(t)
	m.Axes[0].VelocityMax = 16000
	m.Axes[0].JunctionDev = 0.05

	nv := e.List().Reset()
	nv.Index = resolve(t, e, "", "x")
	e.GetObject(nv)

	if nv.Type != nvobj.TypeParent {
		t.Fatalf("parent type = %v, want parent", nv.Type)
	}
	if nv.Token != "x" {
		t.Errorf("parent token = %q, want x", nv.Token)
	}

	// Children follow in table order with stripped tokens at one depth
	// below the parent.
	wantTokens := []string{"am", "vm", "fr", "tm", "jm", "jd"}
	child := nv
	for _, want := range wantTokens {
		child = e.List().Next(child)
		if child == nil || child.Type == nvobj.TypeEmpty {
			t.Fatalf("expansion ended before %q", want)
		}
		if child.Token != want {
			t.Errorf("child token = %q, want %q", child.Token, want)
		}
		if child.Group != "x" {
			t.Errorf("child %q group = %q, want x", want, child.Group)
		}
		if child.Depth != nv.Depth+1 {
			t.Errorf("child %q depth = %d, want %d", want, child.Depth, nv.Depth+1)
		}
	}
	if vm := e.List().Next(e.List().Next(nv)); vm.Value != 16000 {
		t.Errorf("vm child value = %v, want 16000", vm.Value)
	}

	next := e.List().Next(child)
	if next != nil && next.Type != nvobj.TypeEmpty {
		t.Errorf("extra node %q after the last child", next.Token)
	}
}

func TestGetGroup_SysBareTokens(t *testing.T) {
	e, _, _ := newTestEngine(t)

	nv := e.List().Reset()
	nv.Index = resolve(t, e, "", "sys")
	e.GetObject(nv)

	child := e.List().Next(nv)
	if child.Token != "fb" || child.Group != "" {
		t.Errorf("first sys child = %q/%q, want bare fb", child.Token, child.Group)
	}
	if child.Value != machine.DefaultFirmwareBuild {
		t.Errorf("fb child value = %v", child.Value)
	}
}

func TestSetGroup_TextModeRejected(t *testing.T) {
	e, m, _ := newTestEngine(t)
	m.CommMode = machine.TextMode

	nv := e.List().Reset()
	nv.Index = resolve(t, e, "", "x")
	nv.Token = "x"
	if st := e.Set(nv); st != status.UnrecognizedCommand {
		t.Errorf("group set in text mode = %v, want UnrecognizedCommand", st)
	}
}

func TestSetGroup_MixedReadWrite(t *testing.T) {
	e, m, store := newTestEngine(t)
	m.CommMode = machine.JSONMode
	m.Axes[0].FeedRateMax = 9000

	l := e.List()
	parent := l.Reset()
	parent.Index = resolve(t, e, "", "x")
	parent.Token = "x"
	parent.Type = nvobj.TypeParent

	vmIdx := resolve(t, e, "x", "vm")
	wr := l.Next(parent)
	wr.Index = vmIdx
	wr.Token = "vm"
	wr.Value = 12345
	wr.Type = nvobj.TypeFloat

	// A null child means "read the current value".
	rd := l.Next(wr)
	rd.Index = resolve(t, e, "x", "fr")
	rd.Token = "fr"
	rd.Type = nvobj.TypeNull

	if st := e.Set(parent); st != status.OK {
		t.Fatalf("group set = %v, want OK", st)
	}

	if m.Axes[0].VelocityMax != 12345 {
		t.Errorf("velocity max = %v, want 12345", m.Axes[0].VelocityMax)
	}
	if v, _ := store.Read(vmIdx); v != 12345 {
		t.Errorf("stored vm = %v, want persisted 12345", v)
	}
	if rd.Value != 9000 || rd.Type != nvobj.TypeFloat {
		t.Errorf("read child = %v/%v, want 9000/float", rd.Value, rd.Type)
	}
	// The read-only sibling must not be persisted.
	if v, _ := store.Read(rd.Index); v != 0 {
		t.Errorf("stored fr = %v, want untouched 0", v)
	}
}

func TestSetGroup_StopsAtFirstEmpty(t *testing.T) {
	e, m, _ := newTestEngine(t)
	m.CommMode = machine.JSONMode

	l := e.List()
	parent := l.Reset()
	parent.Index = resolve(t, e, "", "x")
	parent.Token = "x"
	parent.Type = nvobj.TypeParent

	// No children: the walk stops at the first empty node.
	if st := e.Set(parent); st != status.OK {
		t.Errorf("empty group set = %v, want OK", st)
	}
}
