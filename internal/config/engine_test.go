package config

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/motionkit/nvcfg/internal/config/notify"
	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvm"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
)

// newTestEngine builds an engine over a fresh machine, the default
// table, and a zeroed in-memory store.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *machine.Machine, *nvm.MemStore) {
	t.Helper()
	m := machine.New()
	tbl := machine.DefaultTable(m)
	store := nvm.NewMemStore(tbl.Len())
	base := []Option{
		WithOutput(io.Discard),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	e := New(tbl, m, store, append(base, opts...)...)
	return e, m, store
}

// resolve fails the test when token doesn't resolve.
func resolve(t *testing.T, e *Engine, group, token string) int {
	t.Helper()
	i := e.Table().ResolveIndex(group, token)
	if i == status.NoMatch {
		t.Fatalf("%s%s did not resolve", group, token)
	}
	return i
}

func TestDispatch_IndexBounds(t *testing.T) {
	e, _, _ := newTestEngine(t)
	nv := e.List().Reset()

	for _, idx := range []int{-1, status.NoMatch, e.Table().Len(), e.Table().Len() + 100} {
		nv.Index = idx
		if st := e.Get(nv); st != status.InternalRangeError {
			t.Errorf("Get(index %d) = %v, want InternalRangeError", idx, st)
		}
		if st := e.Set(nv); st != status.InternalRangeError {
			t.Errorf("Set(index %d) = %v, want InternalRangeError", idx, st)
		}
		e.Print(nv) // display no-op, must not panic
	}
}

func TestSetGet_Float(t *testing.T) {
	e, m, _ := newTestEngine(t)
	nv := e.List().Reset()

	nv.Index = resolve(t, e, "x", "jm")
	nv.Value = 7500000
	nv.Type = nvobj.TypeFloat
	if st := e.Set(nv); st != status.OK {
		t.Fatalf("Set = %v, want OK", st)
	}
	if m.Axes[0].JerkMax != 7500000 {
		t.Errorf("jerk max = %v, want 7500000", m.Axes[0].JerkMax)
	}

	nv.Value = 0
	if st := e.Get(nv); st != status.OK {
		t.Fatalf("Get = %v, want OK", st)
	}
	if nv.Value != 7500000 || nv.Type != nvobj.TypeFloat {
		t.Errorf("Get node = %v/%v", nv.Value, nv.Type)
	}
}

func TestSet_RangeCheckedRejection(t *testing.T) {
	e, m, _ := newTestEngine(t)
	nv := e.List().Reset()

	tests := []struct {
		token string
		max   float64
	}{
		{"un", 1},
		{"qv", 2},
		{"jv", 3},
	}
	for _, tt := range tests {
		nv.Index = resolve(t, e, "", tt.token)

		nv.Value = tt.max
		if st := e.Set(nv); st != status.OK {
			t.Errorf("$%s=%v rejected: %v", tt.token, tt.max, st)
		}

		before := *e.Table().Entry(nv.Index).Target.(*uint8)
		for _, bad := range []float64{tt.max + 1, -1} {
			nv.Value = bad
			if st := e.Set(nv); st != status.ValueUnsupported {
				t.Errorf("$%s=%v = %v, want ValueUnsupported", tt.token, bad, st)
			}
			if got := *e.Table().Entry(nv.Index).Target.(*uint8); got != before {
				t.Errorf("$%s backing state changed to %d on rejected write", tt.token, got)
			}
		}
	}
	if m.Units != 1 {
		t.Errorf("units = %d after the un writes above, want 1", m.Units)
	}
}

func TestSetGet_DataRoundTrip(t *testing.T) {
	e, m, _ := newTestEngine(t)
	nv := e.List().Reset()

	nv.Index = resolve(t, e, "uda", "0")
	nv.Data = 0xDEADBEEF
	nv.Type = nvobj.TypeData
	if st := e.Set(nv); st != status.OK {
		t.Fatalf("Set = %v, want OK", st)
	}
	if m.UserData[0] != 0xDEADBEEF {
		t.Errorf("user data = %#x, want 0xdeadbeef", m.UserData[0])
	}

	nv.Data = 0
	if st := e.Get(nv); st != status.OK {
		t.Fatalf("Get = %v, want OK", st)
	}
	if nv.Data != 0xDEADBEEF {
		t.Errorf("Get data = %#x, want bit-exact 0xdeadbeef", nv.Data)
	}
	if nv.Value != 0 {
		t.Errorf("data read leaked into the numeric value: %v", nv.Value)
	}
}

func TestSetFlu_InchConversionOnWriteOnly(t *testing.T) {
	e, m, _ := newTestEngine(t)
	nv := e.List().Reset()
	nv.Index = resolve(t, e, "x", "vm")

	m.Units = machine.Inches
	nv.Value = 100
	nv.Type = nvobj.TypeFloat
	if st := e.Set(nv); st != status.OK {
		t.Fatalf("Set = %v, want OK", st)
	}
	if m.Axes[0].VelocityMax != 100*machine.MMPerInch {
		t.Errorf("velocity max = %v, want %v", m.Axes[0].VelocityMax, 100*machine.MMPerInch)
	}
	// The node value is converted in place so persistence sees the
	// canonical value.
	if nv.Value != 100*machine.MMPerInch {
		t.Errorf("node value = %v, want canonical %v", nv.Value, 100*machine.MMPerInch)
	}

	// Reads return the canonical value with no reverse conversion, in
	// either units mode.
	nv.Value = 0
	e.Get(nv)
	if nv.Value != 100*machine.MMPerInch {
		t.Errorf("inch-mode read = %v, want canonical %v", nv.Value, 100*machine.MMPerInch)
	}

	m.Units = machine.Millimeters
	nv.Value = 2540
	e.Set(nv)
	if m.Axes[0].VelocityMax != 2540 {
		t.Errorf("mm-mode write = %v, want 2540", m.Axes[0].VelocityMax)
	}
}

func TestSet_ReadOnlyRow(t *testing.T) {
	e, m, _ := newTestEngine(t)
	nv := e.List().Reset()

	nv.Index = resolve(t, e, "", "fb")
	nv.Value = 999
	if st := e.Set(nv); st != status.Noop {
		t.Errorf("Set fb = %v, want Noop", st)
	}
	if m.FirmwareBuild != machine.DefaultFirmwareBuild {
		t.Errorf("firmware build changed to %v", m.FirmwareBuild)
	}
}

func TestGet_NullRow(t *testing.T) {
	e, _, _ := newTestEngine(t)
	nv := e.List().Reset()

	nv.Index = resolve(t, e, "", "sr")
	if st := e.Get(nv); st != status.Noop {
		t.Errorf("Get sr = %v, want Noop", st)
	}
	if nv.Type != nvobj.TypeNull {
		t.Errorf("sr type = %v, want null", nv.Type)
	}
}

func TestGetObject_TokenStripping(t *testing.T) {
	e, m, _ := newTestEngine(t)
	m.Axes[0].VelocityMax = 16000

	nv := e.List().Reset()
	nv.Index = resolve(t, e, "x", "vm")
	e.GetObject(nv)
	if nv.Token != "vm" || nv.Group != "x" {
		t.Errorf("xvm node = %q/%q, want vm/x", nv.Token, nv.Group)
	}
	if nv.Value != 16000 || nv.Type != nvobj.TypeFloat {
		t.Errorf("xvm node = %v/%v", nv.Value, nv.Type)
	}

	// System rows store bare tokens; the group is cleared instead of
	// stripped.
	nv = e.List().Reset()
	nv.Index = resolve(t, e, "", "fb")
	e.GetObject(nv)
	if nv.Token != "fb" || nv.Group != "" {
		t.Errorf("fb node = %q/%q, want fb with no group", nv.Token, nv.Group)
	}
	if nv.Value != machine.DefaultFirmwareBuild {
		t.Errorf("fb value = %v", nv.Value)
	}
}

func TestSet_NotifiesObservers(t *testing.T) {
	e, _, _ := newTestEngine(t)

	var got []notify.Change
	e.Notifier().Subscribe(func(c notify.Change) {
		got = append(got, c)
	})

	nv := e.List().Reset()
	idx := resolve(t, e, "x", "vm")
	nv.Index = idx
	nv.Value = 12000
	nv.Type = nvobj.TypeFloat
	if st := e.Set(nv); st != status.OK {
		t.Fatalf("Set = %v, want OK", st)
	}

	if len(got) != 1 {
		t.Fatalf("observed %d changes, want 1", len(got))
	}
	c := got[0]
	if c.Type != notify.ChangeSet || c.Index != idx || c.Token != "xvm" || c.Value != 12000 {
		t.Errorf("change = %+v", c)
	}

	// A rejected write produces no notification.
	nv.Index = resolve(t, e, "", "un")
	nv.Value = 5
	e.Set(nv)
	if len(got) != 1 {
		t.Errorf("observed %d changes after rejected write, want 1", len(got))
	}

	// Command rows have no backing target and do not notify.
	nv.Index = resolve(t, e, "", "sr")
	nv.Value = 0
	e.Set(nv)
	if len(got) != 1 {
		t.Errorf("observed %d changes after command row, want 1", len(got))
	}
}

func TestPrint_Formats(t *testing.T) {
	var buf bytes.Buffer
	e, m, _ := newTestEngine(t, WithOutput(&buf))
	m.Axes[0].VelocityMax = 16000

	nv := e.List().Reset()
	nv.Index = resolve(t, e, "", "fb")
	e.Get(nv)
	e.Print(nv)
	if got := buf.String(); got != "$fb 440.50\n" {
		t.Errorf("fb print = %q", got)
	}

	buf.Reset()
	nv = e.List().Reset()
	nv.Index = resolve(t, e, "x", "vm")
	e.Get(nv)
	e.Print(nv)
	if got := buf.String(); got != "$xvm 16000 mm\n" {
		t.Errorf("xvm print = %q", got)
	}

	m.Units = machine.Inches
	if e.UnitsLabel() != "in" {
		t.Errorf("units label = %q, want in", e.UnitsLabel())
	}
}
