package config

import (
	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
	"github.com/motionkit/nvcfg/internal/table"
)

// getters and setters are the read/write dispatch tables, indexed by
// table.GetterID and table.SetterID. They are populated in init: group
// expansion and the defaults command re-enter Get and Set, so literal
// initializers would form an initialization cycle.
var (
	getters [table.GetterCount]accessorFunc
	setters [table.SetterCount]accessorFunc
)

func init() {
	getters = [table.GetterCount]accessorFunc{
		table.GetNul:  getNul,
		table.GetUI8:  getUI8,
		table.GetInt:  getInt,
		table.GetData: getData,
		table.GetFlt:  getFlt,
		table.GetFlu:  getFlu,
		table.GetGrp:  getGrp,
	}
	setters = [table.SetterCount]accessorFunc{
		table.SetNul:  setNul,
		table.SetUI8:  setUI8,
		table.Set01:   set01,
		table.Set012:  set012,
		table.Set0123: set0123,
		table.SetInt:  setInt,
		table.SetData: setData,
		table.SetFlt:  setFlt,
		table.SetFlu:  setFlu,
		table.SetGrp:  setGrp,
		table.SetDefa: setDefa,
	}
}

// target fetches the row's backing reference with the width the
// accessor expects. A mismatch is a table-configuration defect and is
// reported like any other internal range condition.

func targetUI8(e *Engine, nv *nvobj.Object) (*uint8, bool) {
	t, ok := e.tbl.Entry(nv.Index).Target.(*uint8)
	return t, ok
}

func targetU32(e *Engine, nv *nvobj.Object) (*uint32, bool) {
	t, ok := e.tbl.Entry(nv.Index).Target.(*uint32)
	return t, ok
}

func targetF64(e *Engine, nv *nvobj.Object) (*float64, bool) {
	t, ok := e.tbl.Entry(nv.Index).Target.(*float64)
	return t, ok
}

// getNul reads nothing and tags the node null.
func getNul(_ *Engine, nv *nvobj.Object) status.Status {
	nv.Type = nvobj.TypeNull
	return status.Noop
}

func getUI8(e *Engine, nv *nvobj.Object) status.Status {
	t, ok := targetUI8(e, nv)
	if !ok {
		return status.InternalRangeError
	}
	nv.Value = float64(*t)
	nv.Type = nvobj.TypeInteger
	return status.OK
}

func getInt(e *Engine, nv *nvobj.Object) status.Status {
	t, ok := targetU32(e, nv)
	if !ok {
		return status.InternalRangeError
	}
	nv.Value = float64(*t)
	nv.Type = nvobj.TypeInteger
	return status.OK
}

// getData copies the raw 32-bit pattern into the node's Data carrier.
// The pattern is not meaningfully numeric and never touches Value.
func getData(e *Engine, nv *nvobj.Object) status.Status {
	t, ok := targetU32(e, nv)
	if !ok {
		return status.InternalRangeError
	}
	nv.Data = *t
	nv.Type = nvobj.TypeData
	return status.OK
}

func getFlt(e *Engine, nv *nvobj.Object) status.Status {
	t, ok := targetF64(e, nv)
	if !ok {
		return status.InternalRangeError
	}
	nv.Value = *t
	nv.Precision = e.tbl.Entry(nv.Index).Precision
	nv.Type = nvobj.TypeFloat
	return status.OK
}

// getFlu returns the canonical (millimeter) value without units
// conversion. Conversion happens on write only; this asymmetry is the
// documented behavior.
func getFlu(e *Engine, nv *nvobj.Object) status.Status {
	return getFlt(e, nv)
}

// setNul writes nothing.
func setNul(_ *Engine, _ *nvobj.Object) status.Status {
	return status.Noop
}

func setUI8(e *Engine, nv *nvobj.Object) status.Status {
	t, ok := targetUI8(e, nv)
	if !ok {
		return status.InternalRangeError
	}
	*t = uint8(nv.Value)
	nv.Type = nvobj.TypeInteger
	return status.OK
}

// The range-checked variants validate before mutating: a rejected value
// leaves the backing state unchanged.

func set01(e *Engine, nv *nvobj.Object) status.Status {
	if nv.Value < 0 || nv.Value > 1 {
		return status.ValueUnsupported
	}
	return setUI8(e, nv)
}

func set012(e *Engine, nv *nvobj.Object) status.Status {
	if nv.Value < 0 || nv.Value > 2 {
		return status.ValueUnsupported
	}
	return setUI8(e, nv)
}

func set0123(e *Engine, nv *nvobj.Object) status.Status {
	if nv.Value < 0 || nv.Value > 3 {
		return status.ValueUnsupported
	}
	return setUI8(e, nv)
}

func setInt(e *Engine, nv *nvobj.Object) status.Status {
	t, ok := targetU32(e, nv)
	if !ok {
		return status.InternalRangeError
	}
	*t = uint32(nv.Value)
	nv.Type = nvobj.TypeInteger
	return status.OK
}

// setData writes the node's raw 32-bit pattern to the target bit for
// bit.
func setData(e *Engine, nv *nvobj.Object) status.Status {
	t, ok := targetU32(e, nv)
	if !ok {
		return status.InternalRangeError
	}
	*t = nv.Data
	nv.Type = nvobj.TypeData
	return status.OK
}

func setFlt(e *Engine, nv *nvobj.Object) status.Status {
	t, ok := targetF64(e, nv)
	if !ok {
		return status.InternalRangeError
	}
	*t = nv.Value
	nv.Precision = e.tbl.Entry(nv.Index).Precision
	nv.Type = nvobj.TypeFloat
	return status.OK
}

// setFlu converts inch input to canonical millimeters before storing.
// The node's value is converted in place so a following persist writes
// the canonical value.
func setFlu(e *Engine, nv *nvobj.Object) status.Status {
	if e.mach.Units == machine.Inches {
		nv.Value *= machine.MMPerInch
	}
	return setFlt(e, nv)
}

// setDefa is the guarded defaults-reset command row.
func setDefa(e *Engine, nv *nvobj.Object) status.Status {
	return e.SetDefaults(nv)
}
