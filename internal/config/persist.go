package config

import (
	"fmt"

	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
	"github.com/motionkit/nvcfg/internal/table"
)

// Persist writes nv's value to non-volatile storage if the row is
// eligible: the index must be below the group boundary and the row must
// carry the persist flag. Unchanged values are not rewritten.
//
// Persistence is not reentrant-safe. The caller must guarantee it runs
// outside any interrupt context and is never interleaved with another
// persistence operation; the engine performs no mutual exclusion.
func (e *Engine) Persist(nv *nvobj.Object) error {
	if e.persistDisabled {
		return nil
	}
	if !e.tbl.IndexLtGroups(nv.Index) {
		return nil
	}
	if e.tbl.Entry(nv.Index).Flags&table.FlagPersist == 0 {
		return nil
	}
	return e.writePersistentValue(nv)
}

// writePersistentValue writes through the store, skipping values that
// are already stored. Comparison is at the store's float32 record
// precision so canonical values round-tripped through storage do not
// rewrite forever.
func (e *Engine) writePersistentValue(nv *nvobj.Object) error {
	cur, err := e.store.Read(nv.Index)
	if err != nil {
		return err
	}
	if float32(cur) == float32(nv.Value) {
		return nil
	}
	return e.store.Write(nv.Index, nv.Value)
}

// Init is the cold-start path. Canonical millimeter mode is forced
// first so unit-aware setters behave correctly during replay. The build
// stamp in record 0 is then checked against the running firmware: a
// mismatch means storage is stale and defaults are loaded; a match
// replays every initialize-flagged single parameter from storage into
// live state, in table order. Status reporting is re-armed either way.
func (e *Engine) Init() error {
	nv := e.list.Reset()
	e.mach.Units = machine.Millimeters

	nv.Index = 0
	stamp, err := e.store.Read(0)
	if err != nil {
		return fmt.Errorf("read build stamp: %w", err)
	}

	if float32(stamp) != float32(e.mach.FirmwareBuild) {
		nv.Value = 1 // storage is stale; confirm the reset ourselves
		if st := e.SetDefaults(nv); st != status.OK {
			return st.Err()
		}
		return nil
	}

	e.log.Info("loading persisted configuration",
		"build", e.mach.FirmwareBuild)
	displayUnits := e.mach.Units
	for i := 0; e.tbl.IndexIsSingle(i); i++ {
		ent := e.tbl.Entry(i)
		if ent.Flags&table.FlagInitialize == 0 {
			continue
		}
		nv.Index = i
		nv.Token = ent.Token
		v, err := e.store.Read(i)
		if err != nil {
			return fmt.Errorf("read record %d (%s): %w", i, ent.Token, err)
		}
		nv.Value = v
		e.Set(nv)
		// Stored records are canonical millimeters. A replayed inches
		// display mode is held back until the loop is done so the
		// unit-aware setters do not convert the rows that follow.
		if e.mach.Units != machine.Millimeters {
			displayUnits = e.mach.Units
			e.mach.Units = machine.Millimeters
		}
	}
	e.mach.Units = displayUnits
	e.initStatusReport()
	return nil
}

// SetDefaults resets live state and storage to the compiled-in defaults.
// The reset is guarded: unless nv carries a true value nothing happens
// and a guidance message is queued instead. On confirm, canonical
// millimeter mode is forced, then every initialize-flagged single
// parameter is written and persisted in table order.
func (e *Engine) SetDefaults(nv *nvobj.Object) status.Status {
	if nv.Value == 0 {
		e.AddConditionalMessage("defaults not loaded - set defa to 1 to confirm")
		return status.OK
	}

	e.mach.Units = machine.Millimeters
	e.log.Info("initializing configuration to defaults")
	for i := 0; e.tbl.IndexIsSingle(i); i++ {
		ent := e.tbl.Entry(i)
		if ent.Flags&table.FlagInitialize == 0 {
			continue
		}
		nv.Index = i
		nv.Token = ent.Token
		nv.Value = ent.DefValue
		e.Set(nv)
		if err := e.Persist(nv); err != nil {
			e.log.Warn("default persist failed", "token", ent.Token, "error", err)
		}
	}
	e.initStatusReport()
	return status.OK
}

// PersistOffsets rewrites the coordinate system offset grid (G54..G59 ×
// axes) back to storage when flagged. The ordinary persist gate is used,
// which only writes changed values; this is a bulk sync, not a new
// persistence policy.
func (e *Engine) PersistOffsets(flag bool) error {
	if !flag {
		return nil
	}
	var nv nvobj.Object
	for c := 1; c <= machine.Coords; c++ {
		for a := 0; a < machine.Axes; a++ {
			nv.Token = fmt.Sprintf("g%d%c", 53+c, machine.AxisLetters[a])
			nv.Index = e.tbl.ResolveIndex("", nv.Token)
			nv.Value = e.mach.Offsets[c][a]
			if err := e.Persist(&nv); err != nil {
				return fmt.Errorf("persist %s: %w", nv.Token, err)
			}
		}
	}
	return nil
}

// initStatusReport re-arms the status report collaborator and tells
// observers the parameter set changed wholesale.
func (e *Engine) initStatusReport() {
	if e.reporter != nil {
		e.reporter.Init()
	}
	e.notifier.NotifyReload()
}
