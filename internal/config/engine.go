// Package config implements the parameter-configuration engine: index
// dispatch, the typed accessor family, group expansion, and the
// NVM persistence gate.
//
// The engine is single-threaded and cooperative. Every operation runs to
// completion inside one invocation of the external request loop; there is
// no internal locking. The response list and string arena are owned by
// the engine and reset at the start of each request.
package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/motionkit/nvcfg/internal/config/notify"
	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvm"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
	"github.com/motionkit/nvcfg/internal/table"
)

// StatusReporter is the external collaborator re-armed after a cold
// start or defaults reset.
type StatusReporter interface {
	Init()
}

// Engine ties the config table, live machine state, response list and
// NVM store together behind the protocol-agnostic object model.
type Engine struct {
	tbl      *table.Table
	mach     *machine.Machine
	store    nvm.Store
	list     *nvobj.List
	notifier *notify.Notifier
	reporter StatusReporter
	log      *slog.Logger
	out      io.Writer

	persistDisabled bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithOutput sets the writer the print accessors format to.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithStatusReporter sets the status report collaborator.
func WithStatusReporter(r StatusReporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithPersistenceDisabled turns the persistence gate into a no-op.
// Used for simulation and tests that have no store behind them.
func WithPersistenceDisabled() Option {
	return func(e *Engine) { e.persistDisabled = true }
}

// New creates an engine over a built table, its backing machine state,
// and an NVM store.
func New(tbl *table.Table, mach *machine.Machine, store nvm.Store, opts ...Option) *Engine {
	e := &Engine{
		tbl:      tbl,
		mach:     mach,
		store:    store,
		list:     nvobj.NewList(),
		notifier: notify.New(),
		log:      slog.Default(),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the engine's config table.
func (e *Engine) Table() *table.Table {
	return e.tbl
}

// Machine returns the live backing state.
func (e *Engine) Machine() *machine.Machine {
	return e.mach
}

// List returns the engine's response list.
func (e *Engine) List() *nvobj.List {
	return e.list
}

// Notifier returns the parameter-change notifier.
func (e *Engine) Notifier() *notify.Notifier {
	return e.notifier
}

// Log returns the engine logger.
func (e *Engine) Log() *slog.Logger {
	return e.log
}

// accessorFunc is one entry of the typed dispatch tables. Dispatch is
// by stable accessor id, O(1), with the bounds check done by the
// gatekeepers before indexing.
type accessorFunc func(*Engine, *nvobj.Object) status.Status

// Get populates nv with the value of the parameter at nv.Index.
func (e *Engine) Get(nv *nvobj.Object) status.Status {
	if nv.Index < 0 || nv.Index >= e.tbl.Len() {
		return status.InternalRangeError
	}
	return getters[e.tbl.Entry(nv.Index).Get](e, nv)
}

// Set writes nv's value through the parameter at nv.Index, or invokes
// the row's command function.
func (e *Engine) Set(nv *nvobj.Object) status.Status {
	if nv.Index < 0 || nv.Index >= e.tbl.Len() {
		return status.InternalRangeError
	}
	ent := e.tbl.Entry(nv.Index)
	st := setters[ent.Set](e, nv)
	if st == status.OK && ent.Target != nil && e.tbl.IndexIsSingle(nv.Index) {
		e.notifier.NotifySet(nv.Index, ent.Token, nv.Value)
	}
	return st
}

// Print formats the parameter at nv.Index to the engine output. An
// out-of-range index is a display no-op, not an error.
func (e *Engine) Print(nv *nvobj.Object) {
	if nv.Index < 0 || nv.Index >= e.tbl.Len() {
		return
	}
	printers[e.tbl.Entry(nv.Index).Print](e, nv)
}

// GetObject populates a response node from its table index: the node is
// cleared (index preserved), token and group are copied from the row,
// the group prefix is stripped from the token (or the group cleared for
// no-strip rows), and the row's get accessor fills in the value.
func (e *Engine) GetObject(nv *nvobj.Object) {
	if nv.Index < 0 || nv.Index >= e.tbl.Len() {
		return
	}
	idx := nv.Index
	e.list.ResetObject(nv)
	nv.Index = idx

	ent := e.tbl.Entry(idx)
	nv.Token = ent.Token
	nv.Group = ent.Group
	if nv.Group != "" {
		if ent.Flags&table.FlagNoStrip != 0 {
			nv.Group = ""
		} else {
			nv.Token = nv.Token[len(nv.Group):]
		}
	}
	getters[ent.Get](e, nv)
}

// DumpObject logs a node at debug level.
func (e *Engine) DumpObject(nv *nvobj.Object) {
	e.log.Debug("nv object",
		"index", nv.Index,
		"depth", nv.Depth,
		"type", nv.Type.String(),
		"precision", nv.Precision,
		"value", nv.Value,
		"group", nv.Group,
		"token", nv.Token,
		"string", string(nv.Str))
}
