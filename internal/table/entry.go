// Package table defines the compiled-in parameter index table and the
// token resolver over it.
//
// The table is a flat, ordered array of Entry descriptors. Ordering is
// load-bearing: single settable parameters come first, group pseudo-rows
// last, and persistence and default-loading only ever iterate the single
// partition. The table is immutable once built.
package table

// Limits on the fixed-width mnemonic fields.
const (
	TokenLen = 5 // max token length including group prefix
	GroupLen = 3 // max group length
)

// Flags is the per-entry behavior bitmask.
type Flags uint8

const (
	// FlagInitialize marks entries replayed from storage at cold start
	// and rewritten by a defaults reset.
	FlagInitialize Flags = 1 << iota

	// FlagPersist marks entries whose values are written to NVM.
	FlagPersist

	// FlagNoStrip marks entries whose token is stored bare rather than
	// group-prefixed (the system group convention).
	FlagNoStrip
)

// GetterID selects a read accessor in the engine's dispatch table.
type GetterID uint8

const (
	GetNul GetterID = iota // placeholder row, reads nothing
	GetUI8                 // 8-bit unsigned target
	GetInt                 // 32-bit integer target
	GetData                // opaque 32-bit pattern target
	GetFlt                 // float target with display precision
	GetFlu                 // float target in canonical linear units
	GetGrp                 // group expansion

	GetterCount
)

// SetterID selects a write accessor in the engine's dispatch table.
type SetterID uint8

const (
	SetNul  SetterID = iota // placeholder row, writes nothing
	SetUI8                  // 8-bit unsigned target, unchecked
	Set01                   // 8-bit target, accepts 0-1
	Set012                  // 8-bit target, accepts 0-2
	Set0123                 // 8-bit target, accepts 0-3
	SetInt                  // 32-bit integer target
	SetData                 // opaque 32-bit pattern target
	SetFlt                  // float target
	SetFlu                  // float target with units conversion on write
	SetGrp                  // group write (structured mode only)
	SetDefa                 // guarded defaults-reset command

	SetterCount
)

// PrinterID selects a format accessor in the engine's dispatch table.
type PrinterID uint8

const (
	PrintNul PrinterID = iota // no output
	PrintUI8                  // integer rendering of an 8-bit target
	PrintInt                  // integer rendering of a 32-bit target
	PrintFlt                  // precision-aware float rendering
	PrintFlu                  // float rendering with a units suffix

	PrinterCount
)

// Entry is one row of the config index table. The Target field references
// the live backing field the row governs and must be one of *uint8,
// *uint32 or *float64 matching the accessor ids; group and command rows
// leave it nil.
type Entry struct {
	Token     string // full token, group-prefixed unless FlagNoStrip
	Group     string // owning group, empty for group rows themselves
	Flags     Flags
	Get       GetterID
	Set       SetterID
	Print     PrinterID
	Target    any
	DefValue  float64
	Precision int8
}

// IsGroup reports whether the entry is a group pseudo-row.
func (e *Entry) IsGroup() bool {
	return e.Get == GetGrp
}
