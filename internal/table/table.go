package table

import (
	"errors"
	"fmt"

	"github.com/motionkit/nvcfg/internal/status"
)

// Errors returned by Build.
var (
	// ErrTokenLength indicates a token exceeds the fixed token width.
	ErrTokenLength = errors.New("token exceeds maximum length")

	// ErrGroupLength indicates a group exceeds the fixed group width.
	ErrGroupLength = errors.New("group exceeds maximum length")

	// ErrPartition indicates a single row follows a group row.
	ErrPartition = errors.New("single parameter after group boundary")

	// ErrEmptyTable indicates Build was called with no entries.
	ErrEmptyTable = errors.New("empty table")
)

// Accessor is the narrow read seam over table rows. Most targets use the
// Table directly; an embedded port can substitute a specialized read path
// without touching callers.
type Accessor interface {
	Len() int
	Entry(i int) *Entry
	IndexIsSingle(i int) bool
	IndexLtGroups(i int) bool
}

// Table is the immutable parameter index table.
type Table struct {
	entries     []Entry
	groupsStart int
}

// Build validates the entries and returns an immutable Table.
// Entries must be ordered with all single parameters before the first
// group row.
func Build(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	groupsStart := len(entries)
	for i := range entries {
		e := &entries[i]
		if len(e.Token) > TokenLen {
			return nil, fmt.Errorf("%w: %q", ErrTokenLength, e.Token)
		}
		if len(e.Group) > GroupLen {
			return nil, fmt.Errorf("%w: %q", ErrGroupLength, e.Group)
		}
		if e.IsGroup() {
			if i < groupsStart {
				groupsStart = i
			}
		} else if i > groupsStart {
			return nil, fmt.Errorf("%w: %q at index %d", ErrPartition, e.Token, i)
		}
	}

	return &Table{entries: entries, groupsStart: groupsStart}, nil
}

// MustBuild builds a table and panics on error. Used for compiled-in
// tables registered at startup.
func MustBuild(entries []Entry) *Table {
	t, err := Build(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.entries)
}

// GroupsStart returns the index of the first group row, or Len() if the
// table has no group rows.
func (t *Table) GroupsStart() int {
	return t.groupsStart
}

// Entry returns the row at index i. The entry is shared and must not be
// mutated.
func (t *Table) Entry(i int) *Entry {
	return &t.entries[i]
}

// IndexIsSingle reports whether i addresses a single settable parameter.
func (t *Table) IndexIsSingle(i int) bool {
	return i >= 0 && i < t.groupsStart
}

// IndexLtGroups reports whether i is below the group boundary.
// Persistence eligibility is defined on this predicate; it coincides
// with IndexIsSingle in this table layout.
func (t *Table) IndexLtGroups(i int) bool {
	return t.IndexIsSingle(i)
}

// ResolveIndex maps a (group, token) pair to a table index, or
// status.NoMatch if no row matches.
//
// This is a linear scan over the stored tokens and is the single
// costliest routine in the subsystem. It is kept isolated here so it can
// be replaced by a sorted or hashed lookup without touching callers.
func (t *Table) ResolveIndex(group, token string) int {
	probe := group + token
	if probe == "" || len(probe) > GroupLen+TokenLen {
		return status.NoMatch
	}

	for i := range t.entries {
		stored := t.entries[i].Token
		if len(stored) != len(probe) {
			continue
		}
		match := true
		for j := 0; j < len(stored); j++ {
			if stored[j] != probe[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return status.NoMatch
}
