package table

import (
	"errors"
	"testing"

	"github.com/motionkit/nvcfg/internal/status"
)

func testEntries() []Entry {
	var fb, vm float64
	return []Entry{
		{Token: "fb", Group: "sys", Flags: FlagNoStrip, Get: GetFlt, Set: SetNul, Target: &fb},
		{Token: "xvm", Group: "x", Get: GetFlu, Set: SetFlu, Target: &vm},
		{Token: "xfr", Group: "x", Get: GetFlu, Set: SetFlu, Target: &vm},
		{Token: "x", Get: GetGrp, Set: SetGrp},
		{Token: "sys", Get: GetGrp, Set: SetGrp},
	}
}

func TestBuild_Partition(t *testing.T) {
	tbl, err := Build(testEntries())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := tbl.Len(); got != 5 {
		t.Errorf("Len = %d, want 5", got)
	}
	if got := tbl.GroupsStart(); got != 3 {
		t.Errorf("GroupsStart = %d, want 3", got)
	}

	for i := 0; i < 3; i++ {
		if !tbl.IndexIsSingle(i) {
			t.Errorf("IndexIsSingle(%d) = false, want true", i)
		}
		if !tbl.IndexLtGroups(i) {
			t.Errorf("IndexLtGroups(%d) = false, want true", i)
		}
	}
	for i := 3; i < 5; i++ {
		if tbl.IndexIsSingle(i) {
			t.Errorf("IndexIsSingle(%d) = true, want false", i)
		}
	}
	if tbl.IndexIsSingle(-1) {
		t.Error("IndexIsSingle(-1) = true, want false")
	}
	if tbl.IndexLtGroups(status.NoMatch) {
		t.Error("IndexLtGroups(NoMatch) = true, want false")
	}
}

func TestBuild_RejectsSingleAfterGroup(t *testing.T) {
	entries := []Entry{
		{Token: "x", Get: GetGrp, Set: SetGrp},
		{Token: "fb", Get: GetFlt, Set: SetNul},
	}
	if _, err := Build(entries); !errors.Is(err, ErrPartition) {
		t.Errorf("Build error = %v, want ErrPartition", err)
	}
}

func TestBuild_RejectsLongTokens(t *testing.T) {
	if _, err := Build([]Entry{{Token: "toolong"}}); !errors.Is(err, ErrTokenLength) {
		t.Errorf("Build error = %v, want ErrTokenLength", err)
	}
	if _, err := Build([]Entry{{Token: "ok", Group: "long"}}); !errors.Is(err, ErrGroupLength) {
		t.Errorf("Build error = %v, want ErrGroupLength", err)
	}
}

func TestBuild_Empty(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("Build error = %v, want ErrEmptyTable", err)
	}
}

func TestResolveIndex(t *testing.T) {
	tbl, err := Build(testEntries())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tests := []struct {
		group, token string
		want         int
	}{
		{"", "fb", 0},
		{"x", "vm", 1},
		{"", "xvm", 1},
		{"x", "fr", 2},
		{"", "x", 3},
		{"", "sys", 4},
		{"", "zz", status.NoMatch},
		{"x", "vmax", status.NoMatch},
		{"", "xv", status.NoMatch}, // prefix of a stored token is not a match
		{"", "", status.NoMatch},
	}
	for _, tt := range tests {
		if got := tbl.ResolveIndex(tt.group, tt.token); got != tt.want {
			t.Errorf("ResolveIndex(%q, %q) = %d, want %d", tt.group, tt.token, got, tt.want)
		}
	}
}

func TestResolveIndex_RoundTrip(t *testing.T) {
	tbl, err := Build(testEntries())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := 0; i < tbl.Len(); i++ {
		ent := tbl.Entry(i)
		group, token := "", ent.Token
		if ent.Group != "" && ent.Flags&FlagNoStrip == 0 {
			group = ent.Group
			token = ent.Token[len(ent.Group):]
		}
		if got := tbl.ResolveIndex(group, token); got != i {
			t.Errorf("row %d (%s): ResolveIndex(%q, %q) = %d", i, ent.Token, group, token, got)
		}
	}
}
