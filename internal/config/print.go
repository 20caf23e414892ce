package config

import (
	"fmt"

	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/status"
	"github.com/motionkit/nvcfg/internal/table"
)

// printers is the format dispatch table, indexed by table.PrinterID.
var printers = [table.PrinterCount]accessorFunc{
	table.PrintNul: printNul,
	table.PrintUI8: printUI8,
	table.PrintInt: printInt,
	table.PrintFlt: printFlt,
	table.PrintFlu: printFlu,
}

func printNul(_ *Engine, _ *nvobj.Object) status.Status {
	return status.Noop
}

func printUI8(e *Engine, nv *nvobj.Object) status.Status {
	fmt.Fprintf(e.out, "$%s %d\n", e.tbl.Entry(nv.Index).Token, uint8(nv.Value))
	return status.OK
}

func printInt(e *Engine, nv *nvobj.Object) status.Status {
	fmt.Fprintf(e.out, "$%s %d\n", e.tbl.Entry(nv.Index).Token, uint32(nv.Value))
	return status.OK
}

func printFlt(e *Engine, nv *nvobj.Object) status.Status {
	ent := e.tbl.Entry(nv.Index)
	fmt.Fprintf(e.out, "$%s %.*f\n", ent.Token, int(ent.Precision), nv.Value)
	return status.OK
}

// printFlu renders the canonical value with the linear units label.
func printFlu(e *Engine, nv *nvobj.Object) status.Status {
	ent := e.tbl.Entry(nv.Index)
	fmt.Fprintf(e.out, "$%s %.*f %s\n", ent.Token, int(ent.Precision), nv.Value, e.UnitsLabel())
	return status.OK
}

// UnitsLabel returns the display label of the active units mode.
func (e *Engine) UnitsLabel() string {
	if e.mach.Units == machine.Inches {
		return "in"
	}
	return "mm"
}
