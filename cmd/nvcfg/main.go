// Package main is the nvcfg operator tool: it runs the parameter
// engine against a file-backed NVM image and a machine profile, and
// executes text or structured commands against it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/motionkit/nvcfg/internal/config"
	"github.com/motionkit/nvcfg/internal/machine"
	"github.com/motionkit/nvcfg/internal/nvm"
	"github.com/motionkit/nvcfg/internal/nvobj"
	"github.com/motionkit/nvcfg/internal/protocol"
	"github.com/motionkit/nvcfg/internal/status"
	"github.com/motionkit/nvcfg/internal/table"
)

func main() {
	os.Exit(run())
}

func run() int {
	profilePath := flag.String("profile", "", "machine profile TOML file")
	nvmPath := flag.String("nvm", "nvcfg.nvm", "NVM record file")
	cmdStr := flag.String("cmd", "", "command to execute ($xvm=1200 or {\"x\":{\"vm\":1200}})")
	list := flag.Bool("list", false, "list all parameters")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var prof *machine.Profile
	if *profilePath != "" {
		p, err := machine.LoadProfile(*profilePath)
		if err != nil {
			pterm.Error.Println(err)
			return 1
		}
		if p == nil {
			pterm.Warning.Printfln("profile %s not found, using defaults", *profilePath)
		}
		prof = p
	}

	m := machine.New()
	tbl := machine.BuildTable(m, prof)

	store, err := nvm.OpenFile(*nvmPath, tbl.Len())
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}
	defer store.Close()

	engine := config.New(tbl, m, store, config.WithLogger(log))
	if err := engine.Init(); err != nil {
		pterm.Error.Println(err)
		return 1
	}

	switch {
	case *list:
		renderTable(engine)
	case *cmdStr != "":
		return execCommand(engine, *cmdStr)
	default:
		flag.Usage()
	}
	return 0
}

// execCommand runs one command line in the mode its syntax selects.
func execCommand(e *config.Engine, line string) int {
	if protocol.DetectMode(line) == machine.JSONMode {
		e.Machine().CommMode = machine.JSONMode
		st := protocol.ParseJSON(e, line)
		out, err := protocol.RenderJSON(e, st)
		if err != nil {
			pterm.Error.Println(err)
			return 1
		}
		fmt.Println(out)
		if st != status.OK && st != status.Noop {
			return 1
		}
		return 0
	}

	st := protocol.ParseText(e, line)
	out := protocol.RenderText(e, st)
	if out != "" {
		fmt.Print(out)
	}
	if st != status.OK && st != status.Noop {
		pterm.Error.Println(st.String())
		return 1
	}
	return 0
}

// renderTable lists every single parameter with its live value.
func renderTable(e *config.Engine) {
	data := pterm.TableData{{"Token", "Group", "Value", "Flags"}}

	tbl := e.Table()
	for i := 0; tbl.IndexIsSingle(i); i++ {
		nv := e.List().Reset()
		nv.Index = i
		e.GetObject(nv)
		ent := tbl.Entry(i)
		data = append(data, []string{ent.Token, ent.Group, formatValue(nv), flagString(ent.Flags)})
	}

	pterm.Info.Printfln("nvcfg build %.2f, %d parameters, units %s",
		e.Machine().FirmwareBuild, tbl.GroupsStart(), e.UnitsLabel())
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func formatValue(nv *nvobj.Object) string {
	switch nv.Type {
	case nvobj.TypeInteger:
		return fmt.Sprintf("%d", uint32(nv.Value))
	case nvobj.TypeFloat:
		return fmt.Sprintf("%.*f", int(nv.Precision), nv.Value)
	case nvobj.TypeData:
		return fmt.Sprintf("0x%08x", nv.Data)
	case nvobj.TypeString:
		return string(nv.Str)
	default:
		return ""
	}
}

func flagString(f table.Flags) string {
	var b strings.Builder
	if f&table.FlagInitialize != 0 {
		b.WriteByte('I')
	}
	if f&table.FlagPersist != 0 {
		b.WriteByte('P')
	}
	if f&table.FlagNoStrip != 0 {
		b.WriteByte('N')
	}
	return b.String()
}
