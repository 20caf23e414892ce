package machine

import (
	"fmt"

	"github.com/motionkit/nvcfg/internal/table"
)

// Per-axis defaults. Rotary axes (a, b, c) move in degrees and carry
// their own limits.
var (
	linearDefaults = Axis{
		AxisMode:    1,
		VelocityMax: 16000,
		FeedRateMax: 16000,
		TravelMax:   150,
		JerkMax:     5000000,
		JunctionDev: 0.05,
	}
	rotaryDefaults = Axis{
		AxisMode:    1,
		VelocityMax: 21600,
		FeedRateMax: 21600,
		TravelMax:   75,
		JerkMax:     5000000,
		JunctionDev: 0.05,
	}
)

// motorDefaults is the per-motor default block; MapToAxis defaults to
// the motor's own ordinal.
var motorDefaults = Motor{
	StepAngle:    1.8,
	TravelPerRev: 1.25,
	Microsteps:   8,
}

// DefaultTable builds the compiled-in config index table over m.
func DefaultTable(m *Machine) *table.Table {
	return BuildTable(m, nil)
}

// BuildTable builds the config index table over m, with an optional
// profile overriding row defaults. Single parameters come first (system,
// user data, axes, motors, coordinate offsets, commands), group rows
// last; the builder enforces the partition.
func BuildTable(m *Machine, p *Profile) *table.Table {
	var rows []table.Entry

	const fip = table.FlagInitialize | table.FlagPersist
	const fipn = fip | table.FlagNoStrip

	sys := p.systemDefaults()
	statusInterval := 250.0
	if sys.StatusInterval != 0 {
		statusInterval = float64(sys.StatusInterval)
	}
	jsonVerbosity := 2.0
	if sys.JSONVerbosity != 0 {
		jsonVerbosity = float64(sys.JSONVerbosity)
	}
	textVerbosity := 1.0
	if sys.TextVerbosity != 0 {
		textVerbosity = float64(sys.TextVerbosity)
	}

	// System group. Tokens are stored bare; the sys group is not
	// prefixed.
	rows = append(rows,
		table.Entry{Token: "fb", Group: "sys", Flags: fipn, Get: table.GetFlt, Set: table.SetNul, Print: table.PrintFlt, Target: &m.FirmwareBuild, DefValue: DefaultFirmwareBuild, Precision: 2},
		table.Entry{Token: "fv", Group: "sys", Flags: fipn, Get: table.GetFlt, Set: table.SetNul, Print: table.PrintFlt, Target: &m.FirmwareVersion, DefValue: DefaultFirmwareVersion, Precision: 2},
		table.Entry{Token: "un", Group: "sys", Flags: fipn, Get: table.GetUI8, Set: table.Set01, Print: table.PrintUI8, Target: &m.Units, DefValue: float64(Millimeters)},
		table.Entry{Token: "st", Group: "sys", Flags: fipn, Get: table.GetUI8, Set: table.Set01, Print: table.PrintUI8, Target: &m.SwitchType},
		table.Entry{Token: "si", Group: "sys", Flags: fipn, Get: table.GetInt, Set: table.SetInt, Print: table.PrintInt, Target: &m.StatusInterval, DefValue: statusInterval},
		table.Entry{Token: "ej", Group: "sys", Flags: fipn, Get: table.GetUI8, Set: table.Set01, Print: table.PrintUI8, Target: &m.CommMode},
		table.Entry{Token: "jv", Group: "sys", Flags: fipn, Get: table.GetUI8, Set: table.Set0123, Print: table.PrintUI8, Target: &m.JSONVerbosity, DefValue: jsonVerbosity},
		table.Entry{Token: "tv", Group: "sys", Flags: fipn, Get: table.GetUI8, Set: table.Set01, Print: table.PrintUI8, Target: &m.TextVerbosity, DefValue: textVerbosity},
		table.Entry{Token: "qv", Group: "sys", Flags: fipn, Get: table.GetUI8, Set: table.Set012, Print: table.PrintUI8, Target: &m.QueueVerbosity, DefValue: 1},
		table.Entry{Token: "em", Group: "sys", Flags: fipn, Get: table.GetUI8, Set: table.Set01, Print: table.PrintUI8, Target: &m.MessageEcho},
	)

	// User data words: opaque 32-bit patterns, volatile.
	for i := range m.UserData {
		rows = append(rows, table.Entry{
			Token: fmt.Sprintf("uda%d", i), Group: "uda",
			Get: table.GetData, Set: table.SetData, Print: table.PrintInt,
			Target: &m.UserData[i],
		})
	}

	// Axis parameters.
	for i := 0; i < Axes; i++ {
		ax := &m.Axes[i]
		g := string(AxisLetters[i])
		base := linearDefaults
		if i >= 3 {
			base = rotaryDefaults
		}
		def := p.axisDefaults(g, base)
		rows = append(rows,
			table.Entry{Token: g + "am", Group: g, Flags: fip, Get: table.GetUI8, Set: table.Set0123, Print: table.PrintUI8, Target: &ax.AxisMode, DefValue: float64(def.AxisMode)},
			table.Entry{Token: g + "vm", Group: g, Flags: fip, Get: table.GetFlu, Set: table.SetFlu, Print: table.PrintFlu, Target: &ax.VelocityMax, DefValue: def.VelocityMax},
			table.Entry{Token: g + "fr", Group: g, Flags: fip, Get: table.GetFlu, Set: table.SetFlu, Print: table.PrintFlu, Target: &ax.FeedRateMax, DefValue: def.FeedRateMax},
			table.Entry{Token: g + "tm", Group: g, Flags: fip, Get: table.GetFlu, Set: table.SetFlu, Print: table.PrintFlu, Target: &ax.TravelMax, DefValue: def.TravelMax, Precision: 3},
			table.Entry{Token: g + "jm", Group: g, Flags: fip, Get: table.GetFlt, Set: table.SetFlt, Print: table.PrintFlt, Target: &ax.JerkMax, DefValue: def.JerkMax},
			table.Entry{Token: g + "jd", Group: g, Flags: fip, Get: table.GetFlt, Set: table.SetFlt, Print: table.PrintFlt, Target: &ax.JunctionDev, DefValue: def.JunctionDev, Precision: 4},
		)
	}

	// Motor parameters.
	for i := 0; i < Motors; i++ {
		mo := &m.Motors[i]
		g := fmt.Sprintf("%d", i+1)
		def := p.motorDefaultsFor(g, motorDefaults)
		rows = append(rows,
			table.Entry{Token: g + "ma", Group: g, Flags: fip, Get: table.GetUI8, Set: table.SetUI8, Print: table.PrintUI8, Target: &mo.MapToAxis, DefValue: float64(i)},
			table.Entry{Token: g + "sa", Group: g, Flags: fip, Get: table.GetFlt, Set: table.SetFlt, Print: table.PrintFlt, Target: &mo.StepAngle, DefValue: def.StepAngle, Precision: 3},
			table.Entry{Token: g + "tr", Group: g, Flags: fip, Get: table.GetFlu, Set: table.SetFlu, Print: table.PrintFlu, Target: &mo.TravelPerRev, DefValue: def.TravelPerRev, Precision: 4},
			table.Entry{Token: g + "mi", Group: g, Flags: fip, Get: table.GetUI8, Set: table.SetUI8, Print: table.PrintUI8, Target: &mo.Microsteps, DefValue: float64(def.Microsteps)},
			table.Entry{Token: g + "po", Group: g, Flags: fip, Get: table.GetUI8, Set: table.Set01, Print: table.PrintUI8, Target: &mo.Polarity},
			table.Entry{Token: g + "pm", Group: g, Flags: fip, Get: table.GetUI8, Set: table.Set01, Print: table.PrintUI8, Target: &mo.PowerMode},
		)
	}

	// Coordinate system offsets G54..G59.
	for c := 1; c <= Coords; c++ {
		g := fmt.Sprintf("g%d", 53+c)
		for a := 0; a < Axes; a++ {
			rows = append(rows, table.Entry{
				Token: g + string(AxisLetters[a]), Group: g, Flags: fip,
				Get: table.GetFlu, Set: table.SetFlu, Print: table.PrintFlu,
				Target: &m.Offsets[c][a], Precision: 3,
			})
		}
	}

	// Command and placeholder rows. The status report row is owned by
	// the report collaborator; here it is a null placeholder.
	rows = append(rows,
		table.Entry{Token: "sr", Get: table.GetNul, Set: table.SetNul, Print: table.PrintNul},
		table.Entry{Token: "defa", Get: table.GetNul, Set: table.SetDefa, Print: table.PrintNul},
	)

	// Group rows.
	groups := []string{"sys", "uda"}
	for i := 0; i < Axes; i++ {
		groups = append(groups, string(AxisLetters[i]))
	}
	for i := 0; i < Motors; i++ {
		groups = append(groups, fmt.Sprintf("%d", i+1))
	}
	for c := 1; c <= Coords; c++ {
		groups = append(groups, fmt.Sprintf("g%d", 53+c))
	}
	for _, g := range groups {
		rows = append(rows, table.Entry{
			Token: g, Get: table.GetGrp, Set: table.SetGrp, Print: table.PrintNul,
		})
	}

	return table.MustBuild(rows)
}
