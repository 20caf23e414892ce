// Package machine holds the live runtime state the config table rows
// point into: system settings, per-axis and per-motor parameters, and
// coordinate system offsets.
//
// All motion values are stored in canonical millimeter units regardless
// of the active display units mode.
package machine

// Geometry of the controller.
const (
	Axes   = 6 // x y z a b c
	Motors = 4
	Coords = 6 // G54..G59
)

// AxisLetters maps axis numbers to their mnemonic letters.
const AxisLetters = "xyzabc"

// Units mode values (G20/G21 semantics).
const (
	Inches      uint8 = 0
	Millimeters uint8 = 1
)

// Communication mode values.
const (
	TextMode uint8 = 0
	JSONMode uint8 = 1
)

// MMPerInch converts inch input to canonical millimeters.
const MMPerInch = 25.4

// Compiled-in identity. The build number doubles as the NVM stamp, so it
// must survive a float32 round trip exactly.
const (
	DefaultFirmwareBuild   = 440.50
	DefaultFirmwareVersion = 0.98
)

// Axis is the per-axis parameter block.
type Axis struct {
	AxisMode    uint8
	VelocityMax float64
	FeedRateMax float64
	TravelMax   float64
	JerkMax     float64
	JunctionDev float64
}

// Motor is the per-motor parameter block.
type Motor struct {
	MapToAxis    uint8
	StepAngle    float64
	TravelPerRev float64
	Microsteps   uint8
	Polarity     uint8
	PowerMode    uint8
}

// Machine is the complete live backing state governed by the config
// table. Fields referenced by table targets must remain addressable for
// the life of the table.
type Machine struct {
	FirmwareBuild   float64
	FirmwareVersion float64

	// System settings.
	Units           uint8 // Inches or Millimeters
	CommMode        uint8 // TextMode or JSONMode
	SwitchType      uint8 // 0 normally-open, 1 normally-closed
	StatusInterval  uint32
	JSONVerbosity   uint8
	TextVerbosity   uint8
	QueueVerbosity  uint8
	MessageEcho     uint8 // echo "msg" objects in structured mode

	// Opaque user data words, carried bit-for-bit.
	UserData [4]uint32

	Axes   [Axes]Axis
	Motors [Motors]Motor

	// Offsets[c][a] is the offset of axis a in coordinate system c.
	// Row 0 is unused; rows 1..Coords are G54..G59.
	Offsets [Coords + 1][Axes]float64
}

// New returns a Machine with compiled-in defaults for state the config
// table does not initialize itself (identity and modes; parameter values
// come from the table's default replay).
func New() *Machine {
	return &Machine{
		FirmwareBuild:   DefaultFirmwareBuild,
		FirmwareVersion: DefaultFirmwareVersion,
		Units:           Millimeters,
		CommMode:        TextMode,
	}
}
