// Package protocol renders and parses the two wire surfaces over the
// response object model: a line-oriented text mode and a structured JSON
// mode. The serializers consume the ordered node sequence the engine
// assembles and consult the group-prefixing predicate; they own the
// response footer.
package protocol

import (
	"strings"

	"github.com/motionkit/nvcfg/internal/machine"
)

// DetectMode classifies a raw command line: lines opening a JSON object
// belong to the structured mode, everything else to text mode.
func DetectMode(line string) uint8 {
	if strings.HasPrefix(strings.TrimSpace(line), "{") {
		return machine.JSONMode
	}
	return machine.TextMode
}
