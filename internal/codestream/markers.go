// Package codestream frames and parses the core marker sequence: SOC, CAP,
// PIH, CDT, WGT, an entropy payload, and EOC (spec §4.6).
//
// The Marker type and its tag table mirror the teacher's own
// internal/codestream/markers.go (a Marker uint16 with a String method and a
// HasLength predicate), narrowed to the six markers this core actually
// frames instead of the full J2K marker set (SIZ/COD/QCD/SOT/SOD/...).
package codestream

import "fmt"

// Marker is a two-byte big-endian marker tag.
type Marker uint16

// Marker tags emitted and parsed by this core.
const (
	SOC Marker = 0xFF10 // Start of codestream
	CAP Marker = 0xFF50 // Capabilities
	PIH Marker = 0xFF12 // Picture header
	CDT Marker = 0xFF13 // Component table
	WGT Marker = 0xFF14 // Weight (quantization gain) table
	EOC Marker = 0xFF11 // End of codestream
)

func (m Marker) String() string {
	switch m {
	case SOC:
		return "SOC"
	case CAP:
		return "CAP"
	case PIH:
		return "PIH"
	case CDT:
		return "CDT"
	case WGT:
		return "WGT"
	case EOC:
		return "EOC"
	default:
		return fmt.Sprintf("Marker(%#04x)", uint16(m))
	}
}

// HasLength reports whether m is followed by a two-byte length field. SOC
// and EOC are bare delimiters; the rest carry a length-prefixed payload.
func (m Marker) HasLength() bool {
	return m != SOC && m != EOC
}

// pihLength is the fixed PIH payload length in bytes, including the length
// field itself (spec §4.6 table).
const pihLength = 25
