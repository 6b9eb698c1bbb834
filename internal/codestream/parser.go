package codestream

import (
	"encoding/binary"

	"github.com/jpegxs/go-jpegxs/internal/xserr"
)

// Emit frames a complete picture: SOC, CAP, PIH, CDT(nc components), WGT(qp
// vector), the entropy payload verbatim, and EOC (spec §4.6, §4.7 step 7).
func Emit(w, h uint16, nc uint8, qp []uint8, payload []byte) ([]byte, error) {
	if nc == 0 {
		return nil, xserr.New(xserr.InvalidBufferSize, "codestream: component count must be nonzero")
	}

	buf := make([]byte, 0, 2+4+pihLength+2+2*int(nc)+4+2*len(qp)+len(payload)+2)

	buf = appendMarker(buf, SOC)

	buf = appendMarker(buf, CAP)
	buf = appendUint16(buf, 2) // CAP length: no declared capabilities beyond the field itself

	buf = appendMarker(buf, PIH)
	buf = appendUint16(buf, pihLength)
	buf = appendUint32(buf, 0) // Lcod
	buf = appendUint16(buf, 0) // Ppih
	buf = appendUint16(buf, 0) // Plev
	buf = appendUint16(buf, w) // Wf
	buf = appendUint16(buf, h) // Hf
	buf = appendUint16(buf, 0) // Cw: precinct as wide as the image
	buf = appendUint16(buf, 1) // Hsl: single slice
	buf = append(buf, nc)      // Nc
	buf = append(buf, 8)       // Ng
	buf = append(buf, 1)       // Ss
	buf = append(buf, 20)      // Bw
	buf = append(buf, (6<<4)|4) // Fq:4=6, Br:4=4
	buf = append(buf, 0)        // Fslc:1=0, Ppoc:3=0, reserved:4=0
	buf = append(buf, 0)        // Cpih:4=0, reserved:4=0

	buf = appendMarker(buf, CDT)
	buf = appendUint16(buf, uint16(2+2*int(nc)))
	for i := 0; i < int(nc); i++ {
		sx, sy := componentSampling(i)
		buf = append(buf, 8) // precision
		buf = append(buf, (sx<<4)|sy)
	}

	buf = appendMarker(buf, WGT)
	buf = appendUint16(buf, uint16(2+2*len(qp)))
	for _, g := range qp {
		buf = append(buf, gainFromQP(g))
		buf = append(buf, wgtPriority)
	}

	buf = append(buf, payload...)

	buf = appendMarker(buf, EOC)
	return buf, nil
}

// Parse reads the marker sequence from buf and returns the recovered
// header along with the entropy payload slice (the bytes between WGT and
// EOC). Missing or out-of-order markers return InvalidMarker; a declared
// length that overruns the buffer returns TruncatedStream.
func Parse(buf []byte) (Header, []byte, error) {
	var hdr Header
	pos := 0

	m, err := readMarker(buf, pos)
	if err != nil {
		return hdr, nil, err
	}
	if m != SOC {
		return hdr, nil, xserr.New(xserr.InvalidMarker, "codestream: expected SOC, got %s", m)
	}
	hdr.Markers = append(hdr.Markers, MarkerLocation{Tag: SOC, Offset: 0})
	pos += 2

	capStart := pos
	pos, err = expectMarkerWithLength(buf, pos, CAP)
	if err != nil {
		return hdr, nil, err
	}
	hdr.Markers = append(hdr.Markers, MarkerLocation{Tag: CAP, Offset: capStart})

	pihStart := pos
	m, err = readMarker(buf, pos)
	if err != nil {
		return hdr, nil, err
	}
	if m != PIH {
		return hdr, nil, xserr.New(xserr.InvalidMarker, "codestream: expected PIH, got %s", m)
	}
	length, err := readUint16(buf, pos+2)
	if err != nil {
		return hdr, nil, err
	}
	if int(length) != pihLength {
		return hdr, nil, xserr.New(xserr.InvalidMarker, "codestream: PIH length %d, want %d", length, pihLength)
	}
	if pihStart+2+int(length) > len(buf) {
		return hdr, nil, xserr.New(xserr.TruncatedStream, "codestream: PIH payload overruns buffer")
	}
	body := pihStart + 4
	wf, err := readUint16(buf, body+8)
	if err != nil {
		return hdr, nil, err
	}
	hf, err := readUint16(buf, body+10)
	if err != nil {
		return hdr, nil, err
	}
	ncOff := body + 16
	if ncOff >= len(buf) {
		return hdr, nil, xserr.New(xserr.TruncatedStream, "codestream: PIH truncated before Nc")
	}
	nc := buf[ncOff]
	hdr.Width = wf
	hdr.Height = hf
	hdr.NumComponents = nc
	hdr.Markers = append(hdr.Markers, MarkerLocation{Tag: PIH, Offset: pihStart})
	pos = pihStart + 2 + int(length)

	cdtStart := pos
	m, err = readMarker(buf, pos)
	if err != nil {
		return hdr, nil, err
	}
	if m != CDT {
		return hdr, nil, xserr.New(xserr.InvalidMarker, "codestream: expected CDT, got %s", m)
	}
	hdr.Markers = append(hdr.Markers, MarkerLocation{Tag: CDT, Offset: cdtStart})
	cdtLen, err := readUint16(buf, pos+2)
	if err != nil {
		return hdr, nil, err
	}
	if pos+2+int(cdtLen) > len(buf) {
		return hdr, nil, xserr.New(xserr.TruncatedStream, "codestream: CDT payload overruns buffer")
	}
	cdtBody := pos + 4
	hdr.Components = make([]ComponentInfo, nc)
	for i := 0; i < int(nc); i++ {
		off := cdtBody + 2*i
		if off+1 >= len(buf) {
			return hdr, nil, xserr.New(xserr.TruncatedStream, "codestream: CDT component table truncated")
		}
		prec := buf[off]
		packed := buf[off+1]
		hdr.Components[i] = ComponentInfo{
			Precision: prec,
			SX:        packed >> 4,
			SY:        packed & 0x0F,
		}
	}
	pos = pos + 2 + int(cdtLen)

	wgtStart := pos
	m, err = readMarker(buf, pos)
	if err != nil {
		return hdr, nil, err
	}
	if m != WGT {
		return hdr, nil, xserr.New(xserr.InvalidMarker, "codestream: expected WGT, got %s", m)
	}
	hdr.Markers = append(hdr.Markers, MarkerLocation{Tag: WGT, Offset: wgtStart})
	wgtLen, err := readUint16(buf, pos+2)
	if err != nil {
		return hdr, nil, err
	}
	if pos+2+int(wgtLen) > len(buf) {
		return hdr, nil, xserr.New(xserr.TruncatedStream, "codestream: WGT payload overruns buffer")
	}
	k := (int(wgtLen) - 2) / 2
	wgtBody := pos + 4
	hdr.QP = make([]uint8, k)
	for i := 0; i < k; i++ {
		off := wgtBody + 2*i
		if off >= len(buf) {
			return hdr, nil, xserr.New(xserr.TruncatedStream, "codestream: WGT table truncated")
		}
		hdr.QP[i] = buf[off]
	}
	pos = pos + 2 + int(wgtLen)

	// The payload has no length prefix of its own: it runs up to the final
	// two bytes of the buffer, which must be the EOC tag. Scanning forward
	// for an EOC-shaped byte pair would risk matching an identical pair
	// that occurs by coincidence inside the entropy-coded payload itself.
	if len(buf) < pos+2 {
		return hdr, nil, xserr.New(xserr.InvalidMarker, "codestream: buffer ends before EOC")
	}
	eocPos := len(buf) - 2
	m, err = readMarker(buf, eocPos)
	if err != nil {
		return hdr, nil, err
	}
	if m != EOC {
		return hdr, nil, xserr.New(xserr.InvalidMarker, "codestream: expected EOC at end of buffer, got %s", m)
	}
	hdr.Markers = append(hdr.Markers, MarkerLocation{Tag: EOC, Offset: eocPos})
	payload := buf[pos:eocPos]
	return hdr, payload, nil
}

func appendMarker(buf []byte, m Marker) []byte {
	return appendUint16(buf, uint16(m))
}

func appendUint16(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func readUint16(buf []byte, pos int) (uint16, error) {
	if pos+2 > len(buf) {
		return 0, xserr.New(xserr.TruncatedStream, "codestream: read past end of buffer at offset %d", pos)
	}
	return binary.BigEndian.Uint16(buf[pos : pos+2]), nil
}

func readMarker(buf []byte, pos int) (Marker, error) {
	v, err := readUint16(buf, pos)
	if err != nil {
		return 0, xserr.New(xserr.InvalidMarker, "codestream: missing marker at offset %d", pos)
	}
	return Marker(v), nil
}

// expectMarkerWithLength reads a length-prefixed marker at pos, validates
// it matches want, and returns the offset just past its payload.
func expectMarkerWithLength(buf []byte, pos int, want Marker) (int, error) {
	m, err := readMarker(buf, pos)
	if err != nil {
		return 0, err
	}
	if m != want {
		return 0, xserr.New(xserr.InvalidMarker, "codestream: expected %s, got %s", want, m)
	}
	length, err := readUint16(buf, pos+2)
	if err != nil {
		return 0, err
	}
	if pos+2+int(length) > len(buf) {
		return 0, xserr.New(xserr.TruncatedStream, "codestream: %s payload overruns buffer", want)
	}
	return pos + 2 + int(length), nil
}
