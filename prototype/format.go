package prototype

import (
	"bytes"
	"encoding/binary"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const (
	rawMagic      = "SAPB"
	rawVersion    = 1
	rawHeaderSize = 16

	npyMagic = "\x93NUMPY"
)

var (
	npyDescr   = regexp.MustCompile(`'descr':\s*'([^']*)'`)
	npyFortran = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	npyShape   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

// Encode serializes m into the raw float32 format.
//
// Layout (little-endian):
//
//	magic "SAPB" | version uint32 | rows uint32 | cols uint32 | rows*cols float32
func Encode(m mat.Matrix) []byte {
	r, c := m.Dims()
	buf := make([]byte, rawHeaderSize+4*r*c)
	copy(buf, rawMagic)
	binary.LittleEndian.PutUint32(buf[4:], rawVersion)
	binary.LittleEndian.PutUint32(buf[8:], uint32(r))
	binary.LittleEndian.PutUint32(buf[12:], uint32(c))
	off := rawHeaderSize
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(m.At(i, j))))
			off += 4
		}
	}
	return buf
}

// EncodeNPY serializes m as a version 1.0 .npy file of little-endian float32.
func EncodeNPY(m mat.Matrix) []byte {
	r, c := m.Dims()
	header := "{'descr': '<f4', 'fortran_order': False, 'shape': (" +
		strconv.Itoa(r) + ", " + strconv.Itoa(c) + "), }"
	// Magic, version and length take 10 bytes; the header ends in '\n' and
	// the payload starts on a 64-byte boundary.
	pad := 64 - (10+len(header)+1)%64
	if pad == 64 {
		pad = 0
	}
	header += strings.Repeat(" ", pad) + "\n"

	var buf bytes.Buffer
	buf.Grow(10 + len(header) + 4*r*c)
	buf.WriteString(npyMagic)
	buf.Write([]byte{1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	var word [4]byte
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			binary.LittleEndian.PutUint32(word[:], math.Float32bits(float32(m.At(i, j))))
			buf.Write(word[:])
		}
	}
	return buf.Bytes()
}

// Decode parses raw or .npy bank data, detected by its magic bytes.
// Rows are returned as stored, without normalization.
func Decode(data []byte) (*mat.Dense, error) {
	switch {
	case bytes.HasPrefix(data, []byte(npyMagic)):
		return decodeNPY(data)
	case bytes.HasPrefix(data, []byte(rawMagic)):
		return decodeRaw(data)
	default:
		return nil, formatError("unrecognized magic")
	}
}

func decodeRaw(data []byte) (*mat.Dense, error) {
	if len(data) < rawHeaderSize {
		return nil, formatError("raw header truncated")
	}
	if v := binary.LittleEndian.Uint32(data[4:]); v != rawVersion {
		return nil, formatError("unsupported raw version %d", v)
	}
	r := int(binary.LittleEndian.Uint32(data[8:]))
	c := int(binary.LittleEndian.Uint32(data[12:]))
	if r == 0 || c == 0 {
		return nil, ErrEmptyBank
	}
	payload := data[rawHeaderSize:]
	if err := checkPayload("raw", payload, r, c, 4); err != nil {
		return nil, err
	}
	return mat.NewDense(r, c, decodeFloat32(payload)), nil
}

func decodeNPY(data []byte) (*mat.Dense, error) {
	if len(data) < 10 {
		return nil, formatError("npy header truncated")
	}
	var headerLen, start int
	switch major := data[6]; major {
	case 1:
		headerLen = int(binary.LittleEndian.Uint16(data[8:]))
		start = 10
	case 2, 3:
		if len(data) < 12 {
			return nil, formatError("npy header truncated")
		}
		headerLen = int(binary.LittleEndian.Uint32(data[8:]))
		start = 12
	default:
		return nil, formatError("unsupported npy version %d", major)
	}
	if len(data) < start+headerLen {
		return nil, formatError("npy header truncated")
	}
	header := string(data[start : start+headerLen])
	payload := data[start+headerLen:]

	descr := npyDescr.FindStringSubmatch(header)
	if descr == nil {
		return nil, formatError("npy header missing descr")
	}
	if m := npyFortran.FindStringSubmatch(header); m == nil || m[1] != "False" {
		return nil, formatError("npy data must be C order")
	}
	shape := npyShape.FindStringSubmatch(header)
	if shape == nil {
		return nil, formatError("npy header missing shape")
	}
	dims, err := parseShape(shape[1])
	if err != nil {
		return nil, err
	}
	if len(dims) != 2 {
		return nil, formatError("npy array has %d dimensions, want 2", len(dims))
	}
	r, c := dims[0], dims[1]
	if r == 0 || c == 0 {
		return nil, ErrEmptyBank
	}

	var values []float64
	switch descr[1] {
	case "<f4":
		if err := checkPayload("npy", payload, r, c, 4); err != nil {
			return nil, err
		}
		values = decodeFloat32(payload)
	case "<f8":
		if err := checkPayload("npy", payload, r, c, 8); err != nil {
			return nil, err
		}
		values = make([]float64, r*c)
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[8*i:]))
		}
	default:
		return nil, formatError("unsupported npy dtype %q", descr[1])
	}
	return mat.NewDense(r, c, values), nil
}

// checkPayload reports whether payload holds exactly r·c elements of elem
// bytes. The shape is bounded by the payload before multiplying.
func checkPayload(kind string, payload []byte, r, c, elem int) error {
	if c > len(payload)/elem || r > len(payload)/(elem*c) || len(payload) != elem*r*c {
		return formatError("%s payload is %d bytes, too short or long for shape (%d, %d)", kind, len(payload), r, c)
	}
	return nil
}

func parseShape(s string) ([]int, error) {
	var dims []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, formatError("invalid npy shape %q", s)
		}
		dims = append(dims, n)
	}
	return dims, nil
}

func decodeFloat32(payload []byte) []float64 {
	out := make([]float64, len(payload)/4)
	for i := range out {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:])))
	}
	return out
}
