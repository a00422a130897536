package glrender

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/soypat/geometry/ms3"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal, three vertices (12 float32) and a uint16 attribute count.
)

// WriteBinarySTL writes triangles to w in the binary STL format. Facet normals are
// computed from the counter-clockwise vertex order. It returns the number of bytes written.
func WriteBinarySTL(w io.Writer, triangles []ms3.Triangle) (int, error) {
	if uint64(len(triangles)) > math.MaxUint32 {
		return 0, errors.New("too many triangles for STL")
	}
	var header [stlHeaderSize + 4]byte
	copy(header[:], "glcity binary STL")
	binary.LittleEndian.PutUint32(header[stlHeaderSize:], uint32(len(triangles)))
	n, err := w.Write(header[:])
	if err != nil {
		return n, err
	}
	const batch = 256
	buf := make([]byte, 0, batch*stlTriangleSize)
	for i, t := range triangles {
		normal := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
		if normal != (ms3.Vec{}) {
			normal = ms3.Unit(normal)
		}
		buf = appendVec(buf, normal)
		buf = appendVec(buf, t[0])
		buf = appendVec(buf, t[1])
		buf = appendVec(buf, t[2])
		buf = binary.LittleEndian.AppendUint16(buf, 0)
		if len(buf) == cap(buf) || i == len(triangles)-1 {
			ngot, err := w.Write(buf)
			n += ngot
			if err != nil {
				return n, err
			}
			buf = buf[:0]
		}
	}
	return n, nil
}

func appendVec(b []byte, v ms3.Vec) []byte {
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.X))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Y))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Z))
	return b
}
