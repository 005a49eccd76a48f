// Package connection implements component C: the dense bigram connection
// cost matrix the lattice's Viterbi decoder consults at every edge,
// grounded on original_source/engine/include/engine.h's LexConnectionMatrix
// (fixed dimensions at open, a sentinel cost for any pair outside them).
package connection

import (
	"encoding/binary"
	"io"

	"kanaime/kerr"
)

// Matrix is a dense dim×dim table of int16 connection costs indexed by
// (previous segment's RightID, current segment's LeftID).
type Matrix struct {
	dim     int
	buf     []int16
	penalty int16
}

// Cost returns the bigram cost for the (prevRight, curLeft) class pair, or
// m.penalty if either ID falls outside [0, dim).
func (m *Matrix) Cost(prevRight, curLeft int16) int16 {
	if int(prevRight) < 0 || int(prevRight) >= m.dim || int(curLeft) < 0 || int(curLeft) >= m.dim {
		return m.penalty
	}
	return m.buf[int(prevRight)*m.dim+int(curLeft)]
}

// Dim reports the matrix's class-ID dimension.
func (m *Matrix) Dim() int { return m.dim }

// OpenFlat reads a packed little-endian int16 matrix from r: a 4-byte
// dimension header followed by dim*dim int16 entries, the private wire
// format spec.md §6 leaves to the implementation (no pack library models
// a bespoke binary matrix format, so this path is stdlib-only by design).
func OpenFlat(r io.Reader, penalty int16) (*Matrix, error) {
	var dim int32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, kerr.Wrap("connection.OpenFlat", kerr.IoCorrupted, err)
	}
	if dim <= 0 {
		return nil, kerr.New("connection.OpenFlat", kerr.InvalidArgument)
	}
	buf := make([]int16, int(dim)*int(dim))
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		return nil, kerr.Wrap("connection.OpenFlat", kerr.IoCorrupted, err)
	}
	return &Matrix{dim: int(dim), buf: buf, penalty: penalty}, nil
}

// WriteFlat serializes m in the format OpenFlat reads, for a caller that
// wants to persist an OpenFromKagome-derived matrix.
func (m *Matrix) WriteFlat(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int32(m.dim)); err != nil {
		return kerr.Wrap("connection.WriteFlat", kerr.IoCorrupted, err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.buf); err != nil {
		return kerr.Wrap("connection.WriteFlat", kerr.IoCorrupted, err)
	}
	return nil
}
