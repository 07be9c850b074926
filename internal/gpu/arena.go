package gpu

import (
	"encoding/binary"
	"math"
)

// Region is a byte range inside a TransferArena.
type Region struct {
	Offset int
	Size   int
}

// TransferArena packs upload data into one contiguous little-endian byte
// slice. Appends are aligned to the requested boundary.
type TransferArena struct {
	data []byte
}

func NewTransferArena(capacity int) *TransferArena {
	return &TransferArena{data: make([]byte, 0, capacity)}
}

func (a *TransferArena) align(to int) {
	if to <= 1 {
		return
	}
	for len(a.data)%to != 0 {
		a.data = append(a.data, 0)
	}
}

// AppendFloat32s appends v at a 4-byte boundary.
func (a *TransferArena) AppendFloat32s(v []float32) Region {
	a.align(4)
	r := Region{Offset: len(a.data), Size: len(v) * 4}
	var tmp [4]byte
	for _, f := range v {
		binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(f))
		a.data = append(a.data, tmp[:]...)
	}
	return r
}

// AppendUint16s appends v at a 2-byte boundary.
func (a *TransferArena) AppendUint16s(v []uint16) Region {
	a.align(2)
	r := Region{Offset: len(a.data), Size: len(v) * 2}
	var tmp [2]byte
	for _, u := range v {
		binary.LittleEndian.PutUint16(tmp[:], u)
		a.data = append(a.data, tmp[:]...)
	}
	return r
}

// Bytes returns the bytes of r.
func (a *TransferArena) Bytes(r Region) []byte {
	return a.data[r.Offset : r.Offset+r.Size]
}

func (a *TransferArena) Len() int { return len(a.data) }

// Reset empties the arena, keeping its storage.
func (a *TransferArena) Reset() { a.data = a.data[:0] }

// PackMesh lays out vertex data followed immediately by index data.
func PackMesh(a *TransferArena, vertices []float32, indices []uint16) (vtx, idx Region) {
	vtx = a.AppendFloat32s(vertices)
	idx = a.AppendUint16s(indices)
	return vtx, idx
}
