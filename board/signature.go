// SPDX-License-Identifier: MIT
// Package: relocate/board
//
// signature.go - canonical snapshot of a board used as a memo key.
//
// Layout: one byte per position in flat order; 0 for a free position,
// (class+1)<<3 | state otherwise. Two boards over the same Topology have
// equal signatures iff every position holds the same class in the same state.
// The arrival marker is not part of the signature: only the last mover can be
// Active or Final, so the byte pattern already identifies it.

package board

import "github.com/katalvlaran/relocate/topology"

// Signature is a comparable snapshot, usable as a map key.
type Signature string

const stateBits = 3

// Signature returns the canonical snapshot of b.
func (b *Board) Signature() Signature {
	return Signature(b.AppendSignature(make([]byte, 0, len(b.cells))))
}

// AppendSignature appends the signature bytes of b to dst, so hot loops can
// reuse one buffer.
func (b *Board) AppendSignature(dst []byte) []byte {
	for id := 0; id < len(b.fill); id++ {
		off := b.topo.Offset(topology.SlotID(id))
		capacity := b.topo.Capacity(topology.SlotID(id))
		for i := 0; i < capacity; i++ {
			if i >= int(b.fill[id]) {
				dst = append(dst, 0)
				continue
			}
			t := b.cells[off+i]
			dst = append(dst, byte(t.Class+1)<<stateBits|byte(t.State))
		}
	}

	return dst
}
