package scenario

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/topology"
)

// Fingerprint hashes the topology (slots, adjacency, classes) and the board
// signature of b. Equal fingerprints mean the same problem, whatever the
// scenario name or the order of placement keys.
func Fingerprint(b *board.Board) string {
	t := b.Topology()
	d := xxhash.New()
	var num [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(num[:], uint64(v))
		_, _ = d.Write(num[:])
	}
	writeStr := func(v string) {
		writeInt(int64(len(v)))
		_, _ = d.WriteString(v)
	}

	writeInt(int64(t.Len()))
	for _, s := range t.Slots() {
		writeStr(s.Name)
		writeInt(int64(s.Kind))
		writeInt(int64(s.Capacity))
		if s.End {
			writeInt(1)
		} else {
			writeInt(0)
		}
		for _, n := range t.Neighbors(s.ID) {
			writeInt(int64(n))
		}
		writeInt(-1)
	}
	writeInt(int64(t.Classes()))
	for c := 0; c < t.Classes(); c++ {
		cl := topology.Class(c)
		writeStr(t.ClassName(cl))
		writeInt(t.Weight(cl))
		writeInt(int64(t.Destination(cl)))
	}
	writeStr(string(b.Signature()))

	return fmt.Sprintf("%016x", d.Sum64())
}

// Fingerprint builds the scenario board and fingerprints it.
func (s *Scenario) Fingerprint() (string, error) {
	b, err := s.Board()
	if err != nil {
		return "", err
	}

	return Fingerprint(b), nil
}
