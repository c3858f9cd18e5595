package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotYAML = `
frame: 0
atoms:
  serial: [1, 2, 3]
  name: [N, CA, C]
  element: [N, C, C]
  resname: [ALA, ALA, ALA]
  resid: [1, 1, 1]
  chain: [A, A, A]
  mass: [14, 12, 12]
coords:
  - [[0, 0, 0], [1.5, 0, 0], [3, 0, 0]]
bonds: [[0, 1], [1, 2]]
`

func TestDecodeSnapshot(t *testing.T) {
	mol, err := DecodeSnapshot([]byte(snapshotYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, mol.NumAtoms())
	assert.Equal(t, []string{"N", "CA", "C"}, mol.Name)
	assert.Equal(t, []int{1, 1, 1}, mol.Resid)
	assert.Equal(t, 1.5, mol.Coords[0][1][0])
	assert.Len(t, mol.Bonds, 2)

	// Omitted columns default to zero values of the right length.
	assert.Equal(t, []string{"", "", ""}, mol.Segid)
	assert.Equal(t, []float64{0, 0, 0}, mol.Beta)
}

func TestDecodeSnapshotWithoutCoordsGetsOneZeroFrame(t *testing.T) {
	mol, err := DecodeSnapshot([]byte("atoms:\n  name: [O, H1, H2]\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, mol.NumFrames())
	assert.Equal(t, [3]float64{0, 0, 0}, mol.FrameCoords()[2])
	assert.Equal(t, []int{1, 2, 3}, mol.Serial, "serial defaults to 1-based numbering")
}

func TestDecodeSnapshotRejectsEmpty(t *testing.T) {
	_, err := DecodeSnapshot([]byte("frame: 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no atoms")
}

func TestDecodeSnapshotRejectsMismatchedColumns(t *testing.T) {
	_, err := DecodeSnapshot([]byte("atoms:\n  name: [N, CA]\n  resid: [1]\n"))
	require.Error(t, err)
}

func TestDecodeSnapshotRejectsBadYAML(t *testing.T) {
	_, err := DecodeSnapshot([]byte("atoms: ["))
	require.Error(t, err)
}
