package molecule

import "fmt"

// Molecule holds the per-atom columns of one structure plus its coordinate
// frames. All columns share the same length and index correspondence; the
// selection engine only ever reads them.
type Molecule struct {
	Serial    []int
	Name      []string
	Element   []string
	Resname   []string
	Resid     []int
	Insertion []string
	Chain     []string
	Segid     []string
	Altloc    []string
	Mass      []float64
	Beta      []float64
	Charge    []float64

	// Coords holds one x/y/z triple per atom per frame; Frame selects the
	// active frame.
	Coords [][][3]float64
	Frame  int

	// Bonds lists bonded atom-index pairs, used by Analyze to label
	// fragments.
	Bonds [][2]int
}

// NumAtoms returns the atom count N shared by every column.
func (m *Molecule) NumAtoms() int { return len(m.Serial) }

// NumFrames returns the number of coordinate frames.
func (m *Molecule) NumFrames() int { return len(m.Coords) }

// FrameCoords returns the coordinates of the active frame.
func (m *Molecule) FrameCoords() [][3]float64 {
	return m.Coords[m.Frame]
}

// Axis returns a fresh copy of one spatial axis (0=x, 1=y, 2=z) at the
// active frame.
func (m *Molecule) Axis(axis int) []float64 {
	frame := m.FrameCoords()
	out := make([]float64, len(frame))
	for i := range frame {
		out[i] = frame[i][axis]
	}
	return out
}

// Validate checks the column-length invariant and frame bounds.
func (m *Molecule) Validate() error {
	n := m.NumAtoms()
	cols := map[string]int{
		"name":      len(m.Name),
		"element":   len(m.Element),
		"resname":   len(m.Resname),
		"resid":     len(m.Resid),
		"insertion": len(m.Insertion),
		"chain":     len(m.Chain),
		"segid":     len(m.Segid),
		"altloc":    len(m.Altloc),
		"mass":      len(m.Mass),
		"beta":      len(m.Beta),
		"charge":    len(m.Charge),
	}
	for col, l := range cols {
		if l != n {
			return fmt.Errorf("column %s has length %d, expected %d", col, l, n)
		}
	}
	if len(m.Coords) == 0 {
		return fmt.Errorf("molecule has no coordinate frames")
	}
	for f, frame := range m.Coords {
		if len(frame) != n {
			return fmt.Errorf("frame %d has %d coordinates, expected %d", f, len(frame), n)
		}
	}
	if m.Frame < 0 || m.Frame >= len(m.Coords) {
		return fmt.Errorf("active frame %d out of range [0, %d)", m.Frame, len(m.Coords))
	}
	for _, b := range m.Bonds {
		if b[0] < 0 || b[0] >= n || b[1] < 0 || b[1] >= n {
			return fmt.Errorf("bond %v references an atom out of range [0, %d)", b, n)
		}
	}
	return nil
}
