package molecule

// Analysis is the precomputed structural classification of one molecule:
// boolean masks for the molecule-class keywords plus the fragment and
// sequential-residue numberings. It is computed once per (molecule, bonds)
// pair and treated as immutable for any number of selection evaluations.
type Analysis struct {
	Protein   []bool
	Nucleic   []bool
	Lipids    []bool
	Ions      []bool
	Waters    []bool
	ProteinBB []bool
	NucleicBB []bool
	Sidechain []bool

	// Fragments labels connected components of the bond graph.
	Fragments []int
	// Residues is a 0-based sequential residue numbering, distinct from the
	// raw resid column which may repeat or jump.
	Residues []int
}

var proteinResnames = tableOf(
	"ALA", "ARG", "ASN", "ASP", "CYS", "GLN", "GLU", "GLY", "HIS", "ILE",
	"LEU", "LYS", "MET", "PHE", "PRO", "SER", "THR", "TRP", "TYR", "VAL",
	"HSD", "HSE", "HSP", "HID", "HIE", "HIP", "CYX", "CYM", "ASH", "GLH",
	"LYN", "MSE", "ACE", "NME", "NMA",
)

var nucleicResnames = tableOf(
	"A", "C", "G", "U", "T", "DA", "DC", "DG", "DT", "DU",
	"ADE", "CYT", "GUA", "THY", "URA",
	"DA3", "DA5", "DC3", "DC5", "DG3", "DG5", "DT3", "DT5",
	"RA", "RC", "RG", "RU",
)

var waterResnames = tableOf(
	"HOH", "WAT", "H2O", "SOL", "TIP", "TIP2", "TIP3", "TIP4", "TIP5", "SPC", "SPCE",
)

var lipidResnames = tableOf(
	"POPC", "POPE", "POPS", "POPG", "DPPC", "DMPC", "DOPC", "DOPE", "DOPS",
	"DLPC", "DLPE", "PSM", "CHL1", "CHOL", "ERG", "PALM", "OLEO", "SDPC",
)

var ionResnames = tableOf(
	"NA", "CL", "K", "MG", "ZN", "MN", "FE", "CU", "NI", "CD", "CO", "BR",
	"IOD", "CS", "LIT", "RUB", "BAR", "SOD", "CLA", "POT", "CAL", "CES",
	"CA2", "NA+", "CL-", "K+",
)

var proteinBackboneNames = tableOf("N", "CA", "C", "O", "OXT", "OT1", "OT2")

var nucleicBackboneNames = tableOf(
	"P", "OP1", "OP2", "O1P", "O2P",
	"O5'", "C5'", "C4'", "C3'", "O3'", "O4'", "C2'", "C1'", "O2'",
	"O5*", "C5*", "C4*", "C3*", "O3*", "O4*", "C2*", "C1*", "O2*",
)

func tableOf(names ...string) map[string]struct{} {
	t := make(map[string]struct{}, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Analyze classifies every atom of mol using the given bond list. The result
// fulfils the Analysis contract the evaluator depends on; classification is
// by residue-name table plus backbone atom names, fragments by connected
// components, sequential residues by consecutive runs of
// (resid, insertion, chain, segid).
func Analyze(mol *Molecule, bonds [][2]int) *Analysis {
	n := mol.NumAtoms()
	a := &Analysis{
		Protein:   make([]bool, n),
		Nucleic:   make([]bool, n),
		Lipids:    make([]bool, n),
		Ions:      make([]bool, n),
		Waters:    make([]bool, n),
		ProteinBB: make([]bool, n),
		NucleicBB: make([]bool, n),
		Sidechain: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		resname := mol.Resname[i]
		if _, ok := proteinResnames[resname]; ok {
			a.Protein[i] = true
			if _, bb := proteinBackboneNames[mol.Name[i]]; bb {
				a.ProteinBB[i] = true
			} else {
				a.Sidechain[i] = true
			}
		}
		if _, ok := nucleicResnames[resname]; ok {
			a.Nucleic[i] = true
			if _, bb := nucleicBackboneNames[mol.Name[i]]; bb {
				a.NucleicBB[i] = true
			}
		}
		if _, ok := waterResnames[resname]; ok {
			a.Waters[i] = true
		}
		if _, ok := lipidResnames[resname]; ok {
			a.Lipids[i] = true
		}
		if _, ok := ionResnames[resname]; ok {
			a.Ions[i] = true
		}
	}
	a.Fragments = labelFragments(n, bonds)
	a.Residues = labelResidues(mol)
	return a
}

// labelFragments assigns each connected component of the bond graph a
// 0-based id, in order of lowest member atom index. Unbonded atoms form
// singleton fragments.
func labelFragments(n int, bonds [][2]int) []int {
	adj := make([][]int, n)
	for _, b := range bonds {
		adj[b[0]] = append(adj[b[0]], b[1])
		adj[b[1]] = append(adj[b[1]], b[0])
	}
	frag := make([]int, n)
	for i := range frag {
		frag[i] = -1
	}
	next := 0
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if frag[i] >= 0 {
			continue
		}
		frag[i] = next
		queue = append(queue[:0], i)
		for len(queue) > 0 {
			at := queue[0]
			queue = queue[1:]
			for _, nb := range adj[at] {
				if frag[nb] < 0 {
					frag[nb] = next
					queue = append(queue, nb)
				}
			}
		}
		next++
	}
	return frag
}

// labelResidues numbers runs of consecutive atoms sharing the same
// (resid, insertion, chain, segid) tuple sequentially from 0.
func labelResidues(mol *Molecule) []int {
	n := mol.NumAtoms()
	out := make([]int, n)
	if n == 0 {
		return out
	}
	current := 0
	for i := 1; i < n; i++ {
		if mol.Resid[i] != mol.Resid[i-1] ||
			mol.Insertion[i] != mol.Insertion[i-1] ||
			mol.Chain[i] != mol.Chain[i-1] ||
			mol.Segid[i] != mol.Segid[i-1] {
			current++
		}
		out[i] = current
	}
	return out
}
