package interpreter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"molsel/atomselect-go/pkg/molecule"
)

// selectionFixture is the decoded form of testdata/selections.yaml: one
// molecule snapshot plus a corpus of selections with either the expected
// selected atom indices or an expected error kind.
type selectionFixture struct {
	Molecule string          `mapstructure:"molecule"`
	Cases    []selectionCase `mapstructure:"cases"`
}

type selectionCase struct {
	Selection string `mapstructure:"selection"`
	Atoms     []int  `mapstructure:"atoms"`
	Error     string `mapstructure:"error"`
}

var errorKindsByName = map[string]ErrorKind{
	UnknownOperation.String():     UnknownOperation,
	UnknownKeyword.String():       UnknownKeyword,
	UnknownProperty.String():      UnknownProperty,
	InvalidGroupProperty.String(): InvalidGroupProperty,
	TypeMismatch.String():         TypeMismatch,
	NegativeSqrtArgument.String(): NegativeSqrtArgument,
	MalformedAST.String():         MalformedAST,
	ParseFailure.String():         ParseFailure,
}

func loadSelectionFixture(t *testing.T, path string) *selectionFixture {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	var fixture selectionFixture
	require.NoError(t, mapstructure.Decode(raw, &fixture))
	require.NotEmpty(t, fixture.Molecule, "fixture %s names no molecule", path)
	require.NotEmpty(t, fixture.Cases, "fixture %s has no cases", path)
	return &fixture
}

func TestSelectionCorpus(t *testing.T) {
	fixture := loadSelectionFixture(t, filepath.Join("testdata", "selections.yaml"))
	mol, err := molecule.LoadSnapshot(filepath.Join("testdata", fixture.Molecule))
	require.NoError(t, err)
	analysis := molecule.Analyze(mol, mol.Bonds)

	for _, c := range fixture.Cases {
		c := c
		t.Run(c.Selection, func(t *testing.T) {
			mask, err := Select(mol, analysis, c.Selection)
			if c.Error != "" {
				wantKind, ok := errorKindsByName[c.Error]
				require.Truef(t, ok, "fixture names unknown error kind %q", c.Error)
				require.Error(t, err)
				gotKind, ok := KindOf(err)
				require.Truef(t, ok, "expected an EvalError, got %T: %v", err, err)
				require.Equal(t, wantKind, gotKind, "error was: %v", err)
				return
			}
			require.NoError(t, err)
			var got []int
			for i, in := range mask {
				if in {
					got = append(got, i)
				}
			}
			if got == nil {
				got = []int{}
			}
			want := c.Atoms
			if want == nil {
				want = []int{}
			}
			require.Equal(t, want, got)
		})
	}
}
