package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"molsel/atomselect-go/pkg/checker"
	"molsel/atomselect-go/pkg/driver"
	"molsel/atomselect-go/pkg/interpreter"
	"molsel/atomselect-go/pkg/molecule"
	"molsel/atomselect-go/pkg/parser"
)

var log = logrus.New()

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "atomsel",
		Usage: "parse and evaluate atom-selection expressions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse a selection and print its AST as JSON",
				ArgsUsage: "<selection>",
				Action: func(c *cli.Context) error {
					return runParse(c.Args().First(), out)
				},
			},
			{
				Name:      "eval",
				Usage:     "evaluate a selection against a molecule snapshot",
				ArgsUsage: "<selection>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "mol",
						Usage:    "path to a YAML molecule snapshot",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "frame",
						Usage: "coordinate frame to evaluate against",
						Value: -1,
					},
				},
				Action: func(c *cli.Context) error {
					return runEval(c.String("mol"), c.Args().First(), c.Int("frame"), out)
				},
			},
			{
				Name:      "batch",
				Usage:     "evaluate every selection in a YAML batch manifest",
				ArgsUsage: "<manifest>",
				Action: func(c *cli.Context) error {
					return runBatch(c.Args().First(), out)
				},
			},
		},
	}
}

func runParse(selection string, out io.Writer) error {
	if strings.TrimSpace(selection) == "" {
		return fmt.Errorf("no selection given")
	}
	tree, err := parser.Parse(selection)
	if err != nil {
		return err
	}
	if diags := checker.Check(tree); len(diags) > 0 {
		for _, d := range diags {
			log.Warn(d.Message)
		}
		return fmt.Errorf("selection has %d problem(s)", len(diags))
	}
	encoded, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}

func runEval(molPath, selection string, frame int, out io.Writer) error {
	if strings.TrimSpace(selection) == "" {
		return fmt.Errorf("no selection given")
	}
	mol, err := molecule.LoadSnapshot(molPath)
	if err != nil {
		return err
	}
	if frame >= 0 {
		if frame >= mol.NumFrames() {
			return fmt.Errorf("frame %d out of range, snapshot has %d", frame, mol.NumFrames())
		}
		mol.Frame = frame
	}
	log.WithFields(logrus.Fields{
		"atoms":  mol.NumAtoms(),
		"frames": mol.NumFrames(),
		"bonds":  len(mol.Bonds),
	}).Debug("loaded snapshot")

	analysis := molecule.Analyze(mol, mol.Bonds)
	mask, err := interpreter.Select(mol, analysis, selection)
	if err != nil {
		return err
	}
	var selected []int
	for i, in := range mask {
		if in {
			selected = append(selected, i)
		}
	}
	fmt.Fprintf(out, "%d of %d atoms selected\n", len(selected), len(mask))
	if len(selected) > 0 {
		parts := make([]string, len(selected))
		for i, idx := range selected {
			parts[i] = fmt.Sprint(idx)
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
	}
	return nil
}

func runBatch(manifestPath string, out io.Writer) error {
	if strings.TrimSpace(manifestPath) == "" {
		return fmt.Errorf("no manifest given")
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"molecule":   manifest.Molecule,
		"selections": len(manifest.Selections()),
	}).Debug("loaded batch manifest")

	results, err := manifest.Run()
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s: %d of %d atoms (%s)\n", r.Name, r.Count, len(r.Mask), r.Selection)
	}
	return nil
}
