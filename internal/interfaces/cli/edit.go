package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/application/compound"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/mutation"
	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/errors"
)

var (
	editTemplate  string
	editOpsPath   string
	editShowAtoms bool
)

// editStep is one structural edit in an --ops script. Atoms are addressed by
// their positional index in the current graph (see `template show`), not by
// opaque id, so scripts stay writable by hand.
type editStep struct {
	Op          string `json:"op"`
	Target      int    `json:"target"`
	Other       int    `json:"other,omitempty"`
	Order       int    `json:"order,omitempty"`
	Substituent string `json:"substituent,omitempty"`
}

// NewEditCmd creates the edit command.
func NewEditCmd() *cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply a script of structural edits to a template",
		Long: `Seed a graph from a template, apply a JSON script of edit operations, and
print the derived properties. The script is a JSON array of steps:

  [
    {"op": "extend_chain", "target": 0},
    {"op": "attach_substituent", "target": 1, "substituent": "hydroxyl"},
    {"op": "unsaturate_bond", "target": 0, "other": 1}
  ]

Atoms are addressed by index in the current graph; indexes may shift after
steps that add or remove atoms.`,
		RunE: runEdit,
	}

	editCmd.Flags().StringVar(&editTemplate, "template", "methane", "seed template name")
	editCmd.Flags().StringVar(&editOpsPath, "ops", "", "path to the JSON edit script (\"-\" for stdin)")
	editCmd.Flags().BoolVar(&editShowAtoms, "show-atoms", false, "include the atom index listing in the output")

	return editCmd
}

func runEdit(cmd *cobra.Command, _ []string) error {
	svc, err := offlineService(cmd)
	if err != nil {
		return err
	}

	g, err := svc.NewDraft(editTemplate)
	if err != nil {
		return err
	}

	if editOpsPath != "" {
		steps, err := readEditScript(cmd, editOpsPath)
		if err != nil {
			return err
		}
		for i, step := range steps {
			req, err := resolveStep(g, step)
			if err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
			}
			res := svc.Apply(cmd.Context(), g, req)
			if !res.Ok() {
				return fmt.Errorf("step %d (%s) rejected: %w", i+1, step.Op, res.Err)
			}
			g = res.Graph
		}
	}

	desc, err := svc.Describe(cmd.Context(), g)
	if err != nil {
		return err
	}

	view := descriptionView("", g, desc)
	if !editShowAtoms {
		view.Atoms = nil
	}
	return PrintResult(cmd, view)
}

func readEditScript(cmd *cobra.Command, path string) ([]editStep, error) {
	var reader io.Reader
	if path == "-" {
		reader = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open edit script: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var steps []editStep
	if err := json.NewDecoder(reader).Decode(&steps); err != nil {
		return nil, fmt.Errorf("failed to parse edit script: %w", err)
	}
	return steps, nil
}

// resolveStep translates positional atom indexes into the graph's atom ids.
func resolveStep(g molecule.MoleculeGraph, step editStep) (compound.EditRequest, error) {
	ids := g.AtomIDs()
	resolve := func(index int) (molecule.AtomID, error) {
		if index < 0 || index >= len(ids) {
			return "", errors.Newf(errors.ErrCodeBadRequest,
				"atom index %d out of range [0, %d)", index, len(ids))
		}
		return ids[index], nil
	}

	req := compound.EditRequest{
		Op:          compound.Op(step.Op),
		Order:       step.Order,
		Substituent: mutation.SubstituentKind(step.Substituent),
	}

	target, err := resolve(step.Target)
	if err != nil {
		return compound.EditRequest{}, err
	}
	req.Target = target

	switch req.Op {
	case compound.OpCyclize, compound.OpChangeBondOrder,
		compound.OpUnsaturateBond, compound.OpSaturateBond:
		other, err := resolve(step.Other)
		if err != nil {
			return compound.EditRequest{}, err
		}
		req.Other = other
	}
	return req, nil
}
