package cli

import (
	"github.com/spf13/cobra"

	"github.com/Kitarpshakya/Reaction-hub-sub000/pkg/types/chem"
)

var (
	saveTemplate string
	saveOpsPath  string
	saveID       string
	saveName     string
	listPage     int
	listPageSize int
)

// moleculeListing is the PrintResult payload for `molecule list`.
type moleculeListing struct {
	Molecules []chem.MoleculeSummary `json:"molecules"`
	Total     int64                  `json:"total"`
	Page      int                    `json:"page"`
}

func (l moleculeListing) TableHeaders() []string {
	return []string{"ID", "NAME", "FORMULA", "SMILES", "UPDATED"}
}

func (l moleculeListing) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Molecules))
	for _, m := range l.Molecules {
		rows = append(rows, []string{
			m.ID, m.Name, m.Formula, m.SMILES,
			m.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rows
}

// NewMoleculeCmd creates the molecule persistence command group.
func NewMoleculeCmd() *cobra.Command {
	moleculeCmd := &cobra.Command{
		Use:   "molecule",
		Short: "Save, load, and list stored molecules",
	}

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Build a molecule from a template plus an optional edit script and store it",
		RunE:  runMoleculeSave,
	}
	saveCmd.Flags().StringVar(&saveTemplate, "template", "methane", "seed template name")
	saveCmd.Flags().StringVar(&saveOpsPath, "ops", "", "path to a JSON edit script applied before saving")
	saveCmd.Flags().StringVar(&saveID, "id", "", "molecule id to overwrite (default: create new)")
	saveCmd.Flags().StringVar(&saveName, "name", "", "display name for the stored molecule")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Load a stored molecule and print its derived properties",
		Args:  cobra.ExactArgs(1),
		RunE:  runMoleculeGet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored molecules",
		RunE:  runMoleculeList,
	}
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 20, "molecules per page")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored molecule",
		Args:  cobra.ExactArgs(1),
		RunE:  runMoleculeDelete,
	}

	isomersCmd := &cobra.Command{
		Use:   "isomers <formula>",
		Short: "List stored molecules sharing a molecular formula",
		Args:  cobra.ExactArgs(1),
		RunE:  runMoleculeIsomers,
	}

	moleculeCmd.AddCommand(saveCmd, getCmd, listCmd, deleteCmd, isomersCmd)
	return moleculeCmd
}

func runMoleculeSave(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := engineService(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := svc.NewDraft(saveTemplate)
	if err != nil {
		return err
	}

	if saveOpsPath != "" {
		steps, err := readEditScript(cmd, saveOpsPath)
		if err != nil {
			return err
		}
		for _, step := range steps {
			req, err := resolveStep(g, step)
			if err != nil {
				return err
			}
			res := svc.Apply(ctx, g, req)
			if !res.Ok() {
				return res.Err
			}
			g = res.Graph
		}
	}

	name := saveName
	if name == "" {
		name = saveTemplate
	}
	doc, err := svc.Save(ctx, saveID, name, g)
	if err != nil {
		return err
	}

	PrintSuccess(cmd, "saved molecule "+doc.ID+" ("+doc.Formula+")")
	return nil
}

func runMoleculeGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := engineService(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	g, doc, err := svc.Load(ctx, args[0])
	if err != nil {
		return err
	}
	desc, err := svc.Describe(ctx, g)
	if err != nil {
		return err
	}
	return PrintResult(cmd, descriptionView(doc.Name, g, desc))
}

func runMoleculeList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := engineService(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	summaries, total, err := svc.List(ctx, listPage, listPageSize)
	if err != nil {
		return err
	}
	return PrintResult(cmd, moleculeListing{
		Molecules: summaries,
		Total:     total,
		Page:      listPage,
	})
}

func runMoleculeDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := engineService(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.Delete(ctx, args[0]); err != nil {
		return err
	}
	PrintSuccess(cmd, "deleted molecule "+args[0])
	return nil
}

func runMoleculeIsomers(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := engineService(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := svc.FindByFormula(ctx, args[0])
	if err != nil {
		return err
	}

	listing := moleculeListing{Total: int64(len(docs)), Page: 1}
	for _, doc := range docs {
		listing.Molecules = append(listing.Molecules, chem.MoleculeSummary{
			ID:        doc.ID,
			Name:      doc.Name,
			Formula:   doc.Formula,
			SMILES:    doc.SMILES,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return PrintResult(cmd, listing)
}
