package cli

import (
	"github.com/spf13/cobra"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/domain/molecule"
)

// templateNames lists the seed templates in menu order.
var templateNames = []string{
	"methane", "ethane", "propane", "butane",
	"pentane", "hexane", "heptane", "octane",
	"ethene", "acetylene", "isobutane", "benzene",
	"ethanol", "acetic-acid",
}

// templateListing is the PrintResult payload for `template list`.
type templateListing struct {
	Templates []templateEntry `json:"templates"`
}

type templateEntry struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
	Atoms   int    `json:"atoms"`
	Bonds   int    `json:"bonds"`
}

func (l templateListing) TableHeaders() []string {
	return []string{"NAME", "FORMULA", "ATOMS", "BONDS"}
}

func (l templateListing) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Templates))
	for _, t := range l.Templates {
		rows = append(rows, []string{t.Name, t.Formula, itoa(t.Atoms), itoa(t.Bonds)})
	}
	return rows
}

// NewTemplateCmd creates the template command group.
func NewTemplateCmd() *cobra.Command {
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Browse the built-in molecule templates",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available seed templates",
		RunE:  runTemplateList,
	}

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the derived properties of a template",
		Args:  cobra.ExactArgs(1),
		RunE:  runTemplateShow,
	}

	templateCmd.AddCommand(listCmd, showCmd)
	return templateCmd
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	listing := templateListing{}
	for _, name := range templateNames {
		g, err := molecule.TemplateByName(name)
		if err != nil {
			return err
		}
		listing.Templates = append(listing.Templates, templateEntry{
			Name:    name,
			Formula: molecule.Formula(g),
			Atoms:   g.NumAtoms(),
			Bonds:   g.NumBonds(),
		})
	}
	return PrintResult(cmd, listing)
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	svc, err := offlineService(cmd)
	if err != nil {
		return err
	}

	g, err := svc.NewDraft(args[0])
	if err != nil {
		return err
	}
	desc, err := svc.Describe(cmd.Context(), g)
	if err != nil {
		return err
	}
	return PrintResult(cmd, descriptionView(args[0], g, desc))
}
