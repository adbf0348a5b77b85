package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type refEntry struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type cellEntry struct {
	Name string     `json:"name" yaml:"name"`
	Refs []refEntry `json:"refs" yaml:"refs"`
}

type hierarchyReport struct {
	Path       string      `json:"path" yaml:"path"`
	Top        []string    `json:"top" yaml:"top"`
	Structures []cellEntry `json:"structures" yaml:"structures"`
}

func newHierarchyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hierarchy FILE...",
		Short: "Print direct reference counts per structure",
		Long: `Print, for every structure, how many instances of each other structure it
places directly. Array references count columns × rows instances.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := eachFile(cmd.Context(), a, args, func(ctx context.Context, path string) (hierarchyReport, error) {
				f, err := openFile(ctx, path)
				if err != nil {
					return hierarchyReport{}, err
				}
				defer f.Close()

				h, err := f.Hierarchy()
				if err != nil {
					return hierarchyReport{}, err
				}
				r := hierarchyReport{Path: path, Top: h.Top()}
				for _, name := range h.Names() {
					refs := h.Refs(name)
					cell := cellEntry{Name: name, Refs: []refEntry{}}
					for _, child := range sortedKeys(refs) {
						cell.Refs = append(cell.Refs, refEntry{Name: child, Count: refs[child]})
					}
					r.Structures = append(r.Structures, cell)
				}
				return r, nil
			})
			if err != nil {
				return err
			}

			return a.emit(cmd.OutOrStdout(), reports, func(w io.Writer) error {
				s := a.styles
				for _, r := range reports {
					fmt.Fprintln(w, s.Path.Render(r.Path))
					for _, cell := range r.Structures {
						fmt.Fprintf(w, "  %s\n", s.Name.Render(cell.Name))
						for _, ref := range cell.Refs {
							fmt.Fprintf(w, "    %s %s\n", ref.Name, s.Number.Render(fmt.Sprintf("x%d", ref.Count)))
						}
					}
					fmt.Fprintf(w, "  %s %v\n", s.Title.Render("top:"), r.Top)
				}
				return nil
			})
		},
	}
}
