package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type structEntry struct {
	Name   string `json:"name" yaml:"name"`
	Offset int64  `json:"offset" yaml:"offset"`
}

type structsReport struct {
	Path       string        `json:"path" yaml:"path"`
	Library    string        `json:"library" yaml:"library"`
	Structures []structEntry `json:"structures" yaml:"structures"`
}

func newStructsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "structs FILE...",
		Short: "List structures with the offset of their element data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := eachFile(cmd.Context(), a, args, func(ctx context.Context, path string) (structsReport, error) {
				f, err := openFile(ctx, path)
				if err != nil {
					return structsReport{}, err
				}
				defer f.Close()

				ix, err := f.Index()
				if err != nil {
					return structsReport{}, err
				}
				r := structsReport{
					Path:       path,
					Library:    f.Header().Name,
					Structures: make([]structEntry, 0, ix.Len()),
				}
				for _, name := range ix.Names() {
					off, _ := ix.Offset(name)
					r.Structures = append(r.Structures, structEntry{Name: name, Offset: off})
				}
				return r, nil
			})
			if err != nil {
				return err
			}

			return a.emit(cmd.OutOrStdout(), reports, func(w io.Writer) error {
				s := a.styles
				for _, r := range reports {
					fmt.Fprintf(w, "%s %s\n", s.Path.Render(r.Path),
						s.Dim.Render(fmt.Sprintf("(%s, %d structures)", r.Library, len(r.Structures))))
					width := 0
					for _, e := range r.Structures {
						width = max(width, len(e.Name))
					}
					for _, e := range r.Structures {
						fmt.Fprintf(w, "  %s  %s\n",
							s.Name.Render(fmt.Sprintf("%-*s", width, e.Name)),
							s.Number.Render(humanize.Comma(e.Offset)))
					}
				}
				return nil
			})
		},
	}
}
