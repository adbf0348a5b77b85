package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gdsii/gdsii"
	"github.com/robert-malhotra/go-gdsii/internal/logging"
)

type headerReport struct {
	Path               string    `json:"path" yaml:"path"`
	Size               int64     `json:"size" yaml:"size"`
	Library            string    `json:"library" yaml:"library"`
	UserUnitsPerDBUnit float64   `json:"user_units_per_db_unit" yaml:"user_units_per_db_unit"`
	MetersPerDBUnit    float64   `json:"meters_per_db_unit" yaml:"meters_per_db_unit"`
	Modified           time.Time `json:"modified" yaml:"modified"`
	Accessed           time.Time `json:"accessed" yaml:"accessed"`
}

func newHeaderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "header FILE...",
		Short: "Print the library header",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := eachFile(cmd.Context(), a, args, func(ctx context.Context, path string) (headerReport, error) {
				f, err := openFile(ctx, path)
				if err != nil {
					return headerReport{}, err
				}
				defer f.Close()

				h := f.Header()
				return headerReport{
					Path:               path,
					Size:               f.Size(),
					Library:            h.Name,
					UserUnitsPerDBUnit: h.UserUnitsPerDBUnit,
					MetersPerDBUnit:    h.MetersPerDBUnit,
					Modified:           h.ModTime,
					Accessed:           h.AccTime,
				}, nil
			})
			if err != nil {
				return err
			}

			return a.emit(cmd.OutOrStdout(), reports, func(w io.Writer) error {
				s := a.styles
				for _, r := range reports {
					fmt.Fprintf(w, "%s %s\n", s.Path.Render(r.Path), s.Dim.Render("("+humanize.Bytes(uint64(r.Size))+")"))
					fmt.Fprintf(w, "  library:   %s\n", s.Name.Render(r.Library))
					fmt.Fprintf(w, "  units:     %g user, %g m per database unit\n", r.UserUnitsPerDBUnit, r.MetersPerDBUnit)
					fmt.Fprintf(w, "  modified:  %s\n", r.Modified.Format(time.DateTime))
					fmt.Fprintf(w, "  accessed:  %s\n", r.Accessed.Format(time.DateTime))
				}
				return nil
			})
		},
	}
}

// openFile opens a stream file with the logger carried by ctx.
func openFile(ctx context.Context, path string) (*gdsii.File, error) {
	_, logger := logging.With(ctx, logging.FieldPath, path)
	return gdsii.Open(path, gdsii.WithLogger(logger))
}
