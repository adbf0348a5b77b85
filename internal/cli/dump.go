package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gdsii/gdsii"
	"github.com/robert-malhotra/go-gdsii/internal/logging"
)

type elementReport struct {
	Kind       string `json:"kind" yaml:"kind"`
	Layer      int16  `json:"layer" yaml:"layer"`
	Type       int16  `json:"type" yaml:"type"`
	Points     int    `json:"points" yaml:"points"`
	Ref        string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Instances  int    `json:"instances,omitempty" yaml:"instances,omitempty"`
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
	Properties int    `json:"properties,omitempty" yaml:"properties,omitempty"`
}

type dumpReport struct {
	Path      string          `json:"path" yaml:"path"`
	Structure string          `json:"structure" yaml:"structure"`
	Created   time.Time       `json:"created" yaml:"created"`
	Modified  time.Time       `json:"modified" yaml:"modified"`
	Elements  []elementReport `json:"elements" yaml:"elements"`
}

func newDumpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE STRUCTURE",
		Short: "Summarize the elements of one structure",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			st, err := f.ReadStruct(args[1])
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug("read structure",
				logging.FieldPath, args[0],
				logging.FieldStructure, st.Name,
				logging.FieldElements, len(st.Elements),
			)

			r := dumpReport{
				Path:      args[0],
				Structure: st.Name,
				Created:   st.CreationTime,
				Modified:  st.ModTime,
				Elements:  make([]elementReport, 0, len(st.Elements)),
			}
			for _, e := range st.Elements {
				r.Elements = append(r.Elements, summarize(e))
			}

			return a.emit(cmd.OutOrStdout(), r, func(w io.Writer) error {
				s := a.styles
				fmt.Fprintf(w, "%s %s\n", s.Name.Render(r.Structure),
					s.Dim.Render(fmt.Sprintf("(%d elements)", len(r.Elements))))
				for i, e := range r.Elements {
					fmt.Fprintf(w, "  %3d %s", i, s.Kind.Render(fmt.Sprintf("%-9s", e.Kind)))
					switch {
					case e.Ref != "":
						fmt.Fprintf(w, " %s %s", e.Ref, s.Number.Render(fmt.Sprintf("x%d", e.Instances)))
					case e.Kind == gdsii.KindText.String():
						fmt.Fprintf(w, " %d/%d %q", e.Layer, e.Type, e.Text)
					default:
						fmt.Fprintf(w, " %d/%d %d points", e.Layer, e.Type, e.Points)
					}
					if e.Properties > 0 {
						fmt.Fprintf(w, " %s", s.Dim.Render(fmt.Sprintf("[%d properties]", e.Properties)))
					}
					fmt.Fprintln(w)
				}
				return nil
			})
		},
	}
}

func summarize(e gdsii.Element) elementReport {
	r := elementReport{
		Kind:       e.Kind().String(),
		Properties: len(gdsii.PropertiesOf(e)),
	}
	switch e := e.(type) {
	case *gdsii.Boundary:
		r.Layer, r.Type, r.Points = e.Layer, e.DataType, len(e.XY)
	case *gdsii.Path:
		r.Layer, r.Type, r.Points = e.Layer, e.DataType, len(e.XY)
	case *gdsii.Node:
		r.Layer, r.Type, r.Points = e.Layer, e.NodeType, len(e.XY)
	case *gdsii.Box:
		r.Layer, r.Type, r.Points = e.Layer, e.BoxType, len(e.XY)
	case *gdsii.Text:
		r.Layer, r.Type, r.Points, r.Text = e.Layer, e.TextType, 1, e.String
	case *gdsii.Reference:
		r.Points, r.Ref, r.Instances = len(e.XY), e.Name, e.Count()
	}
	return r
}
