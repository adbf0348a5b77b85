package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gdsii/gdsii"
)

type treeNode struct {
	Depth     int    `json:"depth" yaml:"depth"`
	Name      string `json:"name" yaml:"name"`
	Instances int    `json:"instances" yaml:"instances"`
	Undefined bool   `json:"undefined,omitempty" yaml:"undefined,omitempty"`
}

type treeFlags struct {
	top      string
	maxDepth int
	flat     bool
}

func newTreeCommand(a *app) *cobra.Command {
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the structure hierarchy as a tree",
		Long: `Print the structure hierarchy depth first from every top cell, or from the
cell given with --top. Each line shows the number of placements of the cell
under its top cell. With --flat, print total instance counts instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxDepth := a.cfg.MaxDepth
			if cmd.Flags().Changed("max-depth") {
				maxDepth = flags.maxDepth
			}

			f, err := openFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			h, err := f.Hierarchy()
			if err != nil {
				return err
			}

			if flags.flat {
				return a.printFlat(cmd.OutOrStdout(), h, flags.top)
			}

			var nodes []treeNode
			visit := func(v gdsii.Visit) error {
				if maxDepth > 0 && v.Depth() > maxDepth {
					return nil
				}
				nodes = append(nodes, treeNode{
					Depth:     v.Depth(),
					Name:      v.Name,
					Instances: v.Instances,
					Undefined: v.Undefined,
				})
				return nil
			}
			if flags.top != "" {
				err = gdsii.WalkFrom(h, flags.top, visit)
			} else {
				err = gdsii.Walk(h, visit)
			}
			if err != nil {
				return err
			}

			return a.emit(cmd.OutOrStdout(), nodes, func(w io.Writer) error {
				s := a.styles
				for _, n := range nodes {
					line := strings.Repeat("  ", n.Depth) + s.Name.Render(n.Name)
					if n.Depth > 0 {
						line += " " + s.Number.Render(fmt.Sprintf("x%d", n.Instances))
					}
					if n.Undefined {
						line += " " + s.Warn.Render("(undefined)")
					}
					fmt.Fprintln(w, line)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.top, "top", "", "start from this structure instead of the top cells")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "do not print below this depth (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "print total instance counts per structure")

	return cmd
}

type flatEntry struct {
	Top       string         `json:"top" yaml:"top"`
	Instances map[string]int `json:"instances" yaml:"instances"`
}

func (a *app) printFlat(w io.Writer, h *gdsii.Hierarchy, top string) error {
	tops := h.Top()
	if top != "" {
		tops = []string{top}
	}

	entries := make([]flatEntry, 0, len(tops))
	for _, t := range tops {
		totals, err := gdsii.Flatten(h, t)
		if err != nil {
			return err
		}
		entries = append(entries, flatEntry{Top: t, Instances: totals})
	}

	return a.emit(w, entries, func(w io.Writer) error {
		s := a.styles
		for _, e := range entries {
			fmt.Fprintln(w, s.Name.Render(e.Top))
			for _, name := range sortedKeys(e.Instances) {
				fmt.Fprintf(w, "  %s %s\n", name, s.Number.Render(fmt.Sprintf("x%d", e.Instances[name])))
			}
		}
		return nil
	})
}
