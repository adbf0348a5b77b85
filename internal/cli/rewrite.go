package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gdsii/gdsii"
	"github.com/robert-malhotra/go-gdsii/internal/config"
	"github.com/robert-malhotra/go-gdsii/internal/logging"
)

type rewriteFlags struct {
	library string
}

func newRewriteCommand(a *app) *cobra.Command {
	flags := &rewriteFlags{}

	cmd := &cobra.Command{
		Use:   "rewrite INPUT OUTPUT",
		Short: "Copy a library into a normalized stream file",
		Long: `Read every structure of INPUT and write it to OUTPUT. The copy carries
format version 600, drops optional header records and unknown records, and
keeps structures and elements in their original order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			logger := logging.FromContext(cmd.Context())

			if same, err := samePath(in, out); err != nil {
				return err
			} else if same {
				return fmt.Errorf("%w: input and output are the same file", config.ErrInvalidConfig)
			}

			src, err := openFile(cmd.Context(), in)
			if err != nil {
				return err
			}
			defer src.Close()

			header := src.Header()
			if flags.library != "" {
				header.Name = flags.library
			}

			dst, err := gdsii.Create(out, header, gdsii.WithLogger(logger.With(logging.FieldPath, out)))
			if err != nil {
				return err
			}

			count := 0
			err = src.Structures(func(s gdsii.Structure) error {
				if err := dst.WriteStruct(s); err != nil {
					return err
				}
				count++
				logger.Debug("copied structure",
					logging.FieldStructure, s.Name,
					logging.FieldElements, len(s.Elements),
				)
				return nil
			})
			if closeErr := dst.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				os.Remove(out)
				return fmt.Errorf("rewriting %s: %w", in, err)
			}

			logger.Info("rewrote library",
				logging.FieldLibrary, header.Name,
				logging.FieldOutput, out,
				logging.FieldStructures, count,
				logging.FieldBytes, humanize.Bytes(uint64(dst.Written())),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.library, "library", "", "rename the library in the copy")

	return cmd
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
