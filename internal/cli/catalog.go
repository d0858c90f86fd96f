package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pillai-nz/go-pillai/internal/services/answer"
	"github.com/pillai-nz/go-pillai/internal/services/reference"
)

func newCatalogCommand(v *viper.Viper) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate the reference catalog file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString("catalog")
			catalog, skipped, err := reference.LoadCatalog(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d entries\n", path, catalog.Len())
			for _, key := range skipped {
				fmt.Fprintf(out, "skipped %q: value is not a string\n", key)
			}
			if list {
				for _, e := range catalog.Entries() {
					fmt.Fprintf(out, "%s\t%s\n", reference.Normalize(e.Key), e.URL)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print every normalized label and URL")
	return cmd
}

func newStripCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strip [text | -]",
		Short: "Remove 【...】 citation markers from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer.StripCitations(text))
			return nil
		},
	}
}
