package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pillai-nz/go-pillai/internal/domain"
	"github.com/pillai-nz/go-pillai/internal/services/answer"
	"github.com/pillai-nz/go-pillai/internal/services/reference"
)

func newMatchCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [answer text | -]",
		Short: "Rank catalog entries against an answer",
		Long: `match scores every catalog label against the given answer text and prints
the best matches. Use "-" to read the answer from stdin. Citation markers are
stripped first, the same way the server does.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			catalog, skipped, err := reference.LoadCatalog(v.GetString("catalog"))
			if err != nil {
				return err
			}
			if len(skipped) > 0 && v.GetBool("verbose") {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d non-string entries\n", len(skipped))
			}

			matches := reference.FindMatches(answer.StripCitations(text), catalog, v.GetInt("top"), v.GetFloat64("min_score"))
			if v.GetBool("json") {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(matches)
			}
			printMatches(cmd.OutOrStdout(), matches)
			return nil
		},
	}

	cmd.Flags().IntP("top", "n", reference.DefaultTopN, "number of matches to return")
	cmd.Flags().Float64("min-score", 0.5, "minimum score between 0 and 1")
	cmd.Flags().Bool("json", false, "print matches as JSON")
	_ = v.BindPFlag("top", cmd.Flags().Lookup("top"))
	_ = v.BindPFlag("min_score", cmd.Flags().Lookup("min-score"))
	_ = v.BindPFlag("json", cmd.Flags().Lookup("json"))
	return cmd
}

func printMatches(out io.Writer, matches []domain.MatchResult) {
	if len(matches) == 0 {
		fmt.Fprintln(out, "no matches")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tLABEL\tURL")
	for _, m := range matches {
		fmt.Fprintf(tw, "%.2f\t%s\t%s\n", m.Score, m.Label, m.URL)
	}
	_ = tw.Flush()
}

// readText joins args, or reads stdin when the only arg is "-".
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
