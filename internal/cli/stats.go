package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pillai-nz/go-pillai/internal/domain"
	"github.com/pillai-nz/go-pillai/internal/repository"
	"github.com/pillai-nz/go-pillai/internal/repository/interaction"
)

func newStatsCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count logged questions by outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := repository.OpenDatabase(v.GetString("database_path"))
			if err != nil {
				return err
			}
			defer func() { _ = repository.CloseDatabase(db) }()

			since := time.Now().Add(-v.GetDuration("since"))
			counts, err := interaction.NewInteractionRepository(db).CountByStatus(cmd.Context(), since)
			if err != nil {
				return err
			}

			statuses := make([]string, 0, len(counts))
			var total int64
			for status, n := range counts {
				statuses = append(statuses, string(status))
				total += n
			}
			sort.Strings(statuses)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "questions since %s: %d\n", since.Format(time.RFC3339), total)
			for _, status := range statuses {
				fmt.Fprintf(out, "  %-20s %d\n", status, counts[domain.InteractionStatus(status)])
			}
			return nil
		},
	}
	cmd.Flags().String("db", "pillai.db", "question log database")
	cmd.Flags().Duration("since", 24*time.Hour, "look back this far")
	_ = v.BindPFlag("database_path", cmd.Flags().Lookup("db"))
	_ = v.BindPFlag("since", cmd.Flags().Lookup("since"))
	return cmd
}
