package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// NewRootCommand builds the pillai diagnostic command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "pillai",
		Short: "Pill-AI diagnostics",
		Long: `pillai checks the pieces behind the Pill-AI medicine question service.

It can score an answer against the reference catalog, strip citation markers,
inspect the catalog file and send a real question through the full pipeline.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile, cmd.ErrOrStderr())
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.pillai/config.yaml)")
	root.PersistentFlags().String("catalog", "medsafe_source_links_cleaned.json", "reference catalog JSON file")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	_ = v.BindPFlag("catalog", root.PersistentFlags().Lookup("catalog"))
	_ = v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(
		newMatchCommand(v),
		newCatalogCommand(v),
		newStripCommand(),
		newAskCommand(v),
		newStatsCommand(v),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command against stdout.
func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pillai %s\n", Version)
		},
	}
}

// initConfig reads the optional config file and PILLAI_* environment variables.
func initConfig(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".pillai"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PILLAI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if v.GetBool("verbose") {
		fmt.Fprintf(stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}
	return nil
}
