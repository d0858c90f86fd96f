package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pillai-nz/go-pillai/internal/domain"
	"github.com/pillai-nz/go-pillai/internal/services"
	"github.com/pillai-nz/go-pillai/internal/services/answer"
	"github.com/pillai-nz/go-pillai/internal/services/assistant"
	"github.com/pillai-nz/go-pillai/internal/services/reference"
	"github.com/pillai-nz/go-pillai/internal/services/translate"
)

func newAskCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Send one question through the live answer pipeline",
		Long: `ask sends a question to the configured answer source, strips citations,
translates when --language is not English and prints the answer with its
reference links. Credentials come from the config file or PILLAI_OPENAI_API_KEY
and PILLAI_ASSISTANT_ID.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := readText(cmd, args)
			if err != nil {
				return err
			}

			logger := cliLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))
			svc, err := buildAskService(v, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), v.GetDuration("timeout"))
			defer cancel()

			now := time.Now()
			session := &domain.Session{ID: "cli", CreatedAt: now, UpdatedAt: now}
			resp, err := svc.Ask(ctx, session, assistant.AskRequest{
				Question: question,
				Language: v.GetString("language"),
				Simplify: v.GetBool("simplify"),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Answer)
			if len(resp.References) > 0 {
				fmt.Fprintln(out)
				printMatches(out, resp.References)
			}
			if session.ThreadID != "" && v.GetBool("verbose") {
				fmt.Fprintf(cmd.ErrOrStderr(), "thread: %s (%s)\n", session.ThreadID, time.Since(now).Round(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().StringP("language", "l", "en", "answer language (en, mi, sm, zh-CN)")
	cmd.Flags().Bool("simplify", false, "ask for a plain-language answer")
	cmd.Flags().Duration("timeout", 2*time.Minute, "overall request timeout")
	cmd.Flags().String("mode", string(answer.ModeAssistant), "answer source: assistant or completion")
	cmd.Flags().String("translator", translate.ProviderGoogle, "translation provider: google or llm")
	for flag, key := range map[string]string{
		"language":   "language",
		"simplify":   "simplify",
		"timeout":    "timeout",
		"mode":       "answer_mode",
		"translator": "translation_provider",
	} {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
	return cmd
}

// buildAskService wires the same pipeline the server uses, minus the question log.
func buildAskService(v *viper.Viper, logger services.Logger) (*assistant.Service, error) {
	answerCfg := answer.DefaultConfig()
	answerCfg.Mode = answer.Mode(v.GetString("answer_mode"))
	answerCfg.APIKey = v.GetString("openai_api_key")
	answerCfg.BaseURL = v.GetString("openai_base_url")
	answerCfg.AssistantID = v.GetString("assistant_id")
	if model := v.GetString("answer_model"); model != "" {
		answerCfg.Model = model
	}
	source, err := answer.NewSource(answerCfg, logger)
	if err != nil {
		return nil, err
	}

	translateCfg := translate.DefaultConfig()
	translateCfg.Provider = v.GetString("translation_provider")
	translateCfg.APIKey = answerCfg.APIKey
	translateCfg.BaseURL = answerCfg.BaseURL
	translateCfg.CacheTTL = 0
	translator, err := translate.NewProvider(translateCfg, logger)
	if err != nil {
		return nil, err
	}

	catalog := reference.LoadCatalogOrEmpty(v.GetString("catalog"), logger)
	matcher := reference.NewMatcher(catalog, reference.DefaultConfig(), logger)

	cfg := assistant.DefaultConfig()
	cfg.RequestTimeout = v.GetDuration("timeout")
	return assistant.NewService(cfg, source, translator, matcher, nil, logger)
}

func cliLogger(w io.Writer, verbose bool) services.Logger {
	if !verbose {
		return &services.NoOpLogger{}
	}
	logger := services.NewProductionLoggerWithWriter("pillai-cli", w)
	logger.SetLevel(services.LogLevelDebug)
	logger.SetStructured(false)
	return logger
}
