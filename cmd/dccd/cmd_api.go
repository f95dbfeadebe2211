package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dccd/internal/api"
	"dccd/internal/config"
	"dccd/internal/logging"
)

var questionsJSON bool

// healthCmd pings the backend
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the diagnostic backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

// questionsCmd lists the survey statements
var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the survey questions served by the backend",
	Args:  cobra.NoArgs,
	RunE:  runQuestions,
}

func init() {
	questionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "Print questions as JSON")
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL, cfg.GetAPITimeout(),
		api.WithLogger(logging.Get(logging.CategoryAPI)))
}

func runHealth(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetAPITimeout())
	defer cancel()

	if err := client.Health(ctx); err != nil {
		logger.Debug("health check failed", zap.Error(err))
		return fmt.Errorf("%s (%s): %w", api.UserMessage(err), client.BaseURL(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backend at %s is healthy\n", client.BaseURL())
	return nil
}

func runQuestions(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetAPITimeout())
	defer cancel()

	questions, err := client.Questions(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", api.UserMessage(err), err)
	}

	out := cmd.OutOrStdout()
	if questionsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(api.QuestionsResponse{Questions: questions})
	}
	for _, q := range questions {
		fmt.Fprintf(out, "%d. %s\n", q.ID, q.Statement)
	}
	fmt.Fprintf(out, "\n%d questions\n", len(questions))
	return nil
}
