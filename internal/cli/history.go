package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/metalpath/metalpath/internal/logging"
	"github.com/metalpath/metalpath/internal/tui"
)

// HistoryParams holds the parameters for the history command execution.
// Exported for testing.
type HistoryParams struct {
	User        string
	Limit       int
	Output      string
	Interactive bool
}

// NewHistoryCmd creates the history command for reviewing saved assessments.
func NewHistoryCmd() *cobra.Command {
	var params HistoryParams

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review saved assessments and aggregate statistics",
		Long: `Show saved assessments for a user along with aggregate statistics:
total count, average carbon footprint, average sustainability score,
and average circularity index.

Interactive mode opens a sortable, filterable browser over the rows.`,
		Example: `  # Recent assessments for the default user
  metalpath history

  # Last 20 assessments for alice
  metalpath history --user alice --limit 20

  # Browse interactively
  metalpath history --interactive

  # Stream rows as NDJSON
  metalpath history --limit 100 -o ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeHistory(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.User, "user", "", "user id to list assessments for (default: configured default user)")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum rows to show (0 = configured recent limit)")
	cmd.Flags().StringVarP(&params.Output, "output", "o", outputFormatTable, "output format: table, json, or ndjson")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "browse assessments in a TUI")

	return cmd
}

// executeHistory loads saved assessments and renders them, or hands them to
// the interactive browser.
func executeHistory(cmd *cobra.Command, params HistoryParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := validateOutputFormat(params.Output); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	user := params.User
	if user == "" {
		user = cfg.Dashboard.DefaultUser
	}
	limit := params.Limit
	if limit <= 0 {
		limit = cfg.Dashboard.RecentLimit
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	assessments, err := st.ListAssessments(ctx, user, limit)
	if err != nil {
		return fmt.Errorf("listing assessments: %w", err)
	}

	log.Debug().Ctx(ctx).
		Str("operation", "history").
		Str("user", user).
		Int("count", len(assessments)).
		Msg("assessments loaded")

	if params.Interactive {
		if !isTerminal(os.Stdin) {
			return errors.New("interactive mode requires a terminal")
		}

		model := tui.NewHistoryModel(assessments)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("running history browser: %w", err)
		}
		return nil
	}

	stats, err := st.Stats(ctx, user)
	if err != nil {
		return fmt.Errorf("computing statistics: %w", err)
	}

	return renderHistory(cmd.OutOrStdout(), params.Output, historyView{
		User:        user,
		Stats:       *stats,
		Assessments: assessments,
	})
}
