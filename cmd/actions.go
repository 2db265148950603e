package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"feedbackdash/internal/client"
	"feedbackdash/internal/config"
	"feedbackdash/internal/dao"
	"feedbackdash/internal/dashboard"
	"feedbackdash/internal/utils"
)

var (
	predictSave bool
	assumeYes   bool
)

// session is one CLI invocation driving the dashboard controller.
type session struct {
	conf *config.Config
	cli  *client.Client
	ctrl *dashboard.Controller
	db   *gorm.DB
	ui   dashboard.Prompter
}

func newSession(cmd *cobra.Command) *session {
	conf := loadConfig(cmd)
	recorder, db := openActivityLog(conf)
	cli := client.NewClient(client.Config{
		BaseUrl: conf.Backend.BaseUrl,
		Timeout: conf.Backend.Timeout,
	})
	return &session{
		conf: conf,
		cli:  cli,
		ctrl: dashboard.NewController(cli, recorder),
		db:   db,
		ui:   newTerminalPrompter(os.Stdin, cmd.OutOrStdout(), assumeYes),
	}
}

func (s *session) close() {
	closeDB(s.db)
}

// run dispatches an action. A declined confirmation is not an error.
func (s *session) run(ctx context.Context, action string, req dao.ActionRequest) error {
	outcome, err := s.ctrl.Dispatch(ctx, action, s.ui, req)
	if err != nil {
		return err
	}
	switch outcome {
	case dashboard.OutcomeOk, dashboard.OutcomeCancelled:
		return nil
	}
	return fmt.Errorf("%s: %s", action, outcome)
}

func printHTML(cmd *cobra.Command, fragment string) {
	for _, line := range utils.HTMLLines(fragment) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}

var statsCommand = &cobra.Command{
	Use:          "stats",
	Short:        "Show label counts and model accuracy",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd)
		defer s.close()

		if err := s.run(commandContext(), dashboard.ActionRefresh, dao.ActionRequest{}); err != nil {
			return err
		}
		view := s.ctrl.View()
		printHTML(cmd, view.StatsHTML)
		fmt.Fprintf(cmd.OutOrStdout(), "الدقة: %s\n", view.AccuracyStat)
		return nil
	},
}

var predictCommand = &cobra.Command{
	Use:          "predict TEXT...",
	Short:        "Classify a piece of text",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd)
		defer s.close()

		req := dao.ActionRequest{
			Text: strings.Join(args, " "),
			Save: predictSave,
		}
		if err := s.run(commandContext(), dashboard.ActionPredict, req); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), utils.HTMLText(s.ctrl.View().PredictionHTML))
		return nil
	},
}

var retrainCommand = &cobra.Command{
	Use:          "retrain",
	Short:        "Retrain the model and show fresh stats",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd)
		defer s.close()

		if err := s.run(commandContext(), dashboard.ActionRetrain, dao.ActionRequest{}); err != nil {
			return err
		}
		printHTML(cmd, s.ctrl.View().StatsHTML)
		return nil
	},
}

func init() {
	predictCommand.Flags().BoolVarP(&predictSave, "save", "s", false, "Store the prediction as a submission")
}
