package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"feedbackdash/internal/dao"
	"feedbackdash/internal/dashboard"
	"feedbackdash/internal/export"
)

var downloadOutput string

var submissionsCommand = &cobra.Command{
	Use:   "submissions",
	Short: "Manage stored submissions",
}

var listSubmissionsCommand = &cobra.Command{
	Use:          "list",
	Short:        "List stored submissions",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd)
		defer s.close()

		if err := s.run(commandContext(), dashboard.ActionLoadSubmissions, dao.ActionRequest{}); err != nil {
			return err
		}
		rows := s.ctrl.Rows()
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "لا توجد إرساليات.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tLABEL\tPROBABILITY\tTEXT")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Timestamp, r.Label, r.Probability, r.Text)
		}
		return w.Flush()
	},
}

var deleteSubmissionsCommand = &cobra.Command{
	Use:          "delete TIMESTAMP...",
	Short:        "Delete submissions by timestamp",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd)
		defer s.close()

		ctx := commandContext()
		// Only rendered rows can be selected.
		if err := s.run(ctx, dashboard.ActionLoadSubmissions, dao.ActionRequest{}); err != nil {
			return err
		}
		timestamps := args
		if timestamps == nil {
			timestamps = []string{}
		}
		return s.run(ctx, dashboard.ActionDeleteSelected, dao.ActionRequest{Timestamps: timestamps})
	},
}

var clearSubmissionsCommand = &cobra.Command{
	Use:          "clear",
	Short:        "Delete every submission",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd)
		defer s.close()

		return s.run(commandContext(), dashboard.ActionClearAll, dao.ActionRequest{})
	},
}

var downloadSubmissionsCommand = &cobra.Command{
	Use:          "download",
	Short:        "Download submissions as CSV, archiving to S3 when enabled",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(cmd)
		defer s.close()

		ctx := commandContext()
		if err := s.run(ctx, dashboard.ActionDownloadCSV, dao.ActionRequest{}); err != nil {
			return err
		}

		file, err := os.Create(downloadOutput)
		if err != nil {
			return fmt.Errorf("create %s failed: %w", downloadOutput, err)
		}
		n, err := s.cli.DownloadCSV(ctx, file)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(downloadOutput)
			return fmt.Errorf("download csv failed: %w", err)
		}
		logrus.Infof("wrote %d bytes to %s", n, downloadOutput)

		if !s.conf.S3.Enabled {
			return nil
		}
		archiver, err := export.NewArchiver(s.conf.S3)
		if err != nil {
			return err
		}
		if err = archiver.EnsureBucket(ctx); err != nil {
			return err
		}
		object, err := archiver.Upload(ctx, downloadOutput, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archived to s3://%s/%s\n", s.conf.S3.Bucket, object)
		return nil
	},
}

func init() {
	downloadSubmissionsCommand.Flags().StringVarP(&downloadOutput, "output", "o", "submissions.csv", "Output file")
	for _, c := range []*cobra.Command{deleteSubmissionsCommand, clearSubmissionsCommand} {
		c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	}

	submissionsCommand.AddCommand(listSubmissionsCommand)
	submissionsCommand.AddCommand(deleteSubmissionsCommand)
	submissionsCommand.AddCommand(clearSubmissionsCommand)
	submissionsCommand.AddCommand(downloadSubmissionsCommand)
}
