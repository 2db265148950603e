package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"feedbackdash/internal/version"
	"feedbackdash/pkg/log"
)

var (
	logLevel   string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   version.APP,
	Short: "feedbackdash is a dashboard for the feedback analyzer",
	Long: `Dashboard for the Arabic feedback sentiment analyzer.
Version: ` + version.VERSION + `/` + version.COMMIT,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.InitLog(logLevel)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "etc/config.yaml", "Path to config file")

	rootCmd.AddCommand(serveCommand)
	rootCmd.AddCommand(updateDBCommand)
	rootCmd.AddCommand(statsCommand)
	rootCmd.AddCommand(predictCommand)
	rootCmd.AddCommand(retrainCommand)
	rootCmd.AddCommand(submissionsCommand)
}
