package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"feedbackdash/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Run: func(cmd *cobra.Command, args []string) {
		runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) {
	conf := loadConfig(cmd)

	logrus.Infof("config: addr=%s backend=%s db=%s s3=%v", conf.Addr, conf.Backend.BaseUrl, conf.DB.Driver, conf.S3.Enabled)

	recorder, db := openActivityLog(conf)
	defer closeDB(db)

	ctx, cancelFunc := context.WithCancel(commandContext())
	defer cancelFunc()

	srv, err := server.NewServer(ctx, conf, recorder)
	if err != nil {
		logrus.Fatalf("newServer error, %s", err.Error())
		return
	}
	if err = srv.Controller().RefreshStats(ctx); err != nil {
		logrus.Warnf("initial stats refresh failed: %v", err)
	}
	go srv.Start()

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)

	<-termChan
	logrus.Infof("server is shutting down...")
	srv.Shutdown()
}
