package cmd

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"feedbackdash/internal/config"
	"feedbackdash/internal/dashboard"
	"feedbackdash/internal/model"
	"feedbackdash/pkg/log"
)

func loadConfig(cmd *cobra.Command) *config.Config {
	conf, err := config.InitConfig(configFile, cmd.Flags().Changed("config"))
	if err != nil {
		logrus.Fatal("initConfig error, ", err.Error())
	}
	return conf
}

// openActivityLog opens the database when a DSN is configured. The returned
// recorder is nil otherwise.
func openActivityLog(conf *config.Config) (dashboard.ActivityRecorder, *gorm.DB) {
	if conf.DB.DSN == "" {
		logrus.Debug("db dsn not set, activity log disabled")
		return nil, nil
	}
	db, err := model.InitDB(conf.DB)
	if err != nil {
		logrus.Fatal("failed to init database", err)
	}
	if err = model.AutoMigrate(db); err != nil {
		logrus.Fatal("failed to auto migrate database", err)
	}
	return model.ActivityLog{}, db
}

func closeDB(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func commandContext() context.Context {
	requestId := strings.ReplaceAll(uuid.New().String(), "-", "")
	return log.WithRequestId(context.Background(), requestId)
}
