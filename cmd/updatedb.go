package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"feedbackdash/internal/model"
)

var pruneBefore time.Duration

var updateDBCommand = &cobra.Command{
	Use:   "updatedb",
	Short: "Update database tables",
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadConfig(cmd)
		if conf.DB.DSN == "" {
			logrus.Fatal("db.dsn is not configured")
		}

		db, err := model.InitDB(conf.DB)
		if err != nil {
			logrus.Fatal("failed to init database", err)
		}
		defer closeDB(db)

		err = model.AutoMigrate(db)
		if err != nil {
			logrus.Fatal("failed to auto migrate database", err)
		} else {
			logrus.Infof("Database tables update successfully")
		}

		if pruneBefore > 0 {
			removed, err := model.DeleteActivitiesBefore(time.Now().Add(-pruneBefore))
			if err != nil {
				logrus.Fatal("failed to prune activities", err)
			}
			logrus.Infof("pruned %d activities older than %s", removed, pruneBefore)
		}
	},
}

func init() {
	updateDBCommand.Flags().DurationVarP(&pruneBefore, "prune-before", "p", 0, "Delete activities older than this duration, e.g. 720h")
}
