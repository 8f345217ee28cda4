package cmd

import (
	"log"

	"musicapp/config"
	"musicapp/db"
	"musicapp/model"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migration",
	Long:  `Connect to MySQL and run GORM AutoMigrate for all catalog models, then exit`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := db.ConnectGormDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.CloseGormDB()

		if err := db.AutoMigrateModels(
			&model.Musician{},
			&model.Album{},
			&model.Track{},
			&model.UserActionLog{},
		); err != nil {
			log.Fatalf("Failed to migrate models: %v", err)
		}

		log.Println("Migration completed.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
