package main

import (
	"fmt"
	"os"

	"behavior-go/internal/config"
	"behavior-go/internal/database"
	"behavior-go/internal/handlers"
	logger "behavior-go/internal/logging"
	"behavior-go/internal/models"
	"behavior-go/internal/repository"
	"behavior-go/internal/router"
	"behavior-go/internal/survey"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	projectRoot string
	port        string
)

var rootCmd = &cobra.Command{
	Use:   "survey",
	Short: "Behavior assessment: SPSRQ with RSS/ASQ follow-up and sticker export",
	Long: `Serves the consent form, the SPSRQ, the RSS or ASQ follow-up chosen from
the SPSRQ scores, and the summary. Completed sessions export their top
stimuli as <Name>_sticker_data.csv for the weekly tracker.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&projectRoot, "root", "r", ".", "Project root holding config/ and data/")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default: server.survey_port)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	boot, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to initialize bootstrap logger: %w", err)
	}
	if err := config.Init(projectRoot, boot); err != nil {
		return err
	}

	log, err := logger.Init("survey", config.Conf.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	data := config.Conf.Data
	bank := models.NewBank(map[models.QuestionSet]string{
		models.SetSPSRQ: data.Resolve(data.SPSRQFile),
		models.SetRSS:   data.Resolve(data.RSSFile),
		models.SetASQ:   data.Resolve(data.ASQFile),
	})
	// A missing set only blocks the screens that need it.
	for set, loadErr := range bank.Errors() {
		log.Error("Question set unavailable", zap.String("set", string(set)), zap.Error(loadErr))
	}

	var archive handlers.SessionArchive
	if config.Conf.Database.Enabled {
		db, err := database.Open(config.Conf.Database, log)
		if err != nil {
			return err
		}
		archive = repository.NewArchive(db)
	}

	r := router.Setup(log, config.Conf.Server, survey.NewStore(bank), data.Resolve(data.ExportDirectory), archive)

	if port == "" {
		port = config.Conf.Server.SurveyPort
	}
	log.Info("Assessment listening on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil {
		log.Error("Failed to run Gin server", zap.Error(err))
		return err
	}
	return nil
}
