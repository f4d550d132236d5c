package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"behavior-go/internal/config"
	"behavior-go/internal/database"
	"behavior-go/internal/handlers"
	logger "behavior-go/internal/logging"
	"behavior-go/internal/repository"
	"behavior-go/internal/router"
	"behavior-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	projectRoot string
	port        string
	seed        int64
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Weekly digital sticker chart driven by the assessment export",
	Long: `Loads the sticker export written by the assessment and the target
behavior mapping, then tracks a behavior by weekday sticker grid against a
Continuous, Fixed Ratio or Variable Ratio weekly goal.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&projectRoot, "root", "r", ".", "Project root holding config/ and data/")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default: server.tracker_port)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for Variable Ratio goals (default: tracker.seed, else time)")
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

	log, err := logger.Init("tracker", config.Conf.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	if port == "" {
		port = config.Conf.Server.TrackerPort
	}

	r, err := buildRouter(log)
	if err != nil {
		return err
	}

	log.Info("Tracker listening on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil {
		log.Error("Failed to run Gin server", zap.Error(err))
		return err
	}
	return nil
}

// buildRouter loads the tracker inputs. When they are missing the server
// still starts, answering every request with the blocking message.
func buildRouter(log *zap.Logger) (*gin.Engine, error) {
	data := config.Conf.Data
	reinforcer, stickerErr := tracker.LoadReinforcer(data.Resolve(data.StickerFile))
	behaviors, behaviorErr := tracker.LoadBehaviors(data.Resolve(data.BehaviorFile))
	if err := errors.Join(stickerErr, behaviorErr); err != nil {
		log.Error("Required data files are missing", zap.Error(err))
		return router.Unavailable(log, config.Conf.Server, "Required data files are missing", err), nil
	}

	if seed == 0 {
		seed = config.Conf.Tracker.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	t, err := tracker.New(tracker.Options{
		Reinforcer: reinforcer,
		Behaviors:  behaviors,
		LogDir:     data.Resolve(data.LogDirectory),
		Rand:       rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return nil, err
	}
	log.Info("Tracker ready",
		zap.String("reinforcer", reinforcer.Description()),
		zap.String("type", string(reinforcer.Type)),
		zap.Int("behaviors", len(behaviors)),
	)

	var archive handlers.WeekArchive
	if config.Conf.Database.Enabled {
		db, err := database.Open(config.Conf.Database, log)
		if err != nil {
			return nil, err
		}
		archive = repository.NewArchive(db)
	}

	return router.SetupTracker(log, config.Conf.Server, t, archive), nil
}
