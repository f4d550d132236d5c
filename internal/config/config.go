package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// Config struct is the top-level configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Tracker  TrackerConfig  `mapstructure:"tracker"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	SurveyPort    string `mapstructure:"survey_port"`
	TrackerPort   string `mapstructure:"tracker_port"`
	SessionSecret string `mapstructure:"session_secret"`
	SecureCookies bool   `mapstructure:"secure_cookies"`
	AssetsDir     string `mapstructure:"assets_dir"`
}

// DataConfig locates the tabular inputs and outputs. Relative paths are
// resolved against Directory.
type DataConfig struct {
	Directory       string `mapstructure:"directory"`
	SPSRQFile       string `mapstructure:"spsrq_file"`
	RSSFile         string `mapstructure:"rss_file"`
	ASQFile         string `mapstructure:"asq_file"`
	BehaviorFile    string `mapstructure:"behavior_file"`
	StickerFile     string `mapstructure:"sticker_file"`
	ExportDirectory string `mapstructure:"export_directory"`
	LogDirectory    string `mapstructure:"log_directory"`
}

// TrackerConfig holds weekly tracker settings.
type TrackerConfig struct {
	// Seed fixes the Variable Ratio draws when non-zero.
	Seed int64 `mapstructure:"seed"`
}

// DatabaseConfig holds archive connection settings. The archive is
// optional; when disabled nothing beyond the CSV files is written.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	LogLevel string `mapstructure:"log_level"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Resolve returns path joined to the data directory unless it is absolute.
func (d DataConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.Directory, path)
}

// anchor makes relative directories in the file relative to projectRoot
// instead of the working directory.
func (c *Config) anchor(projectRoot string) {
	for _, p := range []*string{&c.Server.AssetsDir, &c.Data.Directory, &c.Database.Path, &c.Logging.Directory} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(projectRoot, *p)
		}
	}
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper, projectRoot string) {
	// Server defaults
	v.SetDefault("server.survey_port", "5050")
	v.SetDefault("server.tracker_port", "5051")
	v.SetDefault("server.session_secret", "change-me-in-config")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.assets_dir", filepath.Join(projectRoot, "assets"))

	// Data defaults
	v.SetDefault("data.directory", filepath.Join(projectRoot, "data"))
	v.SetDefault("data.spsrq_file", "spsrq_questions.csv")
	v.SetDefault("data.rss_file", "rss_questions.csv")
	v.SetDefault("data.asq_file", "asq_questions.csv")
	v.SetDefault("data.behavior_file", "target_behaviors.csv")
	v.SetDefault("data.sticker_file", "Ronda_Montelli_sticker_data.csv")
	v.SetDefault("data.export_directory", "exports")
	v.SetDefault("data.log_directory", "weekly_logs")

	v.SetDefault("tracker.seed", 0)

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join(projectRoot, "data", "archive.db"))
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "behavior-db")
	v.SetDefault("database.log_level", "warn")

	// Logging defaults
	v.SetDefault("logging.directory", filepath.Join(projectRoot, "logs"))
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs
}

// Init initializes the configuration with Viper.
func Init(projectRoot string, log *zap.Logger) error {
	v := viper.New()

	setDefaults(v, projectRoot)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("BEHAVIOR") // e.g., BEHAVIOR_SERVER_SURVEY_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// It's okay if the file doesn't exist; defaults and env vars will be used.
	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		fileFound = false
	}

	if err := v.Unmarshal(&Conf); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	Conf.anchor(projectRoot)

	// Hot-reload only applies to settings read per request (data paths
	// for new sessions, logging levels); ports and secrets need a restart.
	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
			if err := v.Unmarshal(&Conf); err != nil {
				log.Error("Error reloading configuration", zap.Error(err))
				return
			}
			Conf.anchor(projectRoot)
		})
	}

	log.Info("Configuration loaded successfully", zap.Bool("from_file", fileFound))
	return nil
}
