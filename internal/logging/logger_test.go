package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"behavior-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func TestInitWritesPerLevelFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, err := Init("survey", config.LoggingConfig{Directory: dir, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	require.NoError(t, err)

	log.Warn("threshold redrawn", zap.Int("threshold", 22))
	_ = log.Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var warnFile string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "survey-") && strings.HasSuffix(e.Name(), "-warn.log") {
			warnFile = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, warnFile)

	data, err := os.ReadFile(warnFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "threshold redrawn")
	assert.Contains(t, string(data), `"threshold":22`)
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, logger.Info, ParseGormLevel("INFO"))
	assert.Equal(t, logger.Warn, ParseGormLevel(""))

	l := NewGormZapLogger(zap.NewNop(), "error")
	assert.Equal(t, logger.Error, l.LogLevel)
	assert.Equal(t, logger.Info, l.LogMode(logger.Info).(*GormZapLogger).LogLevel)
}
