package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		logger, err := NewLogger(level)
		suite.NoError(err, level)
		suite.NotNil(logger)
		suite.NotNil(logger.Logger)
	}
}

func (suite *LoggerTestSuite) TestNewLoggerInvalidLevel() {
	logger, err := NewLogger("loud")
	suite.Error(err)
	suite.Nil(logger)
	suite.Contains(err.Error(), "invalid log level")
}

func (suite *LoggerTestSuite) TestLevelIsApplied() {
	logger, err := NewLogger("warn")
	suite.Require().NoError(err)
	suite.False(logger.Core().Enabled(zap.InfoLevel))
	suite.True(logger.Core().Enabled(zap.WarnLevel))
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}

	// Sync should not panic and should return nil for a nil inner logger
	err := logger.Sync()
	suite.NoError(err)
}

func (suite *LoggerTestSuite) TestNop() {
	logger := NewNop()
	suite.NotNil(logger.Logger)

	// These should not panic
	logger.Info("test info message", zap.String("instrument", "USD to CNY"))
	logger.Warn("test warn message", zap.Int("rows", 0))
}
