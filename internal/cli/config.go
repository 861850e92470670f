package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configBaseName   = "lvalign"
	configFolderPath = "."
	envPrefix        = "LVALIGN"

	scaleKey     = "scoring.scale"
	costsKey     = "scoring.costs"
	tableKey     = "scoring.table"
	nullKey      = "scoring.null"
	tokensKey    = "align.tokens"
	allKey       = "align.all"
	pathLimitKey = "align.path_limit"
	formatKey    = "output.format"
	colorKey     = "output.color"
	parallelKey  = "batch.parallel"
	failFastKey  = "batch.fail_fast"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultScale     = "log"
	defaultNull      = "-"
	defaultTokens    = "chars"
	defaultFormat    = "table"
	defaultParallel  = 1
	defaultPathLimit = 1_000_000

	defaultLogFilename   = ".lvalign.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// Config is the resolved configuration: defaults < lvalign.yaml < LVALIGN_*
// environment < flags.
type Config struct {
	Scoring ScoringConfig `mapstructure:"scoring"`
	Align   AlignConfig   `mapstructure:"align"`
	Output  OutputConfig  `mapstructure:"output"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Log     LogConfig     `mapstructure:"log"`
}

// ScoringConfig selects the scoring policy.
type ScoringConfig struct {
	Scale string `mapstructure:"scale" validate:"oneof=log linear"`
	Costs bool   `mapstructure:"costs"`
	Table string `mapstructure:"table" validate:"omitempty,file"`
	Null  string `mapstructure:"null" validate:"required"`
}

// AlignConfig controls how inputs are split and which paths are reported.
type AlignConfig struct {
	Tokens    string `mapstructure:"tokens" validate:"oneof=chars words"`
	All       bool   `mapstructure:"all"`
	PathLimit int    `mapstructure:"path_limit" validate:"gte=0"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=table yaml"`
	Color  bool   `mapstructure:"color"`
}

// BatchConfig controls the batch runner.
type BatchConfig struct {
	Parallel int  `mapstructure:"parallel" validate:"gte=1"`
	FailFast bool `mapstructure:"fail_fast"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	Filename   string `mapstructure:"filename" validate:"required"`
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Verbose    bool   `mapstructure:"verbose"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// newViper returns a viper instance with defaults and env binding set.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolderPath)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(scaleKey, defaultScale)
	v.SetDefault(costsKey, false)
	v.SetDefault(tableKey, "")
	v.SetDefault(nullKey, defaultNull)
	v.SetDefault(tokensKey, defaultTokens)
	v.SetDefault(allKey, false)
	v.SetDefault(pathLimitKey, defaultPathLimit)
	v.SetDefault(formatKey, defaultFormat)
	v.SetDefault(colorKey, false)
	v.SetDefault(parallelKey, defaultParallel)
	v.SetDefault(failFastKey, false)

	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, false)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	return v
}

// loadConfig reads the optional config file and resolves a validated Config.
// An explicit path must exist; the default lvalign.yaml may be absent.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a JSON zap logger writing to a lumberjack-rotated file.
// Verbose forces debug level.
func newLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, level)
	return zap.New(core, zap.AddCaller()), nil
}
