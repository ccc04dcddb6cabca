package application

import (
	"fmt"
	"os"

	"github.com/fedi-e2ee/pkd-go/protocol"
	"github.com/fedi-e2ee/pkd-go/utils"
)

// AppConfig provides an abstraction of the
// underlying encoding format for the configs.
type AppConfig interface {
	Load(file, encoding string) error
	Save() error
	GetPath() string
}

// CommonConfig is the generic type used to specify the configuration of
// any kind of PKD application-level executable (e.g. the action
// validator). It contains some common configuration
// values including the file path, logger configuration, and config
// loader.
type CommonConfig struct {
	Path     string        `toml:"-"`
	Logger   *LoggerConfig `toml:"logger"`
	Encoding string        `toml:"-"`
	loader   ConfigLoader
}

// NewCommonConfig initializes an application's config file path,
// its loader for the given encoding, and the logger configuration.
// Note: This constructor must be called in each Load() method
// implementation of an AppConfig.
func NewCommonConfig(file, encoding string, logger *LoggerConfig) *CommonConfig {
	return &CommonConfig{
		Path:     file,
		Logger:   logger,
		Encoding: encoding,
		loader:   newConfigLoader(encoding),
	}
}

// GetLoader returns the config's loader.
func (conf *CommonConfig) GetLoader() ConfigLoader {
	return conf.loader
}

// ResolveLoggerPath makes the logger's output path relative to
// the config file, if the config has a file logger.
func (conf *CommonConfig) ResolveLoggerPath() {
	if conf.Logger != nil && conf.Logger.Path != "" {
		conf.Logger.Path = utils.ResolvePath(conf.Logger.Path, conf.Path)
	}
}

// LoadActionFile loads the action stored at the given path, which is
// resolved against the given config file.
// If there is any read or decoding error,
// LoadActionFile() returns an error with a nil action.
func LoadActionFile(path, file string) (protocol.Action, error) {
	actionPath := utils.ResolvePath(path, file)
	msg, err := os.ReadFile(actionPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read action: %v", err)
	}
	a, err := protocol.ParseAction(msg)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse action: %w", err)
	}
	return a, nil
}
