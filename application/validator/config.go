package validator

import (
	"fmt"

	"github.com/fedi-e2ee/pkd-go/application"
	"github.com/fedi-e2ee/pkd-go/protocol"
)

// DefaultMaxMessageSize is the largest accepted message, in bytes,
// unless the config says otherwise.
const DefaultMaxMessageSize = 1 << 20

// A Config contains the validator's configuration:
// the largest message it accepts and the actions it lets through.
type Config struct {
	*application.CommonConfig
	// MaxMessageSize is the largest accepted message or batch,
	// in bytes. Zero selects DefaultMaxMessageSize.
	MaxMessageSize int64 `toml:"max_message_size,omitempty"`
	// AllowedActions lists the names of the actions the validator
	// accepts. An empty list accepts every action.
	AllowedActions []string `toml:"allowed_actions,omitempty"`
}

var _ application.AppConfig = (*Config)(nil)

// NewConfig initializes a new validator configuration at the
// given file path, with the given config encoding, logger
// configuration, maximum message size and allowed actions.
func NewConfig(file, encoding string, logger *application.LoggerConfig,
	maxSize int64, allowed []string) *Config {
	var conf = Config{
		CommonConfig:   application.NewCommonConfig(file, encoding, logger),
		MaxMessageSize: maxSize,
		AllowedActions: allowed,
	}

	return &conf
}

// Load initializes a validator's configuration from the given file
// using the given encoding.
// It checks every allowed action name and resolves the log file path.
func (conf *Config) Load(file, encoding string) error {
	conf.CommonConfig = application.NewCommonConfig(file, encoding, nil)
	if err := conf.GetLoader().Decode(conf); err != nil {
		return err
	}
	if conf.Logger == nil {
		return fmt.Errorf("Missing logger configuration in %s", file)
	}
	if conf.MaxMessageSize < 0 {
		return fmt.Errorf("max_message_size must not be negative (got %d)", conf.MaxMessageSize)
	}
	if _, err := conf.allowed(); err != nil {
		return err
	}
	conf.ResolveLoggerPath()
	return nil
}

// Save writes a validator's configuration.
func (conf *Config) Save() error {
	return conf.GetLoader().Encode(conf)
}

// GetPath returns the validator's configuration file path.
func (conf *Config) GetPath() string {
	return conf.Path
}

func (conf *Config) maxSize() int64 {
	if conf.MaxMessageSize == 0 {
		return DefaultMaxMessageSize
	}
	return conf.MaxMessageSize
}

// allowed returns the set of allowed actions, or nil if every
// action is allowed.
func (conf *Config) allowed() (map[protocol.ActionName]bool, error) {
	if len(conf.AllowedActions) == 0 {
		return nil, nil
	}
	set := make(map[protocol.ActionName]bool, len(conf.AllowedActions))
	for _, s := range conf.AllowedActions {
		name, err := protocol.ParseActionName(s)
		if err != nil {
			return nil, fmt.Errorf("allowed_actions: %w", err)
		}
		set[name] = true
	}
	return set, nil
}
