package application

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fedi-e2ee/pkd-go/utils"
)

// ErrUnknownConfigKey is returned when a configuration file sets keys
// which the application's configuration doesn't have.
var ErrUnknownConfigKey = errors.New("[application] Unknown configuration key")

// MaxConfigSize is the size limit of a configuration file.
const MaxConfigSize = 64 << 10

// ConfigLoader provides an interface for implementing
// different PKD application configuration encodings.
type ConfigLoader interface {
	Encode(conf AppConfig) error
	Decode(conf AppConfig) error
}

// newConfigLoader returns the ConfigLoader of the given encoding,
// or the TOML loader if the encoding is unsupported.
func newConfigLoader(encoding string) ConfigLoader {
	loader := configEncodings[encoding]
	if loader == nil {
		loader = new(TomlLoader)
	}
	return loader
}

// TomlLoader implements a ConfigLoader for toml-encoded PKD application
// configurations. Decoding is strict: every key of the file must map to
// a member of the configuration.
type TomlLoader struct{}

var _ ConfigLoader = (*TomlLoader)(nil)

// Encode writes conf in toml encoding to its path.
// An existing file is never overwritten.
func (ld *TomlLoader) Encode(conf AppConfig) error {
	var confBuf bytes.Buffer
	e := toml.NewEncoder(&confBuf)
	e.Indent = ""
	if err := e.Encode(conf); err != nil {
		return fmt.Errorf("Failed to encode config: %w", err)
	}
	return utils.WriteFile(conf.GetPath(), confBuf.Bytes(), 0644)
}

// Decode reads conf from its toml-encoded file. Syntax errors are
// reported with their line, and keys which conf doesn't have are
// reported together as ErrUnknownConfigKey.
func (ld *TomlLoader) Decode(conf AppConfig) error {
	path := conf.GetPath()
	data, err := utils.ReadFileLimit(path, MaxConfigSize)
	if err != nil {
		return fmt.Errorf("Failed to load config: %w", err)
	}
	md, err := toml.Decode(string(data), conf)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("Failed to load config %s: %s", path, perr.ErrorWithPosition())
		}
		return fmt.Errorf("Failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("Failed to load config %s: %w %s",
			path, ErrUnknownConfigKey, strings.Join(keys, ", "))
	}
	return nil
}

var configEncodings = map[string]ConfigLoader{
	"toml": new(TomlLoader),
}
