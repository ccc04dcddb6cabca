// Package validator checks PKD action messages before they are handed
// to a directory: a message must be small enough, decode strictly,
// and carry an action the configuration allows. Every decision is
// logged.
package validator

import (
	"errors"
	"fmt"

	"github.com/fedi-e2ee/pkd-go/application"
	"github.com/fedi-e2ee/pkd-go/protocol"
	"github.com/fedi-e2ee/pkd-go/utils"
)

var (
	// ErrMessageTooLarge indicates a message over the configured size.
	ErrMessageTooLarge = errors.New("[pkd] message too large")
	// ErrActionNotAllowed indicates an action missing from the
	// configured allow-list.
	ErrActionNotAllowed = errors.New("[pkd] action not allowed")
)

// A Validator checks encoded actions against its Config.
// It is safe for concurrent use.
type Validator struct {
	logger  *application.Logger
	maxSize int64
	allowed map[protocol.ActionName]bool
}

// New builds a Validator from conf, logging with the logger it
// configures.
func New(conf *Config) (*Validator, error) {
	if conf.Logger == nil {
		return nil, errors.New("Missing logger configuration")
	}
	return NewWithLogger(conf, application.NewLogger(conf.Logger))
}

// NewWithLogger builds a Validator from conf which logs to logger.
func NewWithLogger(conf *Config, logger *application.Logger) (*Validator, error) {
	allowed, err := conf.allowed()
	if err != nil {
		return nil, err
	}
	return &Validator{
		logger:  logger,
		maxSize: conf.maxSize(),
		allowed: allowed,
	}, nil
}

// Validate decodes a single encoded action and checks it.
func (v *Validator) Validate(msg []byte) (protocol.Action, error) {
	if err := v.checkSize(len(msg)); err != nil {
		return nil, err
	}
	a, err := protocol.ParseAction(msg)
	if err != nil {
		v.reject(err)
		return nil, err
	}
	if err := v.check(a); err != nil {
		return nil, err
	}
	v.accept(a, len(msg))
	return a, nil
}

// ValidateBatch decodes and checks a single action or a batch.
// Nothing is returned unless every action passes.
func (v *Validator) ValidateBatch(msg []byte) ([]protocol.Action, error) {
	if err := v.checkSize(len(msg)); err != nil {
		return nil, err
	}
	actions, err := application.UnmarshalActionMsg(msg)
	if err != nil {
		v.reject(err)
		return nil, err
	}
	for i, a := range actions {
		if err := v.check(a); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
	}
	for _, a := range actions {
		v.accept(a, len(msg))
	}
	return actions, nil
}

// ValidateFile reads the file at path, which must not be larger than
// the maximum message size, and checks its action or batch.
func (v *Validator) ValidateFile(path string) ([]protocol.Action, error) {
	msg, err := utils.ReadFileLimit(path, v.maxSize)
	if err != nil {
		v.logger.Warn("cannot read action file", "path", path, "error", err)
		return nil, err
	}
	return v.ValidateBatch(msg)
}

func (v *Validator) checkSize(n int) error {
	if int64(n) > v.maxSize {
		v.logger.Warn("rejected message", "size", n, "max", v.maxSize)
		return fmt.Errorf("%w: %d bytes (max %d)", ErrMessageTooLarge, n, v.maxSize)
	}
	return nil
}

func (v *Validator) check(a protocol.Action) error {
	if v.allowed != nil && !v.allowed[a.Name()] {
		v.logger.Warn("rejected action", "action", string(a.Name()), "reason", "not allowed")
		return fmt.Errorf("%w: %s", ErrActionNotAllowed, a.Name())
	}
	return nil
}

func (v *Validator) reject(err error) {
	v.logger.Warn("rejected action",
		"code", protocol.CodeOf(err).Error(),
		"field", protocol.FieldOf(err),
		"error", err)
}

func (v *Validator) accept(a protocol.Action, size int) {
	v.logger.Info("accepted action", "action", string(a.Name()), "size", size)
}
