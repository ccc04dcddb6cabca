// Defines functions to encode/decode PKD actions for storage and
// exchange. An action file holds either a single canonical action
// object or a batch: a JSON array of them.

package application

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fedi-e2ee/pkd-go/protocol"
	"github.com/fedi-e2ee/pkd-go/utils"
)

var errEmptyBatch = errors.New("a batch holds at least one action")

// IsBatch reports whether msg holds a batch of actions rather than
// a single action.
func IsBatch(msg []byte) bool {
	msg = bytes.TrimLeft(msg, " \t\r\n")
	return len(msg) > 0 && msg[0] == '['
}

// MarshalActions returns the encoding of a batch of actions,
// each in its canonical form. An empty batch is an error.
func MarshalActions(actions []protocol.Action) ([]byte, error) {
	if len(actions) == 0 {
		return nil, &protocol.Error{Code: protocol.ErrBadValue, Err: errEmptyBatch}
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, a := range actions {
		msg, err := protocol.MarshalAction(a)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(msg)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalActions parses a batch of actions. The whole batch is
// rejected if any of its actions is, or if it is empty.
func UnmarshalActions(msg []byte) ([]protocol.Action, error) {
	var contents []json.RawMessage
	if err := json.Unmarshal(msg, &contents); err != nil {
		return nil, &protocol.Error{Code: protocol.ErrBadEncoding,
			Msg: "malformed batch", Err: err}
	}
	if len(contents) == 0 {
		return nil, &protocol.Error{Code: protocol.ErrBadValue, Err: errEmptyBatch}
	}
	actions := make([]protocol.Action, 0, len(contents))
	for i, content := range contents {
		a, err := protocol.ParseAction(content)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// UnmarshalActionMsg parses msg as either a single action or a batch.
func UnmarshalActionMsg(msg []byte) ([]protocol.Action, error) {
	if IsBatch(msg) {
		return UnmarshalActions(msg)
	}
	a, err := protocol.ParseAction(msg)
	if err != nil {
		return nil, err
	}
	return []protocol.Action{a}, nil
}

// MarshalActionToFile serializes the given action to the given path.
// It refuses to overwrite an existing file.
func MarshalActionToFile(a protocol.Action, path string) error {
	msg, err := protocol.MarshalAction(a)
	if err != nil {
		return err
	}
	return utils.WriteFile(path, msg, 0600)
}

// MarshalActionsToFile serializes the given batch to the given path.
func MarshalActionsToFile(actions []protocol.Action, path string) error {
	msg, err := MarshalActions(actions)
	if err != nil {
		return err
	}
	return utils.WriteFile(path, msg, 0600)
}

// UnmarshalActionFile reads the action or batch stored at path.
func UnmarshalActionFile(path string) ([]protocol.Action, error) {
	msg, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalActionMsg(msg)
}
