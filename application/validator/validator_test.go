package validator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fedi-e2ee/pkd-go/application"
	"github.com/fedi-e2ee/pkd-go/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestValidator(t *testing.T, maxSize int64, allowed ...string) (*Validator, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	conf := NewConfig("", "toml", nil, maxSize, allowed)
	v, err := NewWithLogger(conf, application.WrapLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	return v, logs
}

func TestValidateAcceptsEveryAction(t *testing.T) {
	v, logs := newTestValidator(t, 0)
	for _, a := range protocol.NewTestActions(t) {
		msg, err := protocol.MarshalAction(a)
		if err != nil {
			t.Fatal(err)
		}
		out, err := v.Validate(msg)
		if err != nil {
			t.Fatal(a.Name(), err)
		}
		if !protocol.ActionsEqual(a, out) {
			t.Error(a.Name(), "changed while validating")
		}
	}
	accepted := logs.FilterMessage("accepted action").All()
	if len(accepted) != len(protocol.ActionNames()) {
		t.Fatal("Expect one log entry per action, got", len(accepted))
	}
	if accepted[0].ContextMap()["action"] != string(protocol.ActionAddKey) {
		t.Error("Unexpected log context", accepted[0].ContextMap())
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	v, logs := newTestValidator(t, 0)
	_, err := v.Validate([]byte(`{"action":"checkpoint","message":{"time":"1"}}`))
	if protocol.CodeOf(err) != protocol.ErrMissingField {
		t.Fatal("Expect", protocol.ErrMissingField, "got", err)
	}
	rejected := logs.FilterMessage("rejected action").All()
	if len(rejected) != 1 {
		t.Fatal("Expect one rejection, got", len(rejected))
	}
	if rejected[0].ContextMap()["field"] != "message.from-directory" {
		t.Error("Unexpected log context", rejected[0].ContextMap())
	}
}

func TestValidateMaxSize(t *testing.T) {
	v, _ := newTestValidator(t, 16)
	_, err := v.Validate([]byte(`{"action":"checkpoint"}`))
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Error("Expect", ErrMessageTooLarge, "got", err)
	}
}

func TestValidateAllowList(t *testing.T) {
	v, logs := newTestValidator(t, 0, "checkpoint")
	actions := protocol.NewTestActions(t)
	msg, err := protocol.MarshalAction(actions[0])
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Validate(msg); !errors.Is(err, ErrActionNotAllowed) {
		t.Error("Expect", ErrActionNotAllowed, "got", err)
	}
	if logs.FilterField(zap.String("reason", "not allowed")).Len() != 1 {
		t.Error("Expect the rejection to be logged")
	}

	msg, err = protocol.MarshalAction(actions[9])
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Validate(msg); err != nil {
		t.Error(err)
	}
}

func TestUnknownAllowedAction(t *testing.T) {
	conf := NewConfig("", "toml", nil, 0, []string{"add-key", "delete-key"})
	_, err := NewWithLogger(conf, application.WrapLogger(zap.NewNop()))
	if protocol.CodeOf(err) != protocol.ErrUnknownActionTag {
		t.Error("Expect", protocol.ErrUnknownActionTag, "got", err)
	}
}

func TestValidateBatch(t *testing.T) {
	v, logs := newTestValidator(t, 0)
	actions := protocol.NewTestActions(t)
	msg, err := application.MarshalActions(actions)
	if err != nil {
		t.Fatal(err)
	}
	out, err := v.ValidateBatch(msg)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(actions) {
		t.Fatal("Expect", len(actions), "actions, got", len(out))
	}
	if logs.FilterMessage("accepted action").Len() != len(actions) {
		t.Error("Expect one log entry per action")
	}

	strict, _ := newTestValidator(t, 0, "add-key")
	if _, err := strict.ValidateBatch(msg); !errors.Is(err, ErrActionNotAllowed) {
		t.Error("Expect", ErrActionNotAllowed, "got", err)
	}

	empty, emptyLogs := newTestValidator(t, 0)
	if out, err := empty.ValidateBatch([]byte(`[]`)); out != nil || protocol.CodeOf(err) != protocol.ErrBadValue {
		t.Error("Expect", protocol.ErrBadValue, "for an empty batch, got", err)
	}
	if emptyLogs.FilterMessage("rejected action").Len() != 1 {
		t.Error("Expect the empty batch to be logged as rejected")
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "checkpoint.json")
	if err := application.MarshalActionToFile(protocol.NewTestActions(t)[9], file); err != nil {
		t.Fatal(err)
	}
	v, _ := newTestValidator(t, 0)
	out, err := v.ValidateFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Name() != protocol.ActionCheckpoint {
		t.Error("Unexpected actions", out)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatal(err)
	}
	small, logs := newTestValidator(t, info.Size()-1)
	if _, err := small.ValidateFile(file); err == nil {
		t.Error("Expect an error for a file over the limit")
	}
	if logs.FilterMessage("cannot read action file").Len() != 1 {
		t.Error("Expect the read failure to be logged")
	}
}
