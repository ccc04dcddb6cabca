// Defines the canonical timestamp and the envelope which adds
// a timestamp to a message.

package protocol

import (
	"errors"
	"strconv"
	"time"
)

// clock is replaced in tests.
var clock = time.Now

// A Timestamp is a point in time encoded as the decimal number of
// seconds since the Unix epoch.
// A decoded Timestamp keeps the text it was read from; only SinceEpoch
// interprets it. The zero Timestamp holds no time and cannot be encoded.
type Timestamp struct {
	text string
	set  bool
}

var errEmptyTimestamp = errors.New("empty timestamp")

// Now returns the current Timestamp.
// It panics if the system clock reads a time before the Unix epoch,
// which means the host environment is broken.
func Now() Timestamp {
	now := clock()
	if now.Before(time.Unix(0, 0)) {
		panic("[pkd] system time is before the unix epoch")
	}
	return TimestampFromTime(now)
}

// TimestampFromTime returns the Timestamp of t, truncated to seconds.
// Times before the Unix epoch map to the epoch.
func TimestampFromTime(t time.Time) Timestamp {
	secs := t.Unix()
	if secs < 0 {
		secs = 0
	}
	return Timestamp{text: strconv.FormatInt(secs, 10), set: true}
}

// Epoch returns the Timestamp of the Unix epoch.
func Epoch() Timestamp {
	return Timestamp{text: "0", set: true}
}

// SinceEpoch returns the time elapsed between the Unix epoch and ts.
// It returns false if ts isn't a decimal number of seconds.
func (ts Timestamp) SinceEpoch() (time.Duration, bool) {
	secs, err := strconv.ParseUint(ts.text, 10, 64)
	if err != nil || secs > uint64(1<<63-1)/uint64(time.Second) {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// Time returns ts as a time.Time, if it is numeric.
func (ts Timestamp) Time() (time.Time, bool) {
	d, ok := ts.SinceEpoch()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(d/time.Second), 0), true
}

// String returns the canonical text of ts.
func (ts Timestamp) String() string {
	return ts.text
}

// IsZero reports whether ts holds no time.
func (ts Timestamp) IsZero() bool {
	return !ts.set
}

// MarshalJSON encodes ts as a JSON string.
// It returns ErrBadValue for the zero Timestamp.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.set {
		return nil, wrapError(ErrBadValue, errEmptyTimestamp, "")
	}
	return encodeJSONString(ts.text)
}

// UnmarshalJSON decodes ts from any JSON string.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString(data)
	if err != nil {
		return err
	}
	*ts = Timestamp{text: s, set: true}
	return nil
}

// TimeField is the member name of a Timestamped's timestamp.
const TimeField = "time"

// Timestamped adds a Timestamp to a message. On the wire the
// timestamp is written next to Inner's own members, not as a nested
// object, so Inner must not have a member named "time".
type Timestamped[T any] struct {
	Time  Timestamp
	Inner T
}

// NewTimestamped returns inner stamped with time ts.
func NewTimestamped[T any](ts Timestamp, inner T) Timestamped[T] {
	return Timestamped[T]{Time: ts, Inner: inner}
}

// TimestampedNow returns inner stamped with the current time.
func TimestampedNow[T any](inner T) Timestamped[T] {
	return NewTimestamped(Now(), inner)
}

// MarshalJSON writes "time" followed by Inner's members.
func (t Timestamped[T]) MarshalJSON() ([]byte, error) {
	return flatten(t.Inner, namedValue{TimeField, t.Time})
}

// UnmarshalJSON reads "time" and hands every other member to Inner.
func (t *Timestamped[T]) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	var ts Timestamp
	if err := requiredField(obj, TimeField, &ts); err != nil {
		return err
	}
	var inner T
	if err := decodeValue(obj.rest(), &inner); err != nil {
		return err
	}
	t.Time = ts
	t.Inner = inner
	return nil
}
