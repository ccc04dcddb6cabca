package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

var jsonNull = []byte("null")

// A member is one name/value pair of a JSON object, in input order.
type member struct {
	name  string
	value json.RawMessage
}

// An object is a strictly parsed JSON object. Decoders take the members
// they know and finish reports whatever is left as unexpected, so no
// member is silently dropped.
type object struct {
	members []member
	index   map[string]int
	taken   []bool
}

// parseObject parses data as a single JSON object.
// Malformed JSON, duplicated member names and trailing data are rejected.
func parseObject(data []byte) (*object, error) {
	if !utf8.Valid(data) {
		return nil, newError(ErrBadEncoding, "invalid UTF-8")
	}
	if err := checkSurrogates(data); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, wrapError(ErrBadEncoding, err, "malformed JSON")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, newError(ErrBadValue, "expected a JSON object")
	}
	obj := &object{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, wrapError(ErrBadEncoding, err, "malformed JSON")
		}
		name, ok := tok.(string)
		if !ok {
			return nil, newError(ErrBadEncoding, "malformed JSON object member")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &Error{Code: ErrBadEncoding, Field: name, Msg: "malformed JSON", Err: err}
		}
		if _, dup := obj.index[name]; dup {
			return nil, &Error{Code: ErrUnexpectedField, Field: name, Msg: "duplicate member"}
		}
		obj.index[name] = len(obj.members)
		obj.members = append(obj.members, member{name: name, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, wrapError(ErrBadEncoding, err, "malformed JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, newError(ErrBadEncoding, "trailing data after JSON object")
	}
	obj.taken = make([]bool, len(obj.members))
	return obj, nil
}

// take returns the value of the named member and marks it as consumed.
// A null value is reported as absent.
func (o *object) take(name string) (json.RawMessage, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	o.taken[i] = true
	raw := o.members[i].value
	if bytes.Equal(raw, jsonNull) {
		return nil, false
	}
	return raw, true
}

// finish fails with ErrUnexpectedField on the first member nobody took.
func (o *object) finish() error {
	for i, m := range o.members {
		if !o.taken[i] {
			return &Error{Code: ErrUnexpectedField, Field: m.name}
		}
	}
	return nil
}

// rest returns the members nobody took as a JSON object, in input order.
func (o *object) rest() []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for i, m := range o.members {
		if o.taken[i] {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, _ := marshalJSON(m.name)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// requiredField decodes the named member into dst.
func requiredField[T any](o *object, name string, dst *T) error {
	raw, ok := o.take(name)
	if !ok {
		return &Error{Code: ErrMissingField, Field: name}
	}
	return inField(name, decodeValue(raw, dst))
}

// optionalField decodes the named member if it is present.
func optionalField[T any](o *object, name string) (*T, error) {
	raw, ok := o.take(name)
	if !ok {
		return nil, nil
	}
	v := new(T)
	if err := decodeValue(raw, v); err != nil {
		return nil, inField(name, err)
	}
	return v, nil
}

// decodeValue decodes a single JSON value into dst, reporting failures
// with this package's error codes.
func decodeValue(raw json.RawMessage, dst interface{}) error {
	switch d := dst.(type) {
	case json.Unmarshaler:
		return d.UnmarshalJSON(raw)
	case *string:
		s, err := decodeJSONString(raw)
		if err != nil {
			return err
		}
		*d = s
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return wrapError(ErrBadValue, err, "")
		}
		return wrapError(ErrBadEncoding, err, "")
	}
	return nil
}

// decodeJSONString decodes data, which must be a JSON string.
func decodeJSONString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", newError(ErrBadValue, "expected a JSON string")
	}
	if err := checkSurrogates(data); err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", wrapError(ErrBadEncoding, err, "malformed JSON string")
	}
	return s, nil
}

// checkSurrogates rejects a \u escape holding half of a UTF-16 surrogate
// pair on its own, which encoding/json would replace with U+FFFD.
func checkSurrogates(data []byte) error {
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			continue
		}
		i++
		r, ok := unicodeEscape(data, i)
		if !ok {
			continue
		}
		i += 4
		if r < 0xd800 || r > 0xdfff {
			continue
		}
		if r < 0xdc00 && i+1 < len(data) && data[i+1] == '\\' {
			if lo, ok := unicodeEscape(data, i+2); ok && lo >= 0xdc00 && lo <= 0xdfff {
				i += 6
				continue
			}
		}
		return newError(ErrBadEncoding, "unpaired UTF-16 surrogate escape")
	}
	return nil
}

// unicodeEscape decodes the \uXXXX escape whose 'u' is at data[i].
func unicodeEscape(data []byte, i int) (rune, bool) {
	if i+4 >= len(data) || data[i] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(string(data[i+1:i+5]), 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func encodeJSONString(s string) ([]byte, error) {
	return marshalJSON(s)
}

// marshalJSON is json.Marshal without HTML escaping,
// so that text such as directory URLs is written as-is.
func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// A namedValue is a member written ahead of a flattened object.
type namedValue struct {
	name  string
	value interface{}
}

// flatten writes the head members followed by every member of the JSON
// object inner, at one nesting level. inner must not use a head name.
func flatten(inner interface{}, head ...namedValue) ([]byte, error) {
	innerJSON, err := marshalJSON(inner)
	if err != nil {
		return nil, memberError(inner, err)
	}
	obj, err := parseObject(innerJSON)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range head {
		if _, clash := obj.index[h.name]; clash {
			return nil, &Error{Code: ErrFlattenNameCollision, Field: h.name}
		}
		name, err := marshalJSON(h.name)
		if err != nil {
			return nil, err
		}
		val, err := marshalJSON(h.value)
		if err != nil {
			return nil, inField(h.name, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	if len(obj.members) > 0 {
		if len(head) > 0 {
			buf.WriteByte(',')
		}
		body := obj.rest()
		buf.Write(body[1 : len(body)-1])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject parses data as a JSON object, lets read take its members
// and rejects any member left over.
func decodeObject(data []byte, read func(o *object) error) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	if err := read(obj); err != nil {
		return err
	}
	return obj.finish()
}

// memberError attributes err, raised while encoding the struct v, to the
// first member of v which fails to encode on its own. encoding/json
// reports no member names, so they are recovered here on failure.
// Members with their own MarshalJSON already name their inner path.
func memberError(v interface{}, err error) error {
	if _, ok := v.(json.Marshaler); ok {
		return err
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return err
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return err
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		fv := rv.Field(i).Interface()
		_, ferr := marshalJSON(fv)
		if ferr == nil {
			continue
		}
		ferr = memberError(fv, ferr)
		if f.Anonymous && name == "" {
			return ferr
		}
		if name == "" {
			name = f.Name
		}
		return inField(name, ferr)
	}
	return err
}
