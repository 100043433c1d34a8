package protocol

import (
	"bytes"
	"encoding/json"
	"testing"
)

func validate(t *testing.T, schema string, raw []byte) error {
	t.Helper()
	s, err := CompileSchema(schema)
	if err != nil {
		t.Fatalf("compile %s: %v", schema, err)
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	return s.Validate(v)
}

func TestHelloSchema(t *testing.T) {
	good := []byte(`{"type":"HELLO","protocol_version":"1.0","player_name":"steve"}`)
	if err := validate(t, "hello.schema.json", good); err != nil {
		t.Fatalf("valid hello rejected: %v", err)
	}

	bad := [][]byte{
		[]byte(`{"type":"CMD","protocol_version":"1.0","player_name":"steve"}`),
		[]byte(`{"type":"HELLO","protocol_version":"1.0"}`),
		[]byte(`{"type":"HELLO","protocol_version":"1.0","player_name":""}`),
	}
	for i, raw := range bad {
		if err := validate(t, "hello.schema.json", raw); err == nil {
			t.Fatalf("bad hello %d accepted", i)
		}
	}
}

func TestCmdSchema(t *testing.T) {
	good := [][]byte{
		[]byte(`{"type":"CMD","protocol_version":"1.0","req_id":"1","op":"SET_BLUEPRINT","blueprint_id":"cabin"}`),
		[]byte(`{"type":"CMD","protocol_version":"1.0","op":"BUILD","force":true}`),
		[]byte(`{"type":"CMD","protocol_version":"1.0","op":"AWARD","type_id":"stone","count":3}`),
		[]byte(`{"type":"CMD","protocol_version":"1.0","op":"IMPORT_SCHEMATIC","filename":"fort.nbt","data":"AAEC","name":"Fort","difficulty":"hard"}`),
		[]byte(`{"type":"CMD","protocol_version":"1.0","op":"LIST_BLUEPRINTS"}`),
	}
	for i, raw := range good {
		if err := validate(t, "cmd.schema.json", raw); err != nil {
			t.Fatalf("valid cmd %d rejected: %v", i, err)
		}
	}

	bad := [][]byte{
		[]byte(`{"type":"CMD","protocol_version":"1.0","op":"SELF_DESTRUCT"}`),
		[]byte(`{"type":"CMD","protocol_version":"1.0"}`),
		[]byte(`{"type":"CMD","protocol_version":"1.0","op":"AWARD","type_id":"stone","count":0}`),
		[]byte(`{"type":"CMD","protocol_version":"1.0","op":"IMPORT_SCHEMATIC","difficulty":"brutal"}`),
	}
	for i, raw := range bad {
		if err := validate(t, "cmd.schema.json", raw); err == nil {
			t.Fatalf("bad cmd %d accepted", i)
		}
	}
}

func TestCompileSchemaUnknown(t *testing.T) {
	if _, err := CompileSchema("nope.schema.json"); err == nil {
		t.Fatalf("unknown schema compiled")
	}
}

func TestDecodeBase(t *testing.T) {
	m, err := DecodeBase([]byte(`{"type":"CMD","protocol_version":"1.0","op":"BUILD"}`))
	if err != nil {
		t.Fatalf("DecodeBase: %v", err)
	}
	if m.Type != TypeCmd || m.ProtocolVersion != Version {
		t.Fatalf("base %+v", m)
	}
	if _, err := DecodeBase([]byte(`{`)); err == nil {
		t.Fatalf("malformed json decoded")
	}
}
