package protocol

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Wire-message schemas, embedded so transports and tests validate against
// the same source of truth.
var schemaSources = map[string]string{
	"hello.schema.json": `{
	  "$schema": "https://json-schema.org/draft/2020-12/schema",
	  "type": "object",
	  "required": ["type", "protocol_version", "player_name"],
	  "properties": {
	    "type": {"const": "HELLO"},
	    "protocol_version": {"type": "string"},
	    "player_name": {"type": "string", "minLength": 1}
	  }
	}`,
	"cmd.schema.json": `{
	  "$schema": "https://json-schema.org/draft/2020-12/schema",
	  "type": "object",
	  "required": ["type", "protocol_version", "op"],
	  "properties": {
	    "type": {"const": "CMD"},
	    "protocol_version": {"type": "string"},
	    "req_id": {"type": "string"},
	    "op": {"enum": [
	      "SET_BLUEPRINT", "GET_STATE", "CAN_BUILD", "BUILD",
	      "AWARD", "REMOVE", "IMPORT_SCHEMATIC", "LIST_BLUEPRINTS"
	    ]},
	    "blueprint_id": {"type": "string"},
	    "force": {"type": "boolean"},
	    "type_id": {"type": "string"},
	    "count": {"type": "integer", "minimum": 1},
	    "filename": {"type": "string"},
	    "data": {"type": "string"},
	    "name": {"type": "string"},
	    "difficulty": {"enum": ["easy", "medium", "hard"]},
	    "description": {"type": "string"}
	  }
	}`,
}

// CompileSchema compiles one embedded wire schema by name.
func CompileSchema(name string) (*jsonschema.Schema, error) {
	src, ok := schemaSources[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return jsonschema.CompileString(name, src)
}
