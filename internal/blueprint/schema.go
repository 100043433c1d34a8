package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// defSchema guards blueprint definitions arriving from disk or from the
// import API before they are decoded.
const defSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "name", "difficulty", "dim", "blocks"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "difficulty": {"enum": ["easy", "medium", "hard"]},
    "description": {"type": "string"},
    "dim": {
      "type": "array",
      "items": {"type": "integer", "minimum": 1},
      "minItems": 3,
      "maxItems": 3
    },
    "blocks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["pos", "block"],
        "properties": {
          "pos": {
            "type": "array",
            "items": {"type": "integer", "minimum": 0},
            "minItems": 3,
            "maxItems": 3
          },
          "block": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var compileDefSchema = sync.OnceValue(func() *jsonschema.Schema {
	s, err := jsonschema.CompileString("blueprint.schema.json", defSchema)
	if err != nil {
		panic(err) // static schema, cannot fail
	}
	return s
})

// ValidateDefJSON checks a raw blueprint definition against the embedded
// schema.
func ValidateDefJSON(raw []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("blueprint def: %w", err)
	}
	if err := compileDefSchema().Validate(v); err != nil {
		// jsonschema errors are multi-line; keep the first line for logs.
		msg := err.Error()
		if i := strings.IndexByte(msg, '\n'); i > 0 {
			msg = msg[:i]
		}
		return fmt.Errorf("blueprint def: %s", msg)
	}
	return nil
}
