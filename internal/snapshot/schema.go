package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema validates the top-level snapshot shape. Per-entry field
// requirements are checked in decodeRecord so that a single bad entry is
// skipped instead of discarding the whole document.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["exportDate", "totalTasks", "completedTasks", "pendingTasks", "tasks"],
  "properties": {
    "exportDate": {"type": "number"},
    "totalTasks": {"type": "integer", "minimum": 0},
    "completedTasks": {"type": "integer", "minimum": 0},
    "pendingTasks": {"type": "integer", "minimum": 0},
    "tasks": {
      "type": "array",
      "items": {"type": "object"}
    }
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("snapshot.schema.json", strings.NewReader(documentSchema)); err != nil {
		panic(fmt.Sprintf("snapshot schema resource: %v", err))
	}
	schema, err := compiler.Compile("snapshot.schema.json")
	if err != nil {
		panic(fmt.Sprintf("snapshot schema compile: %v", err))
	}
	return schema
}

// validateDocument checks raw JSON against the snapshot schema.
func validateDocument(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("validating snapshot: %w", err)
	}
	return nil
}
