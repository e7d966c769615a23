package importer

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// batchSchemaJSON constrains the modern envelope. Record fields beyond
// the identity triple stay open: counters come and go between seasons
// and an older service must not reject a newer device.
const batchSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "records"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "source": {"type": "string"},
    "records": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["eventKey", "matchNumber", "teamKey"],
        "properties": {
          "eventKey": {"type": "string", "minLength": 1},
          "matchNumber": {"type": "string", "minLength": 1},
          "teamKey": {"type": "string", "minLength": 1},
          "alliance": {"type": "string"},
          "scoutName": {"type": "string"}
        }
      }
    }
  }
}`

var batchSchema = jsonschema.MustCompileString("batch.json", batchSchemaJSON)

// validateEnvelope runs the modern envelope through its schema.
func validateEnvelope(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	if err := batchSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}
