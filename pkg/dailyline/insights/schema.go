package insights

import (
	"bytes"
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the report schema.
const SchemaID = "https://dailyline.app/schemas/insights-report.json"

// Schema describes the encoded Report as a JSON Schema document. Every card
// field is required; nullable fields accept their value type or null.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&Report{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "AI insights report"
	return schema
}

// SchemaJSON returns the indented schema document.
func SchemaJSON() ([]byte, error) {
	data, err := reportJSON.Marshal(Schema())
	if err != nil {
		return nil, err
	}
	// Schema has its own MarshalJSON, which the encoder does not re-indent.
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
