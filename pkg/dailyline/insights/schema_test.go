package insights

import (
	"strings"
	"testing"

	"github.com/invopop/jsonschema"
)

func TestSchema_DescribesEveryCard(t *testing.T) {
	schema := Schema()
	if schema.Properties == nil {
		t.Fatal("schema has no properties")
	}
	for _, name := range CardNames {
		if _, ok := schema.Properties.Get(name); !ok {
			t.Errorf("schema missing card %s", name)
		}
	}

	required := make(map[string]bool)
	for _, r := range schema.Required {
		required[r] = true
	}
	for _, name := range CardNames {
		if !required[name] {
			t.Errorf("card %s should be required", name)
		}
	}
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON: %v", err)
	}
	text := string(data)
	for _, want := range []string{SchemaID, `"insufficient"`, `"no-change"`, `"watch"`, `"null"`} {
		if !strings.Contains(text, want) {
			t.Errorf("schema JSON missing %s", want)
		}
	}
	if !strings.Contains(text, "\n  \"") {
		t.Error("schema JSON is not indented")
	}
}

func acceptsNull(s *jsonschema.Schema) bool {
	if s.Type == "null" {
		return true
	}
	for _, alt := range s.OneOf {
		if alt.Type == "null" {
			return true
		}
	}
	return false
}

func TestSchema_AcceptsNullsOfEmptyReport(t *testing.T) {
	data, err := Build(nil, "2026-02-08").MarshalCanonical()
	if err != nil {
		t.Fatalf("MarshalCanonical: %v", err)
	}
	var doc map[string]map[string]interface{}
	if err := reportJSON.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	schema := Schema()
	nulls := 0
	for _, card := range CardNames {
		cardSchema, ok := schema.Properties.Get(card)
		if !ok {
			t.Fatalf("schema missing card %s", card)
		}
		for field, value := range doc[card] {
			prop, ok := cardSchema.Properties.Get(field)
			if !ok {
				t.Errorf("schema missing %s.%s", card, field)
				continue
			}
			if value == nil {
				nulls++
				if !acceptsNull(prop) {
					t.Errorf("%s.%s is null in the report but the schema rejects null", card, field)
				}
			}
		}
		if summary, ok := cardSchema.Properties.Get("summary"); ok && acceptsNull(summary) {
			t.Errorf("%s.summary should not accept null", card)
		}
	}
	if nulls != 9 {
		t.Errorf("null card fields = %d, want 9", nulls)
	}

	timeline, _ := schema.Properties.Get(CardSentimentTimeline)
	points, _ := timeline.Properties.Get("weeklyPoints")
	if points == nil || points.Items == nil {
		t.Fatal("weeklyPoints has no item schema")
	}
	avg, ok := points.Items.Properties.Get("average")
	if !ok || !acceptsNull(avg) {
		t.Error("weeklyPoints[].average should accept null")
	}
	for _, p := range doc[CardSentimentTimeline]["weeklyPoints"].([]interface{}) {
		if p.(map[string]interface{})["average"] != nil {
			t.Errorf("empty report point %v should have a null average", p)
		}
	}
}
