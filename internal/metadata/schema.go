// Package metadata enforces the feature property schema: every emitted map
// feature carries a fixed required field set, an optional field set, and a
// completeness score over both.
package metadata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RequiredFields must be present on every feature. A missing required field
// is an error, never a silently incomplete feature.
var RequiredFields = []string{
	"id", "type", "kind", "epoch", "jd", "gmst", "obliquity",
	"coords", "line", "source", "calculation_time_ms",
}

// OptionalFields may be present; they only affect the completeness score.
var OptionalFields = []string{
	"number", "natal", "flags", "se_version", "color", "style",
	"z_index", "hit_radius", "influence_radius_miles", "render_orb_only",
	"custom",
}

// Completeness weighting: required presence dominates.
const (
	requiredWeight = 0.8
	optionalWeight = 0.2
)

// schemaDocument is the machine-readable schema served to clients and used
// for validation. Kept as a plain map so it can be marshalled verbatim.
var schemaDocument = map[string]any{
	"$schema":  "https://json-schema.org/draft/2020-12/schema",
	"title":    "acg feature properties",
	"type":     "object",
	"required": toAnySlice(RequiredFields),
	"properties": map[string]any{
		"id":        map[string]any{"type": "string", "minLength": 1},
		"type":      map[string]any{"type": "string"},
		"kind":      map[string]any{"enum": []any{"line", "paran", "orb"}},
		"epoch":     map[string]any{"type": "string"},
		"jd":        map[string]any{"type": "number"},
		"gmst":      map[string]any{"type": "number", "minimum": 0, "exclusiveMaximum": 360},
		"obliquity": map[string]any{"type": "number"},
		"coords": map[string]any{
			"type":     "object",
			"required": []any{"ra", "dec"},
			"properties": map[string]any{
				"ra":       map[string]any{"type": "number"},
				"dec":      map[string]any{"type": "number"},
				"lambda":   map[string]any{"type": "number"},
				"beta":     map[string]any{"type": "number"},
				"distance": map[string]any{"type": "number"},
				"speed":    map[string]any{"type": "number"},
			},
		},
		"line": map[string]any{
			"type":     "object",
			"required": []any{"line_type", "method"},
			"properties": map[string]any{
				"angle":      map[string]any{"type": "number"},
				"aspect":     map[string]any{"type": "number"},
				"line_type":  map[string]any{"type": "string"},
				"method":     map[string]any{"type": "string"},
				"segment_id": map[string]any{"type": "string"},
				"orb":        map[string]any{"type": "number"},
			},
		},
		"source":                 map[string]any{"type": "string"},
		"calculation_time_ms":    map[string]any{"type": "number", "minimum": 0},
		"number":                 map[string]any{"type": "integer"},
		"natal":                  map[string]any{"type": "object"},
		"flags":                  map[string]any{"type": "integer"},
		"se_version":             map[string]any{"type": "string"},
		"color":                  map[string]any{"type": "string"},
		"style":                  map[string]any{"type": "object"},
		"z_index":                map[string]any{"type": "integer"},
		"hit_radius":             map[string]any{"type": "number"},
		"influence_radius_miles": map[string]any{"type": "number"},
		"render_orb_only":        map[string]any{"type": "boolean"},
		"custom":                 map[string]any{"type": "object"},
	},
}

var compiledSchema = mustCompileSchema(schemaDocument)

func mustCompileSchema(doc map[string]any) *jsonschema.Schema {
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("marshal feature schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("feature.json", strings.NewReader(string(raw))); err != nil {
		panic(fmt.Sprintf("register feature schema: %v", err))
	}
	s, err := compiler.Compile("feature.json")
	if err != nil {
		panic(fmt.Sprintf("compile feature schema: %v", err))
	}
	return s
}

// SchemaDocument returns the schema as served to clients.
func SchemaDocument() map[string]any {
	return schemaDocument
}

// MissingFieldsError reports required fields absent from a feature.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("feature properties missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Validate checks feature properties against the schema. Missing required
// fields come back as a MissingFieldsError; other violations as the compiled
// schema's own error.
func Validate(props map[string]any) error {
	var missing []string
	for _, f := range RequiredFields {
		if _, ok := props[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingFieldsError{Fields: missing}
	}
	return compiledSchema.Validate(normalize(props))
}

// Completeness scores property presence: required fields carry 80% of the
// weight, optional fields 20%. A fully populated feature scores 1.0.
func Completeness(props map[string]any) float64 {
	var req, opt int
	for _, f := range RequiredFields {
		if _, ok := props[f]; ok {
			req++
		}
	}
	for _, f := range OptionalFields {
		if _, ok := props[f]; ok {
			opt++
		}
	}
	return requiredWeight*float64(req)/float64(len(RequiredFields)) +
		optionalWeight*float64(opt)/float64(len(OptionalFields))
}

// normalize round-trips properties through JSON so typed values (structs,
// ints, float32) validate the same way they will appear on the wire.
func normalize(props map[string]any) any {
	raw, err := json.Marshal(props)
	if err != nil {
		return props
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return props
	}
	return out
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
