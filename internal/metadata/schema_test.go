package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		ID:        "sun_MC",
		BodyType:  "planet",
		Kind:      KindLine,
		Epoch:     time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC),
		JD:        2460389.6292,
		GMST:      174.3,
		Obliquity: 23.4367,
		Coords:    map[string]any{"ra": 0.4, "dec": 0.17, "lambda": 0.01, "beta": 0.0},
		Line:      LineInfo{Angle: -174.0, Type: "MC", Method: "meridian_closed_form"},
		Elapsed:   3 * time.Millisecond,
	}
}

func TestManagerProperties(t *testing.T) {
	m := NewManager("analytic", "")
	props, err := m.Properties(validInput())
	require.NoError(t, err)

	for _, f := range RequiredFields {
		assert.Contains(t, props, f)
	}
	assert.Equal(t, "analytic", props["source"])
	assert.Equal(t, "2024-03-20T03:06:00Z", props["epoch"])
	assert.InDelta(t, 3.0, props["calculation_time_ms"], 1e-9)

	// Zero-valued optionals stay absent.
	for _, f := range []string{"number", "natal", "color", "render_orb_only", "custom", "se_version"} {
		assert.NotContains(t, props, f)
	}
}

func TestManagerPropertiesOptionals(t *testing.T) {
	m := NewManager("horizons", "2.4.02")
	in := validInput()
	in.Number = 2060
	in.InfluenceRadiusMiles = 150
	in.RenderOrbOnly = true
	in.Natal = map[string]any{"sign": "aries"}
	in.Custom = map[string]any{"note": "x"}

	props, err := m.Properties(in)
	require.NoError(t, err)
	assert.Equal(t, 2060, props["number"])
	assert.Equal(t, 150.0, props["influence_radius_miles"])
	assert.Equal(t, true, props["render_orb_only"])
	assert.Equal(t, "2.4.02", props["se_version"])
}

func TestValidateMissingRequired(t *testing.T) {
	props := map[string]any{"id": "sun_MC", "type": "planet"}
	err := Validate(props)
	require.Error(t, err)

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Fields, "jd")
	assert.Contains(t, missing.Fields, "coords")
	assert.NotContains(t, missing.Fields, "id")
}

func TestValidateRejectsBadValues(t *testing.T) {
	m := NewManager("analytic", "")
	in := validInput()
	in.GMST = 400 // out of [0, 360)
	_, err := m.Properties(in)
	assert.Error(t, err)
}

func TestCompleteness(t *testing.T) {
	m := NewManager("analytic", "")

	base, err := m.Properties(validInput())
	require.NoError(t, err)
	// All required present, no optionals.
	assert.InDelta(t, 0.8, Completeness(base), 1e-9)

	in := validInput()
	in.Number = 10
	in.Natal = map[string]any{"sign": "aries"}
	in.Flags = 2
	in.Color = "#ffcc00"
	in.Style = map[string]any{"width": 2}
	in.ZIndex = 5
	in.HitRadius = 8
	in.InfluenceRadiusMiles = 150
	in.RenderOrbOnly = true
	in.Custom = map[string]any{}
	full, err := NewManager("analytic", "2.4.02").Properties(in)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, Completeness(full), 1e-9)

	// Half the weight of a required field is worth more than any optional.
	assert.Less(t, Completeness(map[string]any{"custom": map[string]any{}}), 0.1)
}

func TestSchemaDocumentLists(t *testing.T) {
	doc := SchemaDocument()
	req, ok := doc["required"].([]any)
	require.True(t, ok)
	assert.Len(t, req, len(RequiredFields))

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, f := range append(append([]string{}, RequiredFields...), OptionalFields...) {
		assert.Contains(t, props, f)
	}
}
