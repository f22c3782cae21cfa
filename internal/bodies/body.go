// Package bodies holds the static celestial body catalog. The catalog is
// loaded once into an immutable snapshot; edits to the backing file swap the
// whole snapshot rather than mutating the live table.
package bodies

import "strings"

// Category classifies a celestial body for resolution and rendering.
type Category string

const (
	CategoryPlanet    Category = "planet"
	CategoryAsteroid  Category = "asteroid"
	CategoryNode      Category = "node"
	CategoryPoint     Category = "point"
	CategoryFixedStar Category = "fixed_star"
	CategoryDwarf     Category = "dwarf"
)

// ParseCategory maps a config string to a Category. Unknown values return
// false so the loader can reject the entry.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryPlanet:
		return CategoryPlanet, true
	case CategoryAsteroid:
		return CategoryAsteroid, true
	case CategoryNode:
		return CategoryNode, true
	case CategoryPoint:
		return CategoryPoint, true
	case CategoryFixedStar:
		return CategoryFixedStar, true
	case CategoryDwarf:
		return CategoryDwarf, true
	default:
		return "", false
	}
}

// Body is one catalog entry. CatalogNumber carries the minor-planet or star
// catalog designation where one exists (Chiron 2060, Ceres 1, ...).
type Body struct {
	ID                   string   `mapstructure:"id" yaml:"id" json:"id"`
	Name                 string   `mapstructure:"name" yaml:"name" json:"name"`
	Category             Category `mapstructure:"category" yaml:"category" json:"category"`
	CatalogNumber        int      `mapstructure:"catalog_number" yaml:"catalog_number,omitempty" json:"catalog_number,omitempty"`
	InfluenceRadiusMiles float64  `mapstructure:"influence_radius_miles" yaml:"influence_radius_miles" json:"influence_radius_miles"`
	RenderOrbOnly        bool     `mapstructure:"render_orb_only" yaml:"render_orb_only,omitempty" json:"render_orb_only"`
}
