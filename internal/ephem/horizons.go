package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"astromap/internal/astro"
)

const (
	// DefaultHorizonsURL is the JPL Horizons JSON API endpoint.
	DefaultHorizonsURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	defaultHorizonsTimeout = 30 * time.Second
)

// horizonsCommands maps body ids to Horizons COMMAND designations.
// Fixed stars and chart points have no Horizons record; requests for them
// return ErrUnsupportedBody and the caller excludes the body.
var horizonsCommands = map[string]string{
	"sun":     "10",
	"moon":    "301",
	"mercury": "199",
	"venus":   "299",
	"mars":    "499",
	"jupiter": "599",
	"saturn":  "699",
	"uranus":  "799",
	"neptune": "899",
	"pluto":   "999",
	"ceres":   "1;",
	"chiron":  "2060;",
}

// HorizonsProvider queries the JPL Horizons API for geocentric positions.
type HorizonsProvider struct {
	baseURL string
	client  *http.Client
}

// NewHorizonsProvider creates a Horizons API client. baseURL and timeout fall
// back to defaults when zero.
func NewHorizonsProvider(baseURL string, timeout time.Duration) *HorizonsProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultHorizonsURL
	}
	if timeout <= 0 {
		timeout = defaultHorizonsTimeout
	}
	return &HorizonsProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string { return "horizons" }

// Obliquity implements Provider.
func (p *HorizonsProvider) Obliquity(jd float64) float64 {
	return astro.MeanObliquity(jd)
}

// SiderealTime implements Provider.
func (p *HorizonsProvider) SiderealTime(jd float64) float64 {
	return astro.GMST(jd)
}

// Position implements Provider. One body, one instant, geocentric.
func (p *HorizonsProvider) Position(ctx context.Context, bodyID string, jd float64, flags int) (Coordinates, error) {
	command, ok := horizonsCommands[bodyID]
	if !ok {
		return Coordinates{}, fmt.Errorf("horizons: %w: %s", ErrUnsupportedBody, bodyID)
	}

	// Values must be single-quoted per the Horizons API convention.
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%s'", command))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'500@399'")
	params.Set("QUANTITIES", "'1,31'") // 1 = astrometric RA/Dec, 31 = observer ecliptic lon/lat
	params.Set("ANG_FORMAT", "DEG")
	params.Set("CSV_FORMAT", "YES")
	params.Set("START_TIME", fmt.Sprintf("'JD%.8f'", jd))
	params.Set("STOP_TIME", fmt.Sprintf("'JD%.8f'", jd+1.0/1440))
	params.Set("STEP_SIZE", "'1 m'")

	reqURL := p.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Coordinates{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Coordinates{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Coordinates{}, fmt.Errorf("reading horizons response failed: %w", err)
	}

	coords, err := parseHorizonsObserverTable(body)
	if err != nil {
		return Coordinates{}, fmt.Errorf("horizons parse failed for %s: %w", bodyID, err)
	}
	return complete(coords, p.Obliquity(jd)), nil
}

type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
}

// parseHorizonsObserverTable extracts the first data row between the $$SOE
// and $$EOE markers of a CSV observer table.
func parseHorizonsObserverTable(body []byte) (Coordinates, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Coordinates{}, fmt.Errorf("invalid JSON envelope: %w", err)
	}

	soe := strings.Index(resp.Result, "$$SOE")
	eoe := strings.Index(resp.Result, "$$EOE")
	if soe == -1 || eoe == -1 || soe >= eoe {
		return Coordinates{}, fmt.Errorf("ephemeris data markers not found")
	}

	for _, line := range strings.Split(resp.Result[soe+5:eoe], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		coords, err := parseObserverLine(line)
		if err != nil {
			continue // skip unparseable rows
		}
		return coords, nil
	}
	return Coordinates{}, fmt.Errorf("no parseable ephemeris rows")
}

// parseObserverLine parses one CSV row. With QUANTITIES='1,31' the numeric
// columns are, in order: RA, Dec, observer ecliptic longitude, latitude.
// Date and flag columns are non-numeric and skipped.
func parseObserverLine(line string) (Coordinates, error) {
	fields := strings.Split(line, ",")
	values := make([]float64, 0, 4)
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
		if len(values) == 4 {
			break
		}
	}
	if len(values) < 4 {
		return Coordinates{}, fmt.Errorf("expected 4 numeric columns, found %d", len(values))
	}
	return Coordinates{
		RightAscension: astro.Wrap360(values[0]),
		Declination:    values[1],
		EclipticLon:    astro.Wrap360(values[2]),
		EclipticLat:    values[3],
	}, nil
}
