package ephem

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"astromap/internal/astro"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResult = `*******************************************************************************
 Date__(UT)__HR:MN, , ,R.A._(ICRF), DEC_(ICRF), ObsEcLon, ObsEcLat,
$$SOE
 2024-Jan-01 00:00, , ,  281.22133,  -23.03471, 280.00832, 0.00018,
$$EOE
*******************************************************************************`

func horizonsBody(t *testing.T) []byte {
	t.Helper()
	payload := map[string]any{
		"signature": map[string]string{"version": "1.2", "source": "NASA/JPL Horizons API"},
		"result":    sampleResult,
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return b
}

func TestParseObserverLine(t *testing.T) {
	c, err := parseObserverLine(" 2024-Jan-01 00:00, , ,  281.22133,  -23.03471, 280.00832, 0.00018,")
	require.NoError(t, err)
	assert.InDelta(t, 281.22133, c.RightAscension, 1e-9)
	assert.InDelta(t, -23.03471, c.Declination, 1e-9)
	assert.InDelta(t, 280.00832, c.EclipticLon, 1e-9)
	assert.InDelta(t, 0.00018, c.EclipticLat, 1e-9)

	_, err = parseObserverLine("2024-Jan-01 00:00, , , 281.2,")
	assert.Error(t, err, "rows with missing columns are rejected")
}

func TestParseHorizonsObserverTable(t *testing.T) {
	c, err := parseHorizonsObserverTable(horizonsBody(t))
	require.NoError(t, err)
	assert.InDelta(t, 281.22133, c.RightAscension, 1e-9)

	_, err = parseHorizonsObserverTable([]byte(`{"result":"no markers here"}`))
	assert.Error(t, err)

	_, err = parseHorizonsObserverTable([]byte("not json"))
	assert.Error(t, err)
}

func TestHorizonsProviderPosition(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(horizonsBody(t))
	}))
	defer srv.Close()

	p := NewHorizonsProvider(srv.URL, 5*time.Second)
	c, err := p.Position(context.Background(), "sun", 2460310.5, 0)
	require.NoError(t, err)

	assert.InDelta(t, 281.22133, c.RightAscension, 1e-9)
	assert.InDelta(t, 280.00832, c.EclipticLon, 1e-9)
	assert.Equal(t, []string{"'10'"}, gotQuery["COMMAND"])
	assert.Equal(t, []string{"'500@399'"}, gotQuery["CENTER"])
}

func TestHorizonsProviderUnsupportedBody(t *testing.T) {
	p := NewHorizonsProvider("http://unused.invalid", time.Second)
	_, err := p.Position(context.Background(), "regulus", 2460310.5, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedBody), "fixed stars have no Horizons record")
}

func TestHorizonsProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewHorizonsProvider(srv.URL, time.Second)
	_, err := p.Position(context.Background(), "moon", 2460310.5, 0)
	assert.Error(t, err)
}

func TestHorizonsLocalAngles(t *testing.T) {
	p := NewHorizonsProvider("", 0)
	assert.InDelta(t, astro.GMST(astro.J2000), p.SiderealTime(astro.J2000), 1e-12)
	assert.InDelta(t, astro.MeanObliquity(astro.J2000), p.Obliquity(astro.J2000), 1e-12)
}
