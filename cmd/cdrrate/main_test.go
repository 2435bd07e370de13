package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	specs "github.com/chrisconley/chargerate/specs"
)

const request = `
session:
  id: session-cli
  country_code: ES
  party_id: LLO
  start_date_time: "2024-03-04T10:00:00Z"
  currency: EUR
events:
  - timestamp: "2024-03-04T10:00:00Z"
    chargingState: Charging
    meterValue:
      - sampledValue:
          - value: 0
            unitOfMeasure: {unit: Wh}
  - timestamp: "2024-03-04T11:00:00Z"
    meterValue:
      - sampledValue:
          - value: 10000
            unitOfMeasure: {unit: Wh}
tariffs:
  - id: t-energy
    currency: EUR
    elements:
      - price_components:
          - {type: ENERGY, price: 0.30}
`

func TestRateCommand(t *testing.T) {
	t.Run("prints the CDR and writes the requested artifacts", func(t *testing.T) {
		// Arrange
		t.Setenv("CHARGERATE_CONFIG", "")
		dir := t.TempDir()
		input := filepath.Join(dir, "request.yaml")
		require.NoError(t, os.WriteFile(input, []byte(request), 0o600))
		pdfPath := filepath.Join(dir, "cdr.pdf")
		xlsxPath := filepath.Join(dir, "cdr.xlsx")
		metricsPath := filepath.Join(dir, "cdr.prom")

		app := newApp()
		var out bytes.Buffer
		app.Writer = &out

		// Act
		err := app.Run([]string{"cdrrate", "rate",
			"--input", input,
			"--timezone", "UTC",
			"--pdf", pdfPath,
			"--xlsx", xlsxPath,
			"--metrics-file", metricsPath,
		})

		// Assert
		require.NoError(t, err)
		var cdr specs.CdrSpec
		require.NoError(t, json.Unmarshal(out.Bytes(), &cdr))
		assert.Equal(t, "session-cli", cdr.SessionID)
		assert.InDelta(t, 10.0, cdr.TotalEnergy, 1e-9)
		assert.InDelta(t, 3.0, cdr.TotalCost, 1e-9)

		assert.FileExists(t, pdfPath)
		assert.FileExists(t, xlsxPath)
		prom, err := os.ReadFile(metricsPath)
		require.NoError(t, err)
		assert.Contains(t, string(prom), "chargerate_cdrs_rated_total 1")
		assert.Contains(t, string(prom), `chargerate_tariff_elements_total{outcome="applied"} 1`)
	})

	t.Run("pretty output is indented", func(t *testing.T) {
		t.Setenv("CHARGERATE_CONFIG", "")
		input := filepath.Join(t.TempDir(), "request.yaml")
		require.NoError(t, os.WriteFile(input, []byte(request), 0o600))
		app := newApp()
		var out bytes.Buffer
		app.Writer = &out

		err := app.Run([]string{"cdrrate", "rate", "--input", input, "--tz", "UTC", "--pretty"})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.String(), "{\n  \""))
	})

	t.Run("missing input file is an error", func(t *testing.T) {
		t.Setenv("CHARGERATE_CONFIG", "")
		app := newApp()
		app.Writer = &bytes.Buffer{}

		err := app.Run([]string{"cdrrate", "rate", "--input", filepath.Join(t.TempDir(), "missing.json")})

		assert.ErrorContains(t, err, "failed to load request")
	})
}

func TestVersionCommand(t *testing.T) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out

	err := app.Run([]string{"cdrrate", "version"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "cdrrate dev")
}
