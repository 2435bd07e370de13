package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	specs "github.com/chrisconley/chargerate/specs"
)

const yamlRequest = `
session:
  id: session-1
  country_code: ES
  party_id: LLO
  start_date_time: "2024-03-04T10:00:00Z"
  currency: EUR
  cdr_token:
    uid: "0102030405"
    type: RFID
    contract_id: ES-LLO-C12345678
  auth_method: WHITELIST
events:
  - timestamp: "2024-03-04T10:00:00Z"
    chargingState: Charging
    meterValue:
      - sampledValue:
          - value: 0
            measurand: Energy.Active.Import.Register
            unitOfMeasure:
              unit: kWh
  - timestamp: "2024-03-04T11:00:00Z"
    meterValue:
      - sampledValue:
          - value: 10
            unitOfMeasure:
              unit: kWh
              multiplier: 0
tariffs:
  - id: t-energy
    currency: EUR
    elements:
      - price_components:
          - type: ENERGY
            price: 0.30
            step_size: 1000
            vat: 21
        restrictions:
          start_time: "08:00"
          day_of_week: [MONDAY, TUESDAY]
`

const jsonRequest = `{
  "session": {"id": "session-1", "start_date_time": "2024-03-04T10:00:00Z", "currency": "EUR"},
  "events": [{"timestamp": "2024-03-04T10:00:00Z", "chargingState": "Charging"}],
  "tariffs": [{"id": "t-flat", "elements": [{"price_components": [{"type": "FLAT", "price": 1.5}]}]}]
}`

func TestDecode(t *testing.T) {
	t.Run("YAML uses the JSON field names", func(t *testing.T) {
		// Act
		req, err := Decode(strings.NewReader(yamlRequest), FormatYAML)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "session-1", req.Session.ID)
		assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), req.Session.StartDateTime.UTC())
		assert.Equal(t, "ES-LLO-C12345678", req.Session.CdrToken.ContractID)

		require.Len(t, req.Events, 2)
		require.NotNil(t, req.Events[0].ChargingState)
		assert.Equal(t, specs.ChargingStateCharging, *req.Events[0].ChargingState)
		sv := req.Events[1].MeterValues[0].SampledValues[0]
		assert.Equal(t, 10.0, sv.Value)
		require.NotNil(t, sv.UnitOfMeasure)
		assert.Equal(t, "kWh", sv.UnitOfMeasure.Unit)
		require.NotNil(t, sv.UnitOfMeasure.Multiplier)
		assert.Equal(t, 0, *sv.UnitOfMeasure.Multiplier)

		require.Len(t, req.Tariffs, 1)
		element := req.Tariffs[0].Elements[0]
		assert.Equal(t, specs.TariffDimensionEnergy, element.PriceComponents[0].Type)
		assert.Equal(t, 1000, *element.PriceComponents[0].StepSize)
		assert.Equal(t, 21.0, *element.PriceComponents[0].Vat)
		assert.Equal(t, "08:00", *element.Restrictions.StartTime)
		assert.Equal(t, []string{"MONDAY", "TUESDAY"}, element.Restrictions.DayOfWeek)
	})

	t.Run("JSON", func(t *testing.T) {
		req, err := Decode(strings.NewReader(jsonRequest), FormatJSON)

		require.NoError(t, err)
		assert.Equal(t, "t-flat", req.Tariffs[0].ID)
		assert.Equal(t, 1.5, req.Tariffs[0].Elements[0].PriceComponents[0].Price)
		assert.Nil(t, req.Tariffs[0].Elements[0].Restrictions)
	})

	t.Run("malformed documents are errors", func(t *testing.T) {
		_, err := Decode(strings.NewReader("{"), FormatJSON)
		assert.ErrorContains(t, err, "decode json request")

		_, err = Decode(strings.NewReader("session: [1"), FormatYAML)
		assert.ErrorContains(t, err, "decode yaml request")
	})

	t.Run("unknown formats are errors", func(t *testing.T) {
		_, err := Decode(strings.NewReader(jsonRequest), Format("toml"))

		assert.ErrorContains(t, err, "unsupported request format")
	})
}

func TestLoad(t *testing.T) {
	t.Run("picks the decoder from the extension", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		yamlPath := filepath.Join(dir, "request.yml")
		jsonPath := filepath.Join(dir, "request.json")
		require.NoError(t, os.WriteFile(yamlPath, []byte(yamlRequest), 0o600))
		require.NoError(t, os.WriteFile(jsonPath, []byte(jsonRequest), 0o600))

		// Act
		fromYAML, err := Load(yamlPath)
		require.NoError(t, err)
		fromJSON, err := Load(jsonPath)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, "t-energy", fromYAML.Tariffs[0].ID)
		assert.Equal(t, "t-flat", fromJSON.Tariffs[0].ID)
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		_, err := Load("request.txt")

		assert.ErrorContains(t, err, "unsupported request file extension")
	})

	t.Run("missing files are errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))

		assert.ErrorContains(t, err, "open request")
	})
}
