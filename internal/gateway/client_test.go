package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSONBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return date
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Token: "test-token"})
}

func TestListPartsDecodesStringDecimals(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parts", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[{"id":1,"code":"FLT-001","name":"Filtro de aceite","unit_price":"8.50","stock_qty":12}]`)
	})

	parts, err := c.ListParts(context.Background())
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "FLT-001", parts[0].Code)
	assert.Equal(t, 8.5, parts[0].UnitPrice)
	assert.Equal(t, 12, parts[0].StockQty)
}

func TestCreateClientUnwrapsDataEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, `{"data":{"id":7,"name":"María Pérez","national_id":"0912345678","phone":"0990000000"}}`)
	})

	created, err := c.CreateClient(context.Background(), domain.NewClient("María Pérez", "0912345678", "0990000000"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "María Pérez", created.Name)
}

func TestListVehiclesAcceptsEnvelopedList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":3,"client_id":7,"brand":"Chevrolet","model":"Aveo","year":2015,"plate":"ABC1234","odometer_km":145000}]}`)
	})

	vehicles, err := c.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, int64(7), vehicles[0].ClientID)
	assert.Equal(t, "ABC1234", vehicles[0].Plate)
}

func TestValidationErrorConcatenatesFieldMessages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"The given data was invalid.","errors":{"national_id":["The national id has already been taken."],"name":["The name field is required."]}}`)
	})

	_, err := c.CreateClient(context.Background(), domain.NewClient("x", "0912345678", ""))
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "The name field is required.; The national id has already been taken.", apiErr.Error())
	assert.Equal(t, apiErr.Error(), Message(err))
}

func TestMessageFallsBackOnUnstructuredFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	})

	_, err := c.ListClients(context.Background())
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, Message(err))
}

func TestUnreachableBackendIsMarkedAsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens on the address anymore

	c := New(Config{BaseURL: srv.URL})
	_, err := c.ListClients(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.Equal(t, FallbackMessage, Message(err))
}

func TestCreateMaintenanceSubmitsWireShape(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, decodeJSONBody(r, &body))
		fmt.Fprint(w, `{"data":{"id":42,"vehicle_id":3,"prior_odometer_km":145000,"recorded_odometer_km":146200,"date":"2026-08-29","total_cost":"35.00"}}`)
	})

	rec, err := c.CreateMaintenance(context.Background(), &MaintenanceRequest{
		VehicleID:          3,
		PriorOdometerKm:    145000,
		RecordedOdometerKm: 146200,
		Date:               mustDate(t, "2026-08-29"),
		Notes:              "oil change",
		Parts:              []MaintenancePartItem{{ID: 1, Quantity: 2, UnitPriceAtTime: 10}},
		Labors:             []MaintenanceLaborItem{{ID: 9, CostAtTime: 15}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, 35.0, rec.TotalCost)

	assert.Equal(t, float64(3), body["vehicle_id"])
	assert.Equal(t, "2026-08-29", body["date"])
	parts := body["parts"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, float64(2), parts[0].(map[string]any)["quantity"])
	labors := body["labors"].([]any)
	require.Len(t, labors, 1)
	assert.Equal(t, float64(9), labors[0].(map[string]any)["id"])
}
