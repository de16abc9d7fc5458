package relations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-core/internal/model"
	"github.com/jwalitptl/vetclinic-core/internal/repository/memory"
	"github.com/jwalitptl/vetclinic-core/internal/service/enrichment"
	"github.com/jwalitptl/vetclinic-core/internal/service/integrity"
	"github.com/jwalitptl/vetclinic-core/internal/service/repair"
	"github.com/jwalitptl/vetclinic-core/pkg/metrics"
)

// promauto registers on the global registry; one shared instance keeps the
// test package from tripping duplicate-registration panics.
var testMetrics = metrics.NewMetrics("vetclinic_test")

func setup(store *memory.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	enricher := enrichment.NewService()
	h := NewHandler(store, enricher, integrity.NewValidator(enricher), repair.NewEngine(nil), testMetrics)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func seedStore() *memory.Store {
	now := time.Now().UTC()
	store := memory.NewStore()
	store.Seed(
		[]model.Appointment{
			{ID: "a1", PetName: "Rocky", Species: "perro", Reason: "revisión de rutina",
				ScheduledAt: now.Add(5 * 24 * time.Hour), Status: model.AppointmentStatusConfirmed, VetName: "Dr. Gómez"},
			{ID: "a2", PetName: "Luna", Species: "gato", Reason: "tiene mucho dolor",
				ScheduledAt: now.Add(2 * time.Hour), Status: model.AppointmentStatusUnderReview, VetName: "Dra. Pérez"},
			{ID: "a3", PetName: "Fantasma", Species: "gato", Reason: "chequeo",
				ScheduledAt: now.Add(48 * time.Hour), Status: model.AppointmentStatusPendingPayment},
		},
		[]model.Pet{
			{ID: "p1", Name: "Rocky", Species: "perro", OwnerID: "o1"},
			{ID: "p2", Name: "Luna", Species: "gato", OwnerID: "missing"},
		},
		[]model.Owner{
			{ID: "o1", Name: "Ana", Phone: "555-1234", Email: "ana@example.com", Role: model.UserRoleClient},
			{ID: "v1", Name: "Dr. Gómez", Role: model.UserRoleVet},
		},
		[]model.MedicalRecord{
			{ID: "m1", PetID: "p1", Date: now.AddDate(0, -1, 0), Diagnosis: "otitis"},
		},
	)
	return store
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	body := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListRelations(t *testing.T) {
	engine := setup(seedStore())

	w, body := doRequest(t, engine, http.MethodGet, "/api/v1/relations")
	require.Equal(t, http.StatusOK, w.Code)

	var records []model.RelationRecord
	require.NoError(t, json.Unmarshal(body["data"], &records))
	require.Len(t, records, 3)

	assert.Equal(t, "p1", records[0].Pet.ID)
	assert.Equal(t, "o1", records[0].Owner.ID)
	assert.True(t, records[0].HasHistory)
	assert.Equal(t, model.UrgencyHigh, records[1].Urgency)
	assert.Nil(t, records[2].Pet)
}

func TestListRelations_FilterAndSort(t *testing.T) {
	engine := setup(seedStore())

	w, body := doRequest(t, engine, http.MethodGet, "/api/v1/relations?species=gato&sort=urgency")
	require.Equal(t, http.StatusOK, w.Code)

	var records []model.RelationRecord
	require.NoError(t, json.Unmarshal(body["data"], &records))
	require.Len(t, records, 2)
	assert.Equal(t, "a2", records[0].Appointment.ID)
	assert.Equal(t, "a3", records[1].Appointment.ID)
}

func TestListRelations_BadSortKey(t *testing.T) {
	engine := setup(seedStore())

	w, _ := doRequest(t, engine, http.MethodGet, "/api/v1/relations?sort=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats(t *testing.T) {
	engine := setup(seedStore())

	w, body := doRequest(t, engine, http.MethodGet, "/api/v1/relations/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Total      int `json:"total"`
		MissingPet int `json:"missing_pet"`
		Pending    int `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.MissingPet)
	assert.Equal(t, 2, stats.Pending)
}

func TestGetIntegrityReport(t *testing.T) {
	engine := setup(seedStore())

	w, body := doRequest(t, engine, http.MethodGet, "/api/v1/integrity")
	require.Equal(t, http.StatusOK, w.Code)

	var report model.IntegrityReport
	require.NoError(t, json.Unmarshal(body["data"], &report))

	assert.Len(t, report.Valid, 1)
	assert.Empty(t, report.Invalid)
	require.Len(t, report.Fixable, 2)
}

func TestRunAutoRepair_CommitsToStore(t *testing.T) {
	store := seedStore()
	engine := setup(store)

	w, body := doRequest(t, engine, http.MethodPost, "/api/v1/integrity/repair")
	require.Equal(t, http.StatusOK, w.Code)

	var result model.RepairResult
	require.NoError(t, json.Unmarshal(body["data"], &result))
	assert.Len(t, result.FixedAppointments, 3)
	assert.Len(t, result.NewPets, 1)
	assert.Len(t, result.FixedPets, 1)
	assert.Empty(t, result.Errors)

	pets, err := store.Pets(context.Background())
	require.NoError(t, err)
	require.Len(t, pets, 3)
	// Luna's dangling owner got reassigned to the only client.
	assert.Equal(t, "o1", pets[1].OwnerID)
	// Fantasma was synthesized.
	assert.Equal(t, "Fantasma", pets[2].Name)
	assert.Equal(t, "o1", pets[2].OwnerID)

	// A second integrity pass over the committed state is clean.
	w, body = doRequest(t, engine, http.MethodGet, "/api/v1/integrity")
	require.Equal(t, http.StatusOK, w.Code)
	var report model.IntegrityReport
	require.NoError(t, json.Unmarshal(body["data"], &report))
	assert.Len(t, report.Valid, 3)
	assert.Empty(t, report.Fixable)
	assert.Empty(t, report.Invalid)
}
