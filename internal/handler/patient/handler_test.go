package patient

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
	"github.com/agendasalud/clinic-api/internal/service/patient"
)

type memPatientRepo struct {
	patients map[int64]*model.Patient
	nextID   int64
	counts   map[int64]int
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: map[int64]*model.Patient{}, nextID: 1, counts: map[int64]int{}}
}

func (m *memPatientRepo) List(_ context.Context, includeInactive bool) ([]*model.Patient, error) {
	out := []*model.Patient{}
	for _, p := range m.patients {
		if includeInactive || p.Active == 1 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %d: %w", id, sql.ErrNoRows)
	}
	return p, nil
}

func (m *memPatientRepo) GetByRut(_ context.Context, rut string, includeInactive bool) (*model.Patient, error) {
	for _, p := range m.patients {
		if p.Rut == rut && (includeInactive || p.Active == 1) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("patient rut %s: %w", rut, sql.ErrNoRows)
}

func (m *memPatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = m.nextID
	m.nextID++
	p.Active = 1
	m.patients[p.ID] = p
	return nil
}

func (m *memPatientRepo) Update(_ context.Context, p *model.Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("patient %d: %w", p.ID, sql.ErrNoRows)
	}
	m.patients[p.ID] = p
	return nil
}

func (m *memPatientRepo) Deactivate(_ context.Context, id int64) (int64, error) {
	p, ok := m.patients[id]
	if !ok || p.Active != 1 {
		return 0, nil
	}
	p.Active = 0
	return 1, nil
}

func (m *memPatientRepo) Reactivate(_ context.Context, id int64) (int64, error) {
	p, ok := m.patients[id]
	if !ok || p.Active != 0 {
		return 0, nil
	}
	p.Active = 1
	return 1, nil
}

func (m *memPatientRepo) CountAppointments(_ context.Context, patientID int64) (int, error) {
	return m.counts[patientID], nil
}

func (m *memPatientRepo) DeleteGuarded(_ context.Context, id int64) error {
	p, ok := m.patients[id]
	if !ok {
		return fmt.Errorf("patient %d: %w", id, sql.ErrNoRows)
	}
	if p.Active == 1 {
		return repository.ErrPatientActive
	}
	if n := m.counts[id]; n > 0 {
		return &repository.HasAppointmentsError{Count: n}
	}
	delete(m.patients, id)
	return nil
}

func setupRouter(repo *memPatientRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	model.RegisterValidators()

	engine := gin.New()
	h := NewHandler(patient.NewService(repo))
	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestCreatePatientValidatesRut(t *testing.T) {
	engine := setupRouter(newMemPatientRepo())

	w, resp := doRequest(t, engine, http.MethodPost, "/api/patients", map[string]interface{}{
		"rut":        "12345678-9",
		"first_name": "Ana",
		"last_name":  "Rojas",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp["status"])
}

func TestCreateAndGetPatient(t *testing.T) {
	engine := setupRouter(newMemPatientRepo())

	w, resp := doRequest(t, engine, http.MethodPost, "/api/patients", map[string]interface{}{
		"rut":        "12345678-5",
		"first_name": "Ana",
		"last_name":  "Rojas",
		"email":      "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", resp["status"])

	data := resp["data"].(map[string]interface{})
	id := int64(data["id"].(float64))
	require.NotZero(t, id)

	w, resp = doRequest(t, engine, http.MethodGet, fmt.Sprintf("/api/patients/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "12345678-5", data["rut"])
	assert.EqualValues(t, 1, data["active"])
}

func TestDeactivateTwiceReturnsSpanishRejection(t *testing.T) {
	repo := newMemPatientRepo()
	repo.patients[1] = &model.Patient{ID: 1, Rut: "12345678-5", Active: 1}
	engine := setupRouter(repo)

	w, _ := doRequest(t, engine, http.MethodPatch, "/api/patients/1/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doRequest(t, engine, http.MethodPatch, "/api/patients/1/deactivate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "El paciente ya está desactivado", resp["message"])
	assert.NotEmpty(t, resp["suggestion"])
}

func TestDeleteActivePatientRejected(t *testing.T) {
	repo := newMemPatientRepo()
	repo.patients[1] = &model.Patient{ID: 1, Rut: "12345678-5", Active: 1}
	engine := setupRouter(repo)

	w, resp := doRequest(t, engine, http.MethodDelete, "/api/patients/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "El paciente aún está activo", resp["message"])
}

func TestDeletePatientWithAppointmentsConflicts(t *testing.T) {
	repo := newMemPatientRepo()
	repo.patients[1] = &model.Patient{ID: 1, Rut: "12345678-5", Active: 0}
	repo.counts[1] = 2
	engine := setupRouter(repo)

	w, resp := doRequest(t, engine, http.MethodDelete, "/api/patients/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, resp["message"], "2 citas asociadas")
}

func TestCheckRut(t *testing.T) {
	repo := newMemPatientRepo()
	repo.patients[1] = &model.Patient{ID: 1, Rut: "12345678-5", Active: 1}
	engine := setupRouter(repo)

	w, resp := doRequest(t, engine, http.MethodGet, "/api/patients/check-rut?rut=12345678-5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["exists"])

	w, _ = doRequest(t, engine, http.MethodGet, "/api/patients/check-rut", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMissingPatientIs404(t *testing.T) {
	engine := setupRouter(newMemPatientRepo())

	w, resp := doRequest(t, engine, http.MethodGet, "/api/patients/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "patient not found", resp["message"])
}
