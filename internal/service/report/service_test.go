package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
)

type fakeReportRepo struct {
	appointments []*model.AppointmentDetail
	records      []*model.ReportRecord
	noTable      bool
}

func (f *fakeReportRepo) Appointments(context.Context, *model.AppointmentReportRequest) ([]*model.AppointmentDetail, error) {
	return f.appointments, nil
}

func (f *fakeReportRepo) PhysicianWorkload(context.Context) ([]*model.PhysicianWorkload, error) {
	return []*model.PhysicianWorkload{}, nil
}

func (f *fakeReportRepo) PatientVisits(context.Context, bool) ([]*model.PatientVisits, error) {
	return []*model.PatientVisits{}, nil
}

func (f *fakeReportRepo) SaveRecord(_ context.Context, rec *model.ReportRecord) error {
	if f.noTable {
		return repository.ErrNoHistoryTable
	}
	rec.ID = int64(len(f.records) + 1)
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeReportRepo) History(context.Context) ([]*model.ReportRecord, error) {
	if f.noTable {
		return nil, repository.ErrNoHistoryTable
	}
	return f.records, nil
}

func (f *fakeReportRepo) Statistics(context.Context) (*model.Statistics, error) {
	return &model.Statistics{}, nil
}

func detail(status model.AppointmentStatus) *model.AppointmentDetail {
	return &model.AppointmentDetail{
		Appointment: model.Appointment{Status: status},
	}
}

func TestAppointmentsCountsByStatus(t *testing.T) {
	repo := &fakeReportRepo{appointments: []*model.AppointmentDetail{
		detail(model.AppointmentStatusScheduled),
		detail(model.AppointmentStatusScheduled),
		detail(model.AppointmentStatusCompleted),
		detail(model.AppointmentStatusCancelled),
	}}
	svc := NewService(repo, t.TempDir(), zerolog.Nop())

	rep, err := svc.Appointments(context.Background(), &model.AppointmentReportRequest{
		DateFrom: "2025-01-01",
		DateTo:   "2025-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 2, rep.CountsByStatus["scheduled"])
	assert.Equal(t, 1, rep.CountsByStatus["completed"])
	assert.Equal(t, 1, rep.CountsByStatus["cancelled"])
}

func TestSaveWritesFileAndRecord(t *testing.T) {
	dir := t.TempDir()
	repo := &fakeReportRepo{}
	svc := NewService(repo, dir, zerolog.Nop())

	rec, err := svc.Save(context.Background(), &model.SaveReportRequest{
		Type:    "appointments",
		Title:   "Citas de julio",
		Payload: map[string]interface{}{"total": 4},
	})
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "appointments", rec.Type)

	data, err := os.ReadFile(filepath.Join(dir, rec.FileName))
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.EqualValues(t, 4, payload["total"])
	require.Len(t, repo.records, 1)
}

func TestSaveDegradesToFileOnlyWithoutTable(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(&fakeReportRepo{noTable: true}, dir, zerolog.Nop())

	rec, err := svc.Save(context.Background(), &model.SaveReportRequest{
		Type:    "patients",
		Payload: map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.False(t, rec.CreatedAt.IsZero())

	_, err = os.Stat(filepath.Join(dir, rec.FileName))
	assert.NoError(t, err)
}

func TestHistoryFallsBackToFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(&fakeReportRepo{noTable: true}, dir, zerolog.Nop())

	_, err := svc.Save(context.Background(), &model.SaveReportRequest{
		Type:    "physicians",
		Payload: map[string]interface{}{},
	})
	require.NoError(t, err)

	records, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "physicians", records[0].Type)
}

func TestHistoryEmptyWhenNothingSaved(t *testing.T) {
	svc := NewService(&fakeReportRepo{noTable: true}, filepath.Join(t.TempDir(), "missing"), zerolog.Nop())

	records, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
