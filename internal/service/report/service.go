package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
)

// Service runs the read-only aggregate reports and persists saved reports
// twice: a row in report_history and a JSON file under the reports
// directory. The directory doubles as the history source when the table is
// absent.
type Service struct {
	repo   repository.ReportRepository
	dir    string
	logger zerolog.Logger
}

func NewService(repo repository.ReportRepository, dir string, logger zerolog.Logger) *Service {
	return &Service{repo: repo, dir: dir, logger: logger}
}

func (s *Service) Appointments(ctx context.Context, req *model.AppointmentReportRequest) (*model.AppointmentReport, error) {
	rows, err := s.repo.Appointments(ctx, req)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, row := range rows {
		counts[string(row.Status)]++
	}
	return &model.AppointmentReport{
		Appointments:   rows,
		CountsByStatus: counts,
		Total:          len(rows),
	}, nil
}

func (s *Service) Physicians(ctx context.Context) ([]*model.PhysicianWorkload, error) {
	return s.repo.PhysicianWorkload(ctx)
}

func (s *Service) Patients(ctx context.Context, req *model.PatientReportRequest) ([]*model.PatientVisits, error) {
	return s.repo.PatientVisits(ctx, req.IncludeInactive)
}

// Save writes the payload to the reports directory and records it in
// report_history. A missing history table degrades to file-only storage.
func (s *Service) Save(ctx context.Context, req *model.SaveReportRequest) (*model.ReportRecord, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := json.MarshalIndent(req.Payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report payload: %w", err)
	}

	fileName := fmt.Sprintf("%s_%s.json", req.Type, uuid.New().String())
	if err := os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write report file: %w", err)
	}

	rec := &model.ReportRecord{
		Type:     req.Type,
		Title:    req.Title,
		FileName: fileName,
	}
	if err := s.repo.SaveRecord(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNoHistoryTable) {
			s.logger.Warn().Msg("report_history table missing, report saved to file only")
			rec.CreatedAt = time.Now()
			return rec, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) History(ctx context.Context) ([]*model.ReportRecord, error) {
	records, err := s.repo.History(ctx)
	if err == nil {
		return records, nil
	}
	if !errors.Is(err, repository.ErrNoHistoryTable) {
		return nil, err
	}

	s.logger.Warn().Msg("report_history table missing, listing report files")
	return s.historyFromFiles()
}

func (s *Service) historyFromFiles() ([]*model.ReportRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*model.ReportRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	records := []*model.ReportRecord{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reportType, _, _ := strings.Cut(entry.Name(), "_")
		records = append(records, &model.ReportRecord{
			Type:      reportType,
			FileName:  entry.Name(),
			CreatedAt: info.ModTime(),
		})
	}
	return records, nil
}

func (s *Service) Statistics(ctx context.Context) (*model.Statistics, error) {
	return s.repo.Statistics(ctx)
}
