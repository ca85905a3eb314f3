package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	appErrors "github.com/noah-isme/cohort-tools-api/pkg/errors"
	"github.com/noah-isme/cohort-tools-api/pkg/export"
)

// Supported roster formats.
const (
	RosterFormatCSV = "csv"
	RosterFormatPDF = "pdf"
)

var rosterHeaders = []string{"First Name", "Last Name", "Email", "Phone", "Program", "Languages", "LinkedIn"}

// RosterFile is a rendered roster ready for download.
type RosterFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders cohort rosters.
type ExportService struct {
	cohorts   CohortRepository
	students  StudentRepository
	renderers map[string]export.Renderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService with the CSV and PDF renderers.
func NewExportService(cohorts CohortRepository, students StudentRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		cohorts:  cohorts,
		students: students,
		renderers: map[string]export.Renderer{
			RosterFormatCSV: export.NewCSVExporter(),
			RosterFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// Roster renders the students of a cohort. format defaults to csv.
func (s *ExportService) Roster(ctx context.Context, cohortID, format string) (*RosterFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = RosterFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported roster format %q", format))
	}

	cohort, err := s.cohorts.FindByID(ctx, cohortID)
	if err != nil {
		return nil, s.failed(storeError(err, "cohort", "load cohort"), cohortID)
	}
	students, err := s.students.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, s.failed(storeError(err, "cohort", "list cohort students"), cohortID)
	}

	body, err := renderer.Render(rosterDataset(cohort, students))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}
	s.logger.Info("roster exported", zap.String("cohort_id", cohortID), zap.String("format", format), zap.Int("students", len(students)))

	return &RosterFile{
		Filename:    fmt.Sprintf("%s_roster.%s", rosterFilename(cohort), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

const maxFilenameStem = 100

// failed logs store failures that surface as internal errors. Client errors
// such as a missing cohort pass through silently.
func (s *ExportService) failed(err error, cohortID string) error {
	if appErrors.Is(err, appErrors.ErrInternal) {
		s.logger.Error("roster export failed", zap.String("cohort_id", cohortID), zap.Error(err))
	}
	return err
}

func rosterDataset(cohort *models.Cohort, students []models.StudentDetail) export.Dataset {
	title := cohort.CohortName
	if title == "" {
		title = cohort.ID
	}
	rows := make([]map[string]string, 0, len(students))
	for _, student := range students {
		rows = append(rows, map[string]string{
			"First Name": student.FirstName,
			"Last Name":  student.LastName,
			"Email":      student.Email,
			"Phone":      student.Phone,
			"Program":    student.Program,
			"Languages":  strings.Join(student.Languages, ", "),
			"LinkedIn":   student.LinkedinURL,
		})
	}
	return export.Dataset{Title: title + " roster", Headers: rosterHeaders, Rows: rows}
}

// rosterFilename derives a header-safe file stem from the cohort slug. Only
// ASCII letters, digits, dash, underscore and dot survive.
func rosterFilename(cohort *models.Cohort) string {
	stem := sanitizeFilename(cohort.CohortSlug)
	if stem == "" {
		stem = sanitizeFilename(cohort.ID)
	}
	if stem == "" {
		stem = "cohort"
	}
	return stem
}

func sanitizeFilename(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() >= maxFilenameStem {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		default:
			b.WriteByte('-')
		}
	}
	result := b.String()
	for strings.Contains(result, "..") {
		result = strings.ReplaceAll(result, "..", ".")
	}
	return strings.Trim(result, ".")
}
