package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/repository"
	"github.com/tutorzindia/site/ws"
)

// RegistrationService handles inquiry submissions and their admin exports.
type RegistrationService interface {
	Submit(ctx context.Context, req *models.RegistrationRequest) (*models.Registration, error)
	List(ctx context.Context, actor *models.User) ([]models.Registration, error)
	Count(ctx context.Context, actor *models.User) (int, error)
	// ExportCSV renders every registration with dates in the short date
	// format of acceptLanguage.
	ExportCSV(ctx context.Context, actor *models.User, acceptLanguage string) ([]byte, error)
	ExportXLSX(ctx context.Context, actor *models.User) ([]byte, error)
	// ExportName is the download name of an export made now, e.g.
	// registrations_2024-01-16.csv for ext "csv".
	ExportName(ext string) string
}

type registrationService struct {
	repo      repository.RegistrationRepository
	publisher ws.EventPublisher
	location  *time.Location
}

// NewRegistrationService wires the service. publisher may be nil. Export
// dates are calendar days in location (UTC when nil).
func NewRegistrationService(repo repository.RegistrationRepository, publisher ws.EventPublisher, location *time.Location) RegistrationService {
	if location == nil {
		location = time.UTC
	}
	return &registrationService{repo: repo, publisher: publisher, location: location}
}

func (s *registrationService) Submit(ctx context.Context, req *models.RegistrationRequest) (*models.Registration, error) {
	if err := req.Validate(); err != nil {
		return nil, badRequest(err)
	}

	reg := req.ToRegistration()
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}

	publishContentUpdate(s.publisher, CollectionRegistrations)
	return reg, nil
}

func (s *registrationService) List(ctx context.Context, actor *models.User) ([]models.Registration, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *registrationService) Count(ctx context.Context, actor *models.User) (int, error) {
	if err := requireAdmin(actor); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx)
}

func (s *registrationService) ExportCSV(ctx context.Context, actor *models.User, acceptLanguage string) ([]byte, error) {
	regs, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteRegistrationsCSV(&buf, regs, ShortDateLayout(acceptLanguage), s.location); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *registrationService) ExportXLSX(ctx context.Context, actor *models.User) ([]byte, error) {
	regs, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	return registrationsWorkbook(regs, s.location)
}

func (s *registrationService) ExportName(ext string) string {
	return RegistrationExportName(time.Now(), s.location, ext)
}

// ─── Export formats ───

// RegistrationExportName names an export made at now, dated in loc.
func RegistrationExportName(now time.Time, loc *time.Location, ext string) string {
	return "registrations_" + now.In(loc).Format("2006-01-02") + "." + ext
}

// RegistrationExportHeader are the export columns.
var RegistrationExportHeader = []string{"Student Name", "Email", "Phone", "Class", "Registration Date"}

// shortDateLayouts maps a language tag, or its primary language, to the
// short date format browsers use for it.
var shortDateLayouts = map[string]string{
	"en-us": "1/2/2006",
	"en-in": "2/1/2006",
	"en-gb": "02/01/2006",
	"hi":    "2/1/2006",
	"de":    "2.1.2006",
	"fr":    "02/01/2006",
	"en":    "1/2/2006",
}

const defaultShortDateLayout = "1/2/2006"

// ShortDateLayout picks the short date layout for the first tag of an
// Accept-Language header that has one. Unknown languages get en-US.
func ShortDateLayout(acceptLanguage string) string {
	for _, tag := range i18n.LanguageTags(acceptLanguage) {
		tag = strings.ToLower(tag)
		if layout, ok := shortDateLayouts[tag]; ok {
			return layout
		}
		primary, _, _ := strings.Cut(tag, "-")
		if layout, ok := shortDateLayouts[primary]; ok {
			return layout
		}
	}
	return defaultShortDateLayout
}

// WriteRegistrationsCSV writes the header and one row per registration. The
// date column is the day the registration was made in loc.
func WriteRegistrationsCSV(w io.Writer, regs []models.Registration, dateLayout string, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(RegistrationExportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range regs {
		row := []string{r.StudentName, r.Email, r.Phone, r.Class, r.CreatedAt.In(loc).Format(dateLayout)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func registrationsWorkbook(regs []models.Registration, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Registrations"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(RegistrationExportHeader))
	for i, h := range RegistrationExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range regs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{r.StudentName, r.Email, r.Phone, r.Class, r.CreatedAt.In(loc).Format("2006-01-02")}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
