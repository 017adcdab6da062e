package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account.
var Scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveFileScope,
	drive.DriveScope,
}

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// ErrSpreadsheetNotFound is returned when no spreadsheet carries the configured name.
var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

// SheetsConfig selects the spreadsheet and the credentials used to reach it.
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetName string
	SpreadsheetID   string // skips the Drive name lookup when set
}

// SheetsStore implements Store on a Google Sheets spreadsheet.
// Each table is a worksheet whose first row holds the column headers.
type SheetsStore struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
}

// OpenSheets authenticates with the service-account file and opens the spreadsheet.
func OpenSheets(ctx context.Context, cfg SheetsConfig) (*SheetsStore, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(Scopes...),
	}

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}

	var driveSvc *drive.Service
	if cfg.SpreadsheetID == "" {
		driveSvc, err = drive.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Drive client: %w", err)
		}
	}

	return NewSheetsStore(ctx, sheetsSvc, driveSvc, cfg)
}

// NewSheetsStore opens the spreadsheet with already-built clients. driveSvc may be
// nil when cfg.SpreadsheetID is set. Missing header rows are written.
func NewSheetsStore(ctx context.Context, sheetsSvc *sheets.Service, driveSvc *drive.Service, cfg SheetsConfig) (*SheetsStore, error) {
	id := cfg.SpreadsheetID
	if id == "" {
		if driveSvc == nil {
			return nil, errors.New("a Drive client is required to open a spreadsheet by name")
		}
		var err error
		id, err = findSpreadsheet(ctx, driveSvc, cfg.SpreadsheetName)
		if err != nil {
			return nil, err
		}
	}

	s := &SheetsStore{values: sheetsSvc.Spreadsheets.Values, spreadsheetID: id}
	if err := s.ensureHeader(ctx, models.InputDataTable, models.InputDataHeader); err != nil {
		return nil, err
	}
	if err := s.ensureHeader(ctx, models.StoredSearchTable, models.StoredSearchHeader); err != nil {
		return nil, err
	}

	log.Printf("STATE: opened spreadsheet %q (%s)", cfg.SpreadsheetName, id)
	return s, nil
}

func findSpreadsheet(ctx context.Context, driveSvc *drive.Service, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)

	list, err := driveSvc.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up spreadsheet %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, name)
	}
	return list.Files[0].Id, nil
}

func sheetRange(table, cells string) string {
	return fmt.Sprintf("'%s'!%s", table, cells)
}

func (s *SheetsStore) ensureHeader(ctx context.Context, name string, header []string) error {
	rng := sheetRange(name, "A1:D1")
	vr, err := s.values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header of %q: %w", name, err)
	}
	if len(vr.Values) > 0 && !blank(vr.Values[0]) {
		return nil
	}

	log.Printf("STATE: writing header row to %q", name)
	_, err = s.values.Update(s.spreadsheetID, rng, &sheets.ValueRange{
		Values: [][]interface{}{headerRow(header)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write header of %q: %w", name, err)
	}
	return nil
}

func (s *SheetsStore) readTable(ctx context.Context, name string) (table, error) {
	vr, err := s.values.Get(s.spreadsheetID, sheetRange(name, "A:D")).Context(ctx).Do()
	if err != nil {
		return table{}, fmt.Errorf("failed to read %q: %w", name, err)
	}
	return newTable(name, vr.Values), nil
}

func (s *SheetsStore) appendRow(ctx context.Context, name string, row []interface{}) error {
	_, err := s.values.Append(s.spreadsheetID, sheetRange(name, "A:D"), &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to %q: %w", name, err)
	}
	return nil
}

func (s *SheetsStore) Records(ctx context.Context) ([]models.SurveyRecord, error) {
	t, err := s.readTable(ctx, models.InputDataTable)
	if err != nil {
		return nil, err
	}
	return t.records(), nil
}

func (s *SheetsStore) AppendRecord(ctx context.Context, r models.SurveyRecord) error {
	return s.appendRow(ctx, models.InputDataTable, r.Row())
}

func (s *SheetsStore) SearchResults(ctx context.Context) ([]models.StoredSearchResult, error) {
	t, err := s.readTable(ctx, models.StoredSearchTable)
	if err != nil {
		return nil, err
	}
	return t.searchResults(), nil
}

func (s *SheetsStore) AppendSearchResult(ctx context.Context, r models.StoredSearchResult) error {
	return s.appendRow(ctx, models.StoredSearchTable, r.Row())
}

// Close is a no-op; the HTTP clients hold no resources that need releasing.
func (s *SheetsStore) Close() error { return nil }
