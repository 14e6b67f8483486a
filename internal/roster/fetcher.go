package roster

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"workshopmailer/internal/config"
	"workshopmailer/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Column positions within the configured sheet range. The first column holds
// the form submission timestamp and is ignored.
const (
	colName = iota + 1
	colEmail
	colWorkshopTime
)

// Layouts accepted for the workshop time column. Naive values are interpreted
// in the configured workshop timezone.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"1/2/2006 15:04:05",
}

// FetchError marks a roster fetch failure as transient: the caller should
// skip the current tick and retry on the next one.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("roster: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher returns the current roster of candidates on each poll.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.Candidate, error)
}

// SheetsFetcher reads candidates from a Google Sheet using a service account.
type SheetsFetcher struct {
	svc       *sheets.Service
	sheetID   string
	readRange string
	location  *time.Location
}

// NewSheetsFetcher builds the Sheets client from the service account JSON key
func NewSheetsFetcher(ctx context.Context, cfg *config.Config) (*SheetsFetcher, error) {
	jwtConfig, err := google.JWTConfigFromJSON([]byte(cfg.ServiceAccountJSON), sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsFetcher{
		svc:       svc,
		sheetID:   cfg.SheetID,
		readRange: cfg.SheetRange,
		location:  cfg.Timezone,
	}, nil
}

// Fetch returns the current ordered roster. API failures come back as a
// *FetchError; individually malformed rows are skipped, not fatal.
func (f *SheetsFetcher) Fetch(ctx context.Context) ([]models.Candidate, error) {
	resp, err := f.svc.Spreadsheets.Values.Get(f.sheetID, f.readRange).Context(ctx).Do()
	if err != nil {
		return nil, &FetchError{Op: "get values", Err: err}
	}
	return ParseRows(resp.Values, f.location), nil
}

// ParseRows converts raw sheet rows into Candidates. Rows without a name or
// email are skipped; rows whose workshop time cannot be parsed are skipped
// and logged.
func ParseRows(rows [][]interface{}, location *time.Location) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(rows))

	for i, row := range rows {
		name := cellString(row, colName)
		email := cellString(row, colEmail)
		if name == "" || email == "" {
			continue
		}

		when, err := parseWorkshopTime(cellString(row, colWorkshopTime), location)
		if err != nil {
			log.Printf("Skipping row %d (%s): %v", i, email, err)
			continue
		}

		candidates = append(candidates, models.Candidate{
			Name:         strings.ToUpper(name),
			Email:        strings.ToLower(email),
			WorkshopTime: when,
		})
	}

	return candidates
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, ok := row[idx].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func parseWorkshopTime(value string, location *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty workshop time")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable workshop time %q", value)
}
