package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mindjournal/mindjournal-backend/config"
	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/internal/app/repository"
	"github.com/mindjournal/mindjournal-backend/internal/db"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"github.com/mindjournal/mindjournal-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

const (
	batchSize         = 500
	maxActivityLength = 100
)

var errUsage = errors.New("usage: go run ./cmd/seed <xlsx_file_path>")

// Imports custom activity labels exported from the old document store.
// The first sheet must have "email" and "activity" header columns.
func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		logger.Error("Seed failed", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	filePath := args[0]

	// Validate the sheet before touching the database
	fmt.Fprintf(out, "Reading XLSX file: %s\n", filePath)
	activities, summary, err := readActivitiesFromXLSX(filePath)
	if err != nil {
		return err
	}
	summary.print(out)

	if len(activities) == 0 {
		fmt.Fprintln(out, "Nothing to import.")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Initialize(logger.Config{Level: cfg.Log.Level, Format: "console", EnableColor: true})

	if err := db.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(db.GetDB()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := repository.NewCustomActivityRepository(db.GetDB())
	return importActivities(context.Background(), repo, activities, in, out)
}

// importActivities asks for confirmation on in and inserts the activities.
func importActivities(ctx context.Context, repo repository.CustomActivityRepository, activities []model.CustomActivity, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Do you want to proceed with the import? (yes/no): ")
	confirm, _ := bufio.NewReader(in).ReadString('\n')
	confirm = strings.ToLower(strings.TrimSpace(confirm))
	if confirm != "yes" && confirm != "y" {
		fmt.Fprintln(out, "Import cancelled.")
		return nil
	}

	inserted, err := repo.BulkAdd(ctx, activities, batchSize)
	if err != nil {
		return fmt.Errorf("failed to import custom activities: %w", err)
	}

	fmt.Fprintln(out, "Import completed successfully!")
	fmt.Fprintf(out, "  Inserted: %d (already present: %d)\n", inserted, int64(len(activities))-inserted)
	return nil
}

type importSummary struct {
	Rows      int
	Valid     int
	Skipped   int
	Duplicate int
}

func (s importSummary) print(w io.Writer) {
	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "  Total rows: %d\n", s.Rows)
	fmt.Fprintf(w, "  Valid activities: %d\n", s.Valid)
	fmt.Fprintf(w, "  Skipped rows: %d\n", s.Skipped)
	fmt.Fprintf(w, "  Duplicate rows: %d\n", s.Duplicate)
}

func readActivitiesFromXLSX(filePath string) ([]model.CustomActivity, importSummary, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, importSummary{}, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, importSummary{}, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, importSummary{}, fmt.Errorf("failed to read rows: %w", err)
	}
	return parseActivityRows(rows)
}

// parseActivityRows converts sheet rows, header first, into activities.
// Rows with a malformed email, a blank or overlong label, or a repeated
// (email, label) pair are skipped.
func parseActivityRows(rows [][]string) ([]model.CustomActivity, importSummary, error) {
	if len(rows) == 0 {
		return nil, importSummary{}, fmt.Errorf("no data found in XLSX file")
	}

	emailCol, activityCol := -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "email", "useremail", "user_email":
			emailCol = i
		case "activity", "name":
			activityCol = i
		}
	}
	if emailCol < 0 || activityCol < 0 {
		return nil, importSummary{}, fmt.Errorf("header row must contain email and activity columns, got %v", rows[0])
	}

	summary := importSummary{Rows: len(rows) - 1}
	seen := make(map[string]bool)
	var activities []model.CustomActivity

	for _, row := range rows[1:] {
		email := cell(row, emailCol)
		name := cell(row, activityCol)

		if !util.IsValidEmail(email) || name == "" || utf8.RuneCountInString(name) > maxActivityLength {
			summary.Skipped++
			continue
		}

		key := email + "|" + name
		if seen[key] {
			summary.Duplicate++
			continue
		}
		seen[key] = true

		activities = append(activities, model.CustomActivity{UserEmail: email, Name: name})
	}

	summary.Valid = len(activities)
	return activities, summary, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
