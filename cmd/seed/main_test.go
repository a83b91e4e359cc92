package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/internal/app/repository"
	"github.com/mindjournal/mindjournal-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseActivityRows(t *testing.T) {
	rows := [][]string{
		{"Activity", "Email"},
		{"Yoga", "a@x.com"},
		{" Running ", "a@x.com"},
		{"Yoga", "a@x.com"},
		{"", "b@x.com"},
		{"Chess", "not-an-email"},
		{"Swimming"},
		{"Swimming", "b@x.com"},
	}

	activities, summary, err := parseActivityRows(rows)
	require.NoError(t, err)

	assert.Equal(t, []model.CustomActivity{
		{UserEmail: "a@x.com", Name: "Yoga"},
		{UserEmail: "a@x.com", Name: "Running"},
		{UserEmail: "b@x.com", Name: "Swimming"},
	}, activities)
	assert.Equal(t, importSummary{Rows: 7, Valid: 3, Skipped: 3, Duplicate: 1}, summary)
}

func TestParseActivityRows_Errors(t *testing.T) {
	_, _, err := parseActivityRows(nil)
	assert.Error(t, err)

	_, _, err = parseActivityRows([][]string{{"user", "label"}})
	assert.Error(t, err)
}

func TestReadActivitiesFromXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"email", "activity"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"a@x.com", "Journaling"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"b@x.com", "Gardening"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	activities, summary, err := readActivitiesFromXLSX(path)
	require.NoError(t, err)
	assert.Len(t, activities, 2)
	assert.Equal(t, "Journaling", activities[0].Name)
	assert.Equal(t, 2, summary.Valid)

	_, _, err = readActivitiesFromXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func writeSheet(t *testing.T, rows ...[]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activities.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestRun_StopsBeforeDatabase(t *testing.T) {
	var out bytes.Buffer

	err := run(nil, strings.NewReader(""), &out)
	assert.ErrorIs(t, err, errUsage)

	err = run([]string{filepath.Join(t.TempDir(), "missing.xlsx")}, strings.NewReader(""), &out)
	assert.Error(t, err)

	// A sheet without data rows returns before any connection is made.
	out.Reset()
	path := writeSheet(t, []interface{}{"email", "activity"})
	require.NoError(t, run([]string{path}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Nothing to import.")
}

func TestImportActivities(t *testing.T) {
	gormDB, err := db.SetupTestDB(t)
	require.NoError(t, err)
	repo := repository.NewCustomActivityRepository(gormDB)
	ctx := context.Background()

	activities := func() []model.CustomActivity {
		return []model.CustomActivity{
			{UserEmail: "a@x.com", Name: "Yoga"},
			{UserEmail: "a@x.com", Name: "Running"},
		}
	}

	var out bytes.Buffer
	require.NoError(t, importActivities(ctx, repo, activities(), strings.NewReader("no\n"), &out))
	assert.Contains(t, out.String(), "Import cancelled.")
	stored, err := repo.ListByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, stored)

	out.Reset()
	require.NoError(t, importActivities(ctx, repo, activities(), strings.NewReader("yes\n"), &out))
	assert.Contains(t, out.String(), "Inserted: 2 (already present: 0)")

	out.Reset()
	require.NoError(t, importActivities(ctx, repo, activities(), strings.NewReader("Y"), &out))
	assert.Contains(t, out.String(), "Inserted: 0 (already present: 2)")

	stored, err = repo.ListByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
