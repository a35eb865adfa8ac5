package export_test

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/JacobSchwandt03/gdp-trackr/export"
	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

var (
	_ export.Exporter = (*export.CSVExporter)(nil)
	_ export.Exporter = (*export.XLSXExporter)(nil)
)

func testLogger() *utils.PipelineLogger {
	return utils.NewPipelineLoggerWithWriter(io.Discard, false)
}

func exportFixtures() (*models.TidyTable, *models.WideTable) {
	tidy := &models.TidyTable{
		Rows: []models.TidyRow{
			{Country: "Brazil", ISO3: "BRA", Year: 2000, Value: 655400000000},
			{Country: "Japan", ISO3: "JPN", Year: 2000, Value: 4968359828197.8},
			{Country: "Japan", ISO3: "JPN", Year: 2001, Value: 4374771000000},
		},
	}

	wide := &models.WideTable{
		Years:     []int{2000, 2001},
		Countries: []string{"Brazil", "Japan"},
		ISO3s:     []string{"BRA", "JPN"},
		Values: [][]float64{
			{655400000000, 4968359828197.8},
			{math.NaN(), 4374771000000},
		},
	}

	return tidy, wide
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return records
}

func TestExportManager_ExportAll(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	manager := export.NewExportManager(outputDir, testLogger())
	tidy, wide := exportFixtures()

	paths, err := manager.ExportAll(tidy, wide)
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	if len(paths) != 4 {
		t.Fatalf("ExportAll() returned %d paths, want 4", len(paths))
	}

	wantNames := []string{"gdp_tidy.csv", "gdp_wide.csv", "gdp_tidy.xlsx", "gdp_wide.xlsx"}
	for i, path := range paths {
		if filepath.Base(path) != wantNames[i] {
			t.Errorf("paths[%d] = %q, want file name %q", i, path, wantNames[i])
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("exported file %s is missing: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("exported file %s is empty", path)
		}
	}
}

func TestExportManager_ExportAll_CreatesOutputDir(t *testing.T) {
	t.Parallel()

	outputDir := filepath.Join(t.TempDir(), "nested", "output")
	manager := export.NewExportManager(outputDir, testLogger())
	tidy, wide := exportFixtures()

	if _, err := manager.ExportAll(tidy, wide); err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	if _, err := os.Stat(outputDir); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
}

func TestCSVExporter_ExportTidy(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "tidy.csv")
	exporter := export.NewCSVExporter(testLogger())
	tidy, _ := exportFixtures()

	if err := exporter.ExportTidy(tidy, outputPath); err != nil {
		t.Fatalf("ExportTidy() error = %v", err)
	}

	records := readCSV(t, outputPath)

	want := [][]string{
		{"country", "iso3", "year", "value"},
		{"Brazil", "BRA", "2000", "655400000000"},
		{"Japan", "JPN", "2000", "4968359828197.8"},
		{"Japan", "JPN", "2001", "4374771000000"},
	}

	if len(records) != len(want) {
		t.Fatalf("CSV has %d records, want %d", len(records), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("record[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}

func TestCSVExporter_ExportWide(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "wide.csv")
	exporter := export.NewCSVExporter(testLogger())
	_, wide := exportFixtures()

	if err := exporter.ExportWide(wide, outputPath); err != nil {
		t.Fatalf("ExportWide() error = %v", err)
	}

	records := readCSV(t, outputPath)

	want := [][]string{
		{"year", "Brazil", "Japan"},
		{"2000", "655400000000", "4968359828197.8"},
		{"2001", "", "4374771000000"},
	}

	if len(records) != len(want) {
		t.Fatalf("CSV has %d records, want %d", len(records), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("record[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}

func TestXLSXExporter_ExportTidy(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "tidy.xlsx")
	exporter := export.NewXLSXExporter(testLogger())
	tidy, _ := exportFixtures()

	if err := exporter.ExportTidy(tidy, outputPath); err != nil {
		t.Fatalf("ExportTidy() error = %v", err)
	}

	f, err := excelize.OpenFile(outputPath)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "country"},
		{"B1", "iso3"},
		{"C1", "year"},
		{"D1", "value"},
		{"A2", "Brazil"},
		{"B2", "BRA"},
		{"C2", "2000"},
		{"D2", "655400000000"},
		{"A3", "Japan"},
		{"D3", "4968359828197.8"},
	}

	for _, tt := range tests {
		got, err := f.GetCellValue("Tidy", tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(Tidy, %s) error = %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("cell %s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestXLSXExporter_ExportWide(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "wide.xlsx")
	exporter := export.NewXLSXExporter(testLogger())
	_, wide := exportFixtures()

	if err := exporter.ExportWide(wide, outputPath); err != nil {
		t.Fatalf("ExportWide() error = %v", err)
	}

	f, err := excelize.OpenFile(outputPath)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "year"},
		{"B1", "Brazil"},
		{"C1", "Japan"},
		{"A2", "2000"},
		{"B2", "655400000000"},
		{"C2", "4968359828197.8"},
		{"A3", "2001"},
		{"B3", ""}, // отсутствующее значение остается пустой ячейкой
		{"C3", "4374771000000"},
	}

	for _, tt := range tests {
		got, err := f.GetCellValue("Wide", tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(Wide, %s) error = %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("cell %s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestXLSXExporter_ExportWide_Empty(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "empty.xlsx")
	exporter := export.NewXLSXExporter(testLogger())

	if err := exporter.ExportWide(&models.WideTable{}, outputPath); err != nil {
		t.Fatalf("ExportWide() of empty table error = %v", err)
	}

	f, err := excelize.OpenFile(outputPath)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Wide", "A1")
	if err != nil {
		t.Fatalf("GetCellValue(Wide, A1) error = %v", err)
	}
	if got != "year" {
		t.Errorf("cell A1 = %q, want year", got)
	}
}
