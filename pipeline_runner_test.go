package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JacobSchwandt03/gdp-trackr/config"
	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/trend"
)

// pipelineEnvelope имитирует ответ World Bank API для двух стран за 2000-2002.
// У Brazil за 2001 год значения нет
const pipelineEnvelope = `[
  {"page": 1, "pages": 1, "per_page": 20000, "total": 6, "lastupdated": "2023-12-19"},
  [
    {"indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"}, "country": {"id": "JPN", "value": "Japan"}, "countryiso3code": "JPN", "date": "2002", "value": 4182846200000.0, "unit": "", "obs_status": "", "decimal": 0},
    {"indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"}, "country": {"id": "JPN", "value": "Japan"}, "countryiso3code": "JPN", "date": "2001", "value": 4374771000000.0, "unit": "", "obs_status": "", "decimal": 0},
    {"indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"}, "country": {"id": "JPN", "value": "Japan"}, "countryiso3code": "JPN", "date": "2000", "value": 4968359828197.8, "unit": "", "obs_status": "", "decimal": 0},
    {"indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"}, "country": {"id": "BRA", "value": "Brazil"}, "countryiso3code": "BRA", "date": "2002", "value": 509795000000.0, "unit": "", "obs_status": "", "decimal": 0},
    {"indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"}, "country": {"id": "BRA", "value": "Brazil"}, "countryiso3code": "BRA", "date": "2001", "value": null, "unit": "", "obs_status": "", "decimal": 0},
    {"indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"}, "country": {"id": "BRA", "value": "Brazil"}, "countryiso3code": "BRA", "date": "2000", "value": 655420000000.0, "unit": "", "obs_status": "", "decimal": 0}
  ]
]`

// chdir переходит в dir на время теста и возвращает предыдущую
// директорию при завершении (аналог t.Chdir из Go 1.24)
func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func testPipelineConfig(t *testing.T, baseURL string) config.PipelineConfig {
	t.Helper()

	cfg := config.DefaultPipelineConfig
	cfg.APIConfig.BaseURL = baseURL
	cfg.StartYear = 2000
	cfg.EndYear = 2002
	cfg.OutputDir = t.TempDir()
	cfg.EnableDetailedLogging = false
	return cfg
}

func readRunJournal(t *testing.T, outputDir string) []models.PipelineRunLog {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(outputDir, "pipeline_runs.json"))
	if err != nil {
		t.Fatalf("run journal was not written: %v", err)
	}

	var entries []models.PipelineRunLog
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("failed to parse run journal: %v", err)
	}
	return entries
}

func TestNewPipelineRunner_UnknownCountry(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := testPipelineConfig(t, "http://localhost:0")

	_, err := NewPipelineRunner(cfg, []string{"Japan", "Atlantis"}, "")
	if err == nil {
		t.Fatal("NewPipelineRunner() error = nil, want unknown country error")
	}
	if !strings.Contains(err.Error(), "Atlantis") {
		t.Errorf("error %q does not name the unknown country", err)
	}
}

func TestNewPipelineRunner_DefaultCountries(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := testPipelineConfig(t, "http://localhost:0")

	runner, err := NewPipelineRunner(cfg, nil, "")
	if err != nil {
		t.Fatalf("NewPipelineRunner() error = %v", err)
	}

	if len(runner.countries) != 7 {
		t.Errorf("default countries = %d, want all 7 supported", len(runner.countries))
	}

	codes := runner.requestedISO3()
	if len(codes) != 7 {
		t.Fatalf("requestedISO3() returned %d codes, want 7", len(codes))
	}
	for i, code := range codes {
		if len(code) != 3 {
			t.Errorf("code %d = %q, want three letter ISO3", i, code)
		}
	}
}

func TestPipelineRunner_ExecutePipeline(t *testing.T) {
	chdir(t, t.TempDir())

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, pipelineEnvelope)
	}))
	defer server.Close()

	cfg := testPipelineConfig(t, server.URL)

	runner, err := NewPipelineRunner(cfg, []string{"Brazil", "Japan"}, "GDP test run")
	if err != nil {
		t.Fatalf("NewPipelineRunner() error = %v", err)
	}

	if err := runner.ExecutePipeline(); err != nil {
		t.Fatalf("ExecutePipeline() error = %v", err)
	}

	if gotPath != "/country/BRA;JPN/indicator/NY.GDP.MKTP.CD" {
		t.Errorf("request path = %q, want /country/BRA;JPN/indicator/NY.GDP.MKTP.CD", gotPath)
	}

	// Все артефакты пайплайна на месте
	wantFiles := []string{
		"gdp_tidy.csv",
		"gdp_wide.csv",
		"gdp_tidy.xlsx",
		"gdp_wide.xlsx",
		"gdp_chart.png",
		"gdp_forecast.csv",
		"pipeline_runs.json",
	}
	for _, name := range wantFiles {
		path := filepath.Join(cfg.OutputDir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("artifact %s is missing: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("artifact %s is empty", name)
		}
	}

	entries := readRunJournal(t, cfg.OutputDir)
	if len(entries) != 1 {
		t.Fatalf("run journal has %d entries, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Status != "success" {
		t.Errorf("run status = %q, want success", entry.Status)
	}
	if entry.CountriesRequested != 2 {
		t.Errorf("countries requested = %d, want 2", entry.CountriesRequested)
	}
	if entry.ObservationsFetched != 5 {
		t.Errorf("observations fetched = %d, want 5 (null dropped)", entry.ObservationsFetched)
	}
	if entry.RowsCleaned != 5 {
		t.Errorf("rows cleaned = %d, want 5", entry.RowsCleaned)
	}
	if entry.YearsCovered != 3 {
		t.Errorf("years covered = %d, want 3", entry.YearsCovered)
	}
	if entry.ChartPath != filepath.Join(cfg.OutputDir, "gdp_chart.png") {
		t.Errorf("chart path = %q, want the saved chart", entry.ChartPath)
	}
	if len(entry.ExportPaths) != 4 {
		t.Errorf("export paths = %v, want 4 entries", entry.ExportPaths)
	}
	if entry.ExecutionTimeSeconds < 0 {
		t.Errorf("execution time = %v, want non-negative", entry.ExecutionTimeSeconds)
	}
}

func TestPipelineRunner_ExecutePipeline_FetchFailure(t *testing.T) {
	chdir(t, t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testPipelineConfig(t, server.URL)

	runner, err := NewPipelineRunner(cfg, []string{"Japan"}, "")
	if err != nil {
		t.Fatalf("NewPipelineRunner() error = %v", err)
	}

	if err := runner.ExecutePipeline(); err == nil {
		t.Fatal("ExecutePipeline() error = nil, want fetch phase error")
	}

	entries := readRunJournal(t, cfg.OutputDir)
	if len(entries) != 1 {
		t.Fatalf("run journal has %d entries, want 1", len(entries))
	}
	if entries[0].Status != "failed" {
		t.Errorf("run status = %q, want failed", entries[0].Status)
	}
	if entries[0].ErrorMessage == "" {
		t.Error("failed run has no error message")
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "gdp_chart.png")); err == nil {
		t.Error("chart file exists after a failed fetch")
	}
}

func TestPipelineRunner_ExecutePipeline_NoData(t *testing.T) {
	chdir(t, t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"page": 1, "pages": 0, "total": 0}]`)
	}))
	defer server.Close()

	cfg := testPipelineConfig(t, server.URL)

	runner, err := NewPipelineRunner(cfg, []string{"Japan"}, "")
	if err != nil {
		t.Fatalf("NewPipelineRunner() error = %v", err)
	}

	if err := runner.ExecutePipeline(); err != nil {
		t.Fatalf("ExecutePipeline() with no data error = %v", err)
	}

	entries := readRunJournal(t, cfg.OutputDir)
	if len(entries) != 1 {
		t.Fatalf("run journal has %d entries, want 1", len(entries))
	}
	if entries[0].Status != "success" {
		t.Errorf("run status = %q, want success for an empty result", entries[0].Status)
	}
	if entries[0].ObservationsFetched != 0 {
		t.Errorf("observations fetched = %d, want 0", entries[0].ObservationsFetched)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "gdp_chart.png")); err == nil {
		t.Error("chart file exists for an empty run")
	}
}

func TestPipelineRunner_RunTrendAnalysis(t *testing.T) {
	chdir(t, t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, pipelineEnvelope)
	}))
	defer server.Close()

	cfg := testPipelineConfig(t, server.URL)

	runner, err := NewPipelineRunner(cfg, []string{"Brazil", "Japan"}, "")
	if err != nil {
		t.Fatalf("NewPipelineRunner() error = %v", err)
	}

	trendConfig := trend.Config{ForecastYears: 3, ConfidenceLevel: 0.95, MinR2Threshold: 0.3}
	if err := runner.RunTrendAnalysis(trendConfig); err != nil {
		t.Fatalf("RunTrendAnalysis() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "gdp_forecast.csv")); err != nil {
		t.Errorf("forecast file is missing: %v", err)
	}

	// Режим trend не строит график и не делает выгрузок
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "gdp_chart.png")); err == nil {
		t.Error("chart file exists after a trend-only run")
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "gdp_tidy.csv")); err == nil {
		t.Error("export file exists after a trend-only run")
	}
}

func TestParseCountries(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty string", "", nil},
		{"single country", "Japan", []string{"Japan"}},
		{"comma separated", "Japan,Brazil", []string{"Japan", "Brazil"}},
		{"spaces and empty segments", " Japan , , Brazil ", []string{"Japan", "Brazil"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCountries(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("parseCountries(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("parseCountries(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}
