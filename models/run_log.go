package models

import (
	"time"
)

// PipelineRunLog представляет запись о запуске пайплайна
type PipelineRunLog struct {
	ID                   string    `json:"id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	CountriesRequested   int       `json:"countries_requested"`
	ObservationsFetched  int       `json:"observations_fetched"`
	RowsCleaned          int       `json:"rows_cleaned"`
	YearsCovered         int       `json:"years_covered"`
	ChartPath            string    `json:"chart_path,omitempty"`
	ExportPaths          []string  `json:"export_paths,omitempty"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// RunStats содержит итоги запуска, попадающие в журнал при успешном завершении
type RunStats struct {
	CountriesRequested  int
	ObservationsFetched int
	RowsCleaned         int
	YearsCovered        int
	ChartPath           string
	ExportPaths         []string
}

// RunLogRepository представляет репозиторий для работы с журналом запусков
type RunLogRepository interface {
	// CreateLogEntry создает новую запись о запуске пайплайна
	CreateLogEntry(startTime time.Time) (string, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении пайплайна
	UpdateLogEntrySuccess(id string, endTime time.Time, stats RunStats) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении пайплайна
	UpdateLogEntryFailure(id string, endTime time.Time, errorMessage string) error

	// GetLastSuccessfulRun получает информацию о последнем успешном запуске
	GetLastSuccessfulRun() (*PipelineRunLog, error)

	// GetRunStats получает записи о запусках за последние дни
	GetRunStats(days int) ([]PipelineRunLog, error)
}
