package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileRunLogRepository реализация RunLogRepository поверх JSON файла
type FileRunLogRepository struct {
	filePath string
}

// NewFileRunLogRepository создает новый экземпляр FileRunLogRepository
func NewFileRunLogRepository(filePath string) *FileRunLogRepository {
	return &FileRunLogRepository{
		filePath: filePath,
	}
}

// readAll читает все записи журнала. Отсутствие файла дает пустой журнал
func (r *FileRunLogRepository) readAll() ([]PipelineRunLog, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []PipelineRunLog{}, nil
		}
		return nil, fmt.Errorf("ошибка при чтении журнала запусков: %w", err)
	}

	var logs []PipelineRunLog
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, fmt.Errorf("ошибка при разборе журнала запусков: %w", err)
	}

	return logs, nil
}

// writeAll записывает журнал целиком
func (r *FileRunLogRepository) writeAll(logs []PipelineRunLog) error {
	if dir := filepath.Dir(r.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ошибка при создании каталога журнала: %w", err)
		}
	}

	data, err := json.MarshalIndent(logs, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка при сериализации журнала запусков: %w", err)
	}

	if err := os.WriteFile(r.filePath, data, 0644); err != nil {
		return fmt.Errorf("ошибка при записи журнала запусков: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске пайплайна
func (r *FileRunLogRepository) CreateLogEntry(startTime time.Time) (string, error) {
	logs, err := r.readAll()
	if err != nil {
		return "", err
	}

	entry := PipelineRunLog{
		ID:        uuid.New().String(),
		StartTime: startTime,
		Status:    "in_progress",
	}
	logs = append(logs, entry)

	if err := r.writeAll(logs); err != nil {
		return "", err
	}

	return entry.ID, nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении пайплайна
func (r *FileRunLogRepository) UpdateLogEntrySuccess(id string, endTime time.Time, stats RunStats) error {
	logs, err := r.readAll()
	if err != nil {
		return err
	}

	for i := range logs {
		if logs[i].ID != id {
			continue
		}

		logs[i].EndTime = endTime
		logs[i].Status = "success"
		logs[i].CountriesRequested = stats.CountriesRequested
		logs[i].ObservationsFetched = stats.ObservationsFetched
		logs[i].RowsCleaned = stats.RowsCleaned
		logs[i].YearsCovered = stats.YearsCovered
		logs[i].ChartPath = stats.ChartPath
		logs[i].ExportPaths = stats.ExportPaths
		logs[i].ExecutionTimeSeconds = endTime.Sub(logs[i].StartTime).Seconds()

		return r.writeAll(logs)
	}

	return fmt.Errorf("запись о запуске с ID %s не найдена", id)
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении пайплайна
func (r *FileRunLogRepository) UpdateLogEntryFailure(id string, endTime time.Time, errorMessage string) error {
	logs, err := r.readAll()
	if err != nil {
		return err
	}

	for i := range logs {
		if logs[i].ID != id {
			continue
		}

		logs[i].EndTime = endTime
		logs[i].Status = "failed"
		logs[i].ErrorMessage = errorMessage
		logs[i].ExecutionTimeSeconds = endTime.Sub(logs[i].StartTime).Seconds()

		return r.writeAll(logs)
	}

	return fmt.Errorf("запись о запуске с ID %s не найдена", id)
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске.
// Если успешных запусков не было, возвращает nil без ошибки
func (r *FileRunLogRepository) GetLastSuccessfulRun() (*PipelineRunLog, error) {
	logs, err := r.readAll()
	if err != nil {
		return nil, err
	}

	var last *PipelineRunLog
	for i := range logs {
		if logs[i].Status != "success" {
			continue
		}
		if last == nil || logs[i].EndTime.After(last.EndTime) {
			last = &logs[i]
		}
	}

	return last, nil
}

// GetRunStats получает записи о запусках за последние дни
func (r *FileRunLogRepository) GetRunStats(days int) ([]PipelineRunLog, error) {
	logs, err := r.readAll()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	recent := make([]PipelineRunLog, 0)
	for _, entry := range logs {
		if entry.StartTime.After(cutoff) {
			recent = append(recent, entry)
		}
	}

	return recent, nil
}
