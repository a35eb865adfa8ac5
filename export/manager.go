package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// Имена файлов выгрузки внутри каталога результатов
const (
	tidyCSVName  = "gdp_tidy.csv"
	wideCSVName  = "gdp_wide.csv"
	tidyXLSXName = "gdp_tidy.xlsx"
	wideXLSXName = "gdp_wide.xlsx"
)

// ExportManager отвечает за выгрузку таблиц во все поддерживаемые форматы
type ExportManager struct {
	outputDir string
	logger    *utils.PipelineLogger
	csv       Exporter
	xlsx      Exporter
}

// NewExportManager создает новый экземпляр ExportManager
func NewExportManager(outputDir string, logger *utils.PipelineLogger) *ExportManager {
	return &ExportManager{
		outputDir: outputDir,
		logger:    logger,
		csv:       NewCSVExporter(logger),
		xlsx:      NewXLSXExporter(logger),
	}
}

// ExportAll выполняет фазу выгрузки: обе таблицы в CSV и XLSX.
// Возвращает пути созданных файлов
func (m *ExportManager) ExportAll(tidy *models.TidyTable, wide *models.WideTable) ([]string, error) {
	startTime := time.Now()
	m.logger.Info("Начало фазы Export (Выгрузка таблиц)")

	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		m.logger.Error("Ошибка при создании каталога %s: %v", m.outputDir, err)
		return nil, fmt.Errorf("ошибка при создании каталога выгрузки: %w", err)
	}

	exported := make([]string, 0, 4)

	// 1. Очищенная таблица в CSV
	tidyCSV := filepath.Join(m.outputDir, tidyCSVName)
	if err := m.csv.ExportTidy(tidy, tidyCSV); err != nil {
		m.logger.Error("Ошибка при выгрузке очищенной таблицы в CSV: %v", err)
		return nil, fmt.Errorf("ошибка при выгрузке очищенной таблицы в CSV: %w", err)
	}
	exported = append(exported, tidyCSV)

	// 2. Широкая таблица в CSV
	wideCSV := filepath.Join(m.outputDir, wideCSVName)
	if err := m.csv.ExportWide(wide, wideCSV); err != nil {
		m.logger.Error("Ошибка при выгрузке широкой таблицы в CSV: %v", err)
		return nil, fmt.Errorf("ошибка при выгрузке широкой таблицы в CSV: %w", err)
	}
	exported = append(exported, wideCSV)

	// 3. Очищенная таблица в XLSX
	tidyXLSX := filepath.Join(m.outputDir, tidyXLSXName)
	if err := m.xlsx.ExportTidy(tidy, tidyXLSX); err != nil {
		m.logger.Error("Ошибка при выгрузке очищенной таблицы в XLSX: %v", err)
		return nil, fmt.Errorf("ошибка при выгрузке очищенной таблицы в XLSX: %w", err)
	}
	exported = append(exported, tidyXLSX)

	// 4. Широкая таблица в XLSX
	wideXLSX := filepath.Join(m.outputDir, wideXLSXName)
	if err := m.xlsx.ExportWide(wide, wideXLSX); err != nil {
		m.logger.Error("Ошибка при выгрузке широкой таблицы в XLSX: %v", err)
		return nil, fmt.Errorf("ошибка при выгрузке широкой таблицы в XLSX: %w", err)
	}
	exported = append(exported, wideXLSX)

	m.logger.Info("Фаза Export завершена. Длительность: %v", time.Since(startTime))

	return exported, nil
}
