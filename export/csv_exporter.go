package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// CSVExporter реализация Exporter для формата CSV
type CSVExporter struct {
	logger *utils.PipelineLogger
}

// NewCSVExporter создает новый экземпляр CSVExporter
func NewCSVExporter(logger *utils.PipelineLogger) *CSVExporter {
	return &CSVExporter{logger: logger}
}

// ExportTidy выгружает очищенную таблицу: колонки country, iso3, year, value
func (e *CSVExporter) ExportTidy(tidy *models.TidyTable, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("ошибка при создании файла %s: %w", outputPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"country", "iso3", "year", "value"}); err != nil {
		return fmt.Errorf("ошибка при записи заголовка CSV: %w", err)
	}

	for _, row := range tidy.Rows {
		record := []string{
			row.Country,
			row.ISO3,
			strconv.Itoa(row.Year),
			strconv.FormatFloat(row.Value, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("ошибка при записи строки CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("ошибка при записи CSV: %w", err)
	}

	e.logger.Info("Таблица выгружена в %s (%d строк)", outputPath, len(tidy.Rows))
	return nil
}

// ExportWide выгружает широкую таблицу: первая колонка year, дальше по
// колонке на страну. Отсутствующие значения остаются пустыми ячейками
func (e *CSVExporter) ExportWide(wide *models.WideTable, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("ошибка при создании файла %s: %w", outputPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := make([]string, 0, len(wide.Countries)+1)
	header = append(header, "year")
	header = append(header, wide.Countries...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("ошибка при записи заголовка CSV: %w", err)
	}

	for i, year := range wide.Years {
		record := make([]string, 0, len(wide.Countries)+1)
		record = append(record, strconv.Itoa(year))

		for j := range wide.Countries {
			value := wide.Values[i][j]
			if math.IsNaN(value) {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(value, 'f', -1, 64))
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("ошибка при записи строки CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("ошибка при записи CSV: %w", err)
	}

	e.logger.Info("Таблица выгружена в %s (%d лет, %d стран)", outputPath, len(wide.Years), len(wide.Countries))
	return nil
}
