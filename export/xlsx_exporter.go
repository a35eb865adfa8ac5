package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// XLSXExporter реализация Exporter для формата Excel
type XLSXExporter struct {
	logger *utils.PipelineLogger
}

// NewXLSXExporter создает новый экземпляр XLSXExporter
func NewXLSXExporter(logger *utils.PipelineLogger) *XLSXExporter {
	return &XLSXExporter{logger: logger}
}

// ExportTidy выгружает очищенную таблицу на лист Tidy
func (e *XLSXExporter) ExportTidy(tidy *models.TidyTable, outputPath string) error {
	f := excelize.NewFile()
	sheet := "Tidy"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"country", "iso3", "year", "value"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, row := range tidy.Rows {
		countryCell, _ := excelize.CoordinatesToCellName(1, i+2)
		iso3Cell, _ := excelize.CoordinatesToCellName(2, i+2)
		yearCell, _ := excelize.CoordinatesToCellName(3, i+2)
		valueCell, _ := excelize.CoordinatesToCellName(4, i+2)

		f.SetCellValue(sheet, countryCell, row.Country)
		f.SetCellValue(sheet, iso3Cell, row.ISO3)
		f.SetCellValue(sheet, yearCell, row.Year)
		f.SetCellValue(sheet, valueCell, row.Value)
	}

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "D", "D", 20)

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("ошибка при сохранении файла %s: %w", outputPath, err)
	}

	e.logger.Info("Таблица выгружена в %s (%d строк)", outputPath, len(tidy.Rows))
	return nil
}

// ExportWide выгружает широкую таблицу на лист Wide.
// Отсутствующие значения остаются пустыми ячейками
func (e *XLSXExporter) ExportWide(wide *models.WideTable, outputPath string) error {
	f := excelize.NewFile()
	sheet := "Wide"
	f.SetSheetName("Sheet1", sheet)

	yearHeader, _ := excelize.CoordinatesToCellName(1, 1)
	f.SetCellValue(sheet, yearHeader, "year")
	for j, country := range wide.Countries {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		f.SetCellValue(sheet, cell, country)
	}

	for i, year := range wide.Years {
		yearCell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetCellValue(sheet, yearCell, year)

		for j := range wide.Countries {
			value := wide.Values[i][j]
			if math.IsNaN(value) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+2, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	if len(wide.Countries) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(wide.Countries) + 1)
		f.SetColWidth(sheet, "B", lastCol, 18)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("ошибка при сохранении файла %s: %w", outputPath, err)
	}

	e.logger.Info("Таблица выгружена в %s (%d лет, %d стран)", outputPath, len(wide.Years), len(wide.Countries))
	return nil
}
