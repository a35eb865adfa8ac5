package trend

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// CSVPredictionRepository реализация PredictionRepository поверх CSV файла
type CSVPredictionRepository struct {
	outputPath string
}

// NewCSVPredictionRepository создает новый экземпляр CSVPredictionRepository
func NewCSVPredictionRepository(outputPath string) *CSVPredictionRepository {
	return &CSVPredictionRepository{
		outputPath: outputPath,
	}
}

// SavePredictions записывает прогнозы всех стран в один CSV файл
func (r *CSVPredictionRepository) SavePredictions(trends []CountryTrend) error {
	if dir := filepath.Dir(r.outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ошибка при создании каталога прогнозов: %w", err)
		}
	}

	file, err := os.Create(r.outputPath)
	if err != nil {
		return fmt.Errorf("ошибка при создании файла %s: %w", r.outputPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"country", "iso3", "year", "forecast_trillions", "ci_lower", "ci_upper", "r2"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("ошибка при записи заголовка прогнозов: %w", err)
	}

	for _, trend := range trends {
		for _, forecast := range trend.Forecasts {
			record := []string{
				trend.Country,
				trend.ISO3,
				strconv.Itoa(forecast.Year),
				strconv.FormatFloat(forecast.ForecastValue, 'f', 3, 64),
				strconv.FormatFloat(forecast.CILower, 'f', 3, 64),
				strconv.FormatFloat(forecast.CIUpper, 'f', 3, 64),
				strconv.FormatFloat(trend.Result.R2, 'f', 3, 64),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("ошибка при записи строки прогноза: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("ошибка при записи прогнозов: %w", err)
	}

	return nil
}
