package trend

import (
	"fmt"
	"math"
	"time"

	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// Значения показателя анализируются в триллионах
const trillion = 1e12

// Config конфигурация процессора трендов
type Config struct {
	// Количество лет для прогноза
	ForecastYears int
	// Уровень доверия (0.90, 0.95, 0.99)
	ConfidenceLevel float64
	// Минимальное значение r² для признания модели значимой
	MinR2Threshold float64
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		ForecastYears:   5,
		ConfidenceLevel: 0.95,
		MinR2Threshold:  0.30, // 30% объяснённой вариации
	}
}

// TrendProcessor строит линейные тренды показателя по странам
type TrendProcessor struct {
	repository PredictionRepository
	logger     *utils.PipelineLogger
	config     Config
}

// NewTrendProcessor создает новый экземпляр TrendProcessor
func NewTrendProcessor(repository PredictionRepository, logger *utils.PipelineLogger, config Config) *TrendProcessor {
	return &TrendProcessor{
		repository: repository,
		logger:     logger,
		config:     config,
	}
}

// Process строит модель тренда по каждой стране широкой таблицы,
// генерирует прогнозы и сохраняет их
func (p *TrendProcessor) Process(wide *models.WideTable) ([]CountryTrend, error) {
	startTime := time.Now()
	p.logger.Info("Запуск расчета трендов показателя по странам")

	trends := make([]CountryTrend, 0, len(wide.Countries))

	for j, country := range wide.Countries {
		// 1. Собираем точки данных страны (значения в триллионах)
		points := make([]DataPoint, 0, len(wide.Years))
		for i, year := range wide.Years {
			value := wide.Values[i][j]
			if math.IsNaN(value) {
				continue
			}
			points = append(points, DataPoint{
				X:    float64(year),
				Y:    value / trillion,
				Year: year,
			})
		}

		if len(points) < 2 {
			p.logger.Info("Недостаточно данных для тренда по %s (%d точек), страна пропущена", country, len(points))
			continue
		}

		// 2. Строим модель линейной регрессии
		result, err := LinearRegression(points)
		if err != nil {
			p.logger.Error("Ошибка при построении модели для %s: %v", country, err)
			return nil, fmt.Errorf("ошибка при построении модели для %s: %w", country, err)
		}

		p.logger.Info("Модель %s: a=%.3f, b=%.3f, R=%.3f, R²=%.3f",
			country, result.A, result.B, result.R, result.R2)

		// Если модель недостаточно хороша, логируем предупреждение
		if result.R2 < p.config.MinR2Threshold {
			p.logger.Info("Низкое качество модели по %s (R²=%.3f < %.3f). Однако прогноз будет сделан.",
				country, result.R2, p.config.MinR2Threshold)
		}

		// 3. Генерируем прогнозы
		forecasts := GenerateForecasts(result, p.config.ForecastYears, p.config.ConfidenceLevel)

		trends = append(trends, CountryTrend{
			Country:   country,
			ISO3:      wide.ISO3For(country),
			Result:    result,
			Forecasts: forecasts,
		})
	}

	// 4. Сохраняем прогнозы
	if len(trends) > 0 {
		p.logger.Info("Сохранение прогнозов по %d странам", len(trends))
		if err := p.repository.SavePredictions(trends); err != nil {
			p.logger.Error("Ошибка при сохранении прогнозов: %v", err)
			return nil, fmt.Errorf("ошибка при сохранении прогнозов: %w", err)
		}
	}

	p.logger.Info("Расчет трендов завершен. Время выполнения: %v", time.Since(startTime))

	return trends, nil
}
