package transform

import (
	"fmt"
	"time"

	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// Transformer координирует очистку сырых наблюдений и пивот в широкий формат
type Transformer struct {
	logger   *utils.PipelineLogger
	cleaner  *Cleaner
	reshaper *Reshaper
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.PipelineLogger) *Transformer {
	return &Transformer{
		logger:   logger,
		cleaner:  NewCleaner(logger),
		reshaper: NewReshaper(logger),
	}
}

// Transform выполняет полный процесс преобразования сырых наблюдений:
// очистку в длинную таблицу и пивот в широкую
func (t *Transformer) Transform(observations []models.RawObservation) (*models.TidyTable, *models.WideTable, error) {
	startTime := time.Now()
	t.logger.LogTransformStart()

	// 1. Очистка и приведение типов
	t.logger.Info("Очистка наблюдений...")
	tidy, err := t.cleaner.Clean(observations)
	if err != nil {
		t.logger.Error("Ошибка при очистке наблюдений: %v", err)
		return nil, nil, fmt.Errorf("ошибка при очистке наблюдений: %w", err)
	}

	// 2. Пивот в широкий формат
	t.logger.Info("Пивот таблицы в широкий формат...")
	wide, err := t.reshaper.ToWide(tidy)
	if err != nil {
		t.logger.Error("Ошибка при пивоте таблицы: %v", err)
		return nil, nil, fmt.Errorf("ошибка при пивоте таблицы: %w", err)
	}

	t.logger.LogTransformComplete(len(tidy.Rows), len(wide.Years), len(wide.Countries), time.Since(startTime))

	return tidy, wide, nil
}
