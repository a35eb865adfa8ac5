package transform

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// Cleaner выполняет очистку сырых наблюдений и приведение типов
type Cleaner struct {
	logger *utils.PipelineLogger
}

// NewCleaner создает новый экземпляр Cleaner
func NewCleaner(logger *utils.PipelineLogger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean превращает сырые наблюдения в очищенную таблицу: отбрасывает
// наблюдения без значения, приводит год к int и значение к float64,
// проецирует четыре канонических поля и сортирует по стране и году.
// Дубликаты (страна, год) не удаляются
func (c *Cleaner) Clean(observations []models.RawObservation) (*models.TidyTable, error) {
	rows := make([]models.TidyRow, 0, len(observations))

	for _, obs := range observations {
		// Пропускаем наблюдения без значения
		if obs.Value == nil {
			continue
		}

		year, err := coerceYear(obs.Year)
		if err != nil {
			c.logger.Error("Ошибка при приведении года %v: %v", obs.Year, err)
			return nil, err
		}

		value, err := coerceValue(obs.Value)
		if err != nil {
			c.logger.Error("Ошибка при приведении значения %v: %v", obs.Value, err)
			return nil, err
		}

		rows = append(rows, models.TidyRow{
			Country: obs.Country,
			ISO3:    obs.ISO3,
			Year:    year,
			Value:   value,
		})
	}

	// Сортируем по стране, затем по году
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Year < rows[j].Year
	})

	c.logger.Debug("Очистка завершена: %d сырых наблюдений, %d строк в таблице", len(observations), len(rows))

	return &models.TidyTable{Rows: rows}, nil
}

// coerceYear приводит значение года к int. Принимает целые числа, строки
// с целым числом и вещественные числа (дробная часть отбрасывается)
func coerceYear(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		parsed, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, &TypeCoercionError{Field: "year", Raw: raw, Err: err}
		}
		return parsed, nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, &TypeCoercionError{Field: "year", Raw: raw, Err: err}
		}
		return parsed, nil
	default:
		return 0, &TypeCoercionError{Field: "year", Raw: raw}
	}
}

// coerceValue приводит значение показателя к float64. Принимает
// вещественные и целые числа, а также строки с числом
func coerceValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, &TypeCoercionError{Field: "value", Raw: raw, Err: err}
		}
		return parsed, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, &TypeCoercionError{Field: "value", Raw: raw, Err: err}
		}
		return parsed, nil
	default:
		return 0, &TypeCoercionError{Field: "value", Raw: raw}
	}
}
