package transform

import (
	"math"

	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// Reshaper выполняет пивот очищенной таблицы в широкий формат и обратно
type Reshaper struct {
	logger *utils.PipelineLogger
}

// NewReshaper создает новый экземпляр Reshaper
func NewReshaper(logger *utils.PipelineLogger) *Reshaper {
	return &Reshaper{logger: logger}
}

// ToWide пивотирует очищенную таблицу: строки - годы по возрастанию,
// столбцы - страны в алфавитном порядке. Повторная пара (год, страна)
// дает DuplicateKeyError
func (r *Reshaper) ToWide(tidy *models.TidyTable) (*models.WideTable, error) {
	years := tidy.Years()
	countries := tidy.Countries()

	// Индексы строк и столбцов для заполнения матрицы
	yearIdx := make(map[int]int, len(years))
	for i, year := range years {
		yearIdx[year] = i
	}
	countryIdx := make(map[string]int, len(countries))
	for j, country := range countries {
		countryIdx[country] = j
	}

	// Матрица заполняется NaN, отсутствующие ячейки так и остаются NaN
	values := make([][]float64, len(years))
	for i := range values {
		values[i] = make([]float64, len(countries))
		for j := range values[i] {
			values[i][j] = math.NaN()
		}
	}

	iso3s := make([]string, len(countries))

	for _, row := range tidy.Rows {
		i := yearIdx[row.Year]
		j := countryIdx[row.Country]

		if !math.IsNaN(values[i][j]) {
			r.logger.Error("Дубликат наблюдения: страна %s, год %d", row.Country, row.Year)
			return nil, &DuplicateKeyError{Year: row.Year, Country: row.Country}
		}

		values[i][j] = row.Value
		iso3s[j] = row.ISO3
	}

	return &models.WideTable{
		Years:     years,
		Countries: countries,
		ISO3s:     iso3s,
		Values:    values,
	}, nil
}

// Melt разворачивает широкую таблицу обратно в длинный формат.
// Ячейки без значения (NaN) пропускаются
func (r *Reshaper) Melt(wide *models.WideTable) *models.TidyTable {
	rows := make([]models.TidyRow, 0, len(wide.Years)*len(wide.Countries))

	// Столбцы уже в алфавитном порядке, годы по возрастанию,
	// поэтому обход по столбцам сразу дает сортировку по стране и году
	for j, country := range wide.Countries {
		for i, year := range wide.Years {
			value := wide.Values[i][j]
			if math.IsNaN(value) {
				continue
			}

			rows = append(rows, models.TidyRow{
				Country: country,
				ISO3:    wide.ISO3s[j],
				Year:    year,
				Value:   value,
			})
		}
	}

	return &models.TidyTable{Rows: rows}
}
