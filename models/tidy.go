package models

import "sort"

// TidyRow представляет одну очищенную строку наблюдения показателя
type TidyRow struct {
	Country string  `json:"country"`
	ISO3    string  `json:"iso3"`
	Year    int     `json:"year"`
	Value   float64 `json:"value"`
}

// TidyTable содержит очищенные наблюдения в длинном формате,
// отсортированные по стране и году
type TidyTable struct {
	Rows []TidyRow
}

// Countries возвращает отсортированный список уникальных стран таблицы
func (t *TidyTable) Countries() []string {
	seen := make(map[string]bool)
	countries := make([]string, 0)

	for _, row := range t.Rows {
		if !seen[row.Country] {
			seen[row.Country] = true
			countries = append(countries, row.Country)
		}
	}

	sort.Strings(countries)
	return countries
}

// Years возвращает отсортированный список уникальных лет таблицы
func (t *TidyTable) Years() []int {
	seen := make(map[int]bool)
	years := make([]int, 0)

	for _, row := range t.Rows {
		if !seen[row.Year] {
			seen[row.Year] = true
			years = append(years, row.Year)
		}
	}

	sort.Ints(years)
	return years
}

// Equal сравнивает две таблицы построчно
func (t *TidyTable) Equal(other *TidyTable) bool {
	if other == nil {
		return false
	}
	if len(t.Rows) != len(other.Rows) {
		return false
	}

	for i := range t.Rows {
		if t.Rows[i] != other.Rows[i] {
			return false
		}
	}

	return true
}

// AsRawObservations преобразует очищенные строки обратно в сырые наблюдения,
// например для повторного прогона через очистку
func (t *TidyTable) AsRawObservations() []RawObservation {
	observations := make([]RawObservation, 0, len(t.Rows))

	for _, row := range t.Rows {
		observations = append(observations, RawObservation{
			Country: row.Country,
			ISO3:    row.ISO3,
			Year:    row.Year,
			Value:   row.Value,
		})
	}

	return observations
}
