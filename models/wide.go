package models

import "math"

// WideTable содержит наблюдения в широком формате: строки - годы,
// столбцы - страны. Отсутствующие значения помечены NaN
type WideTable struct {
	Years     []int       // Отсортированные годы (индекс строки)
	Countries []string    // Отсортированные страны (индекс столбца)
	ISO3s     []string    // Коды стран, параллельны Countries
	Values    [][]float64 // Values[i][j] - значение за Years[i] по Countries[j]
}

// IsEmpty сообщает, что таблица не содержит ни одного наблюдения
func (w *WideTable) IsEmpty() bool {
	return len(w.Years) == 0 || len(w.Countries) == 0
}

// Value возвращает значение за указанный год по указанной стране.
// Второй результат false, если такой ячейки нет или значение отсутствует
func (w *WideTable) Value(year int, country string) (float64, bool) {
	rowIdx := -1
	for i, y := range w.Years {
		if y == year {
			rowIdx = i
			break
		}
	}
	if rowIdx < 0 {
		return 0, false
	}

	colIdx := -1
	for j, c := range w.Countries {
		if c == country {
			colIdx = j
			break
		}
	}
	if colIdx < 0 {
		return 0, false
	}

	value := w.Values[rowIdx][colIdx]
	if math.IsNaN(value) {
		return 0, false
	}

	return value, true
}

// ISO3For возвращает код страны по ее полному названию
func (w *WideTable) ISO3For(country string) string {
	for j, c := range w.Countries {
		if c == country {
			return w.ISO3s[j]
		}
	}
	return ""
}
