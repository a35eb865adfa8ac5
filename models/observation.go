package models

// RawObservation представляет одно наблюдение показателя в сыром виде,
// до очистки и приведения типов
type RawObservation struct {
	Country string // Полное название страны ("Japan")
	ISO3    string // Трехбуквенный код страны ("JPN")
	Year    any    // Год наблюдения (int или строка до приведения типов)
	Value   any    // Значение показателя (float64, строка или nil, если значение отсутствует)
}
