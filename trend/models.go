package trend

// DataPoint представляет точку данных для линейной регрессии
type DataPoint struct {
	X    float64 // Год наблюдения в виде числа
	Y    float64 // Значение показателя в триллионах
	Year int     // Фактический год
}

// RegressionResult содержит результаты линейной регрессии
type RegressionResult struct {
	A           float64     // Коэффициент наклона
	B           float64     // Сдвиг
	R           float64     // Коэффициент корреляции Пирсона
	R2          float64     // Коэффициент детерминации
	PeriodStart int         // Первый год анализируемого периода
	PeriodEnd   int         // Последний год анализируемого периода
	DataPoints  []DataPoint // Исходные точки данных
}

// ForecastPoint представляет точку прогноза
type ForecastPoint struct {
	Year          int     // Год прогноза
	ForecastValue float64 // Прогнозируемое значение в триллионах
	CILower       float64 // Нижняя граница доверительного интервала
	CIUpper       float64 // Верхняя граница доверительного интервала
}

// CountryTrend содержит модель тренда и прогнозы по одной стране
type CountryTrend struct {
	Country   string
	ISO3      string
	Result    *RegressionResult
	Forecasts []ForecastPoint
}

// PredictionRepository интерфейс для работы с хранилищем прогнозов
type PredictionRepository interface {
	// SavePredictions сохраняет прогнозы по странам
	SavePredictions(trends []CountryTrend) error
}
