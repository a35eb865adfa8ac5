package trend

import (
	"fmt"
	"math"
)

// RoundToThousandth округляет число до трех знаков после запятой
func RoundToThousandth(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// regressionSums накапливает суммы, нужные для метода наименьших квадратов
type regressionSums struct {
	n  float64
	x  float64
	y  float64
	xy float64
	xx float64
	yy float64
}

func accumulateSums(points []DataPoint) regressionSums {
	sums := regressionSums{n: float64(len(points))}
	for _, p := range points {
		sums.x += p.X
		sums.y += p.Y
		sums.xy += p.X * p.Y
		sums.xx += p.X * p.X
		sums.yy += p.Y * p.Y
	}
	return sums
}

// LinearRegression строит модель y = a*x + b методом наименьших квадратов.
// Коэффициенты, корреляция и детерминация округляются до тысячных
func LinearRegression(points []DataPoint) (*RegressionResult, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("для расчета линейной регрессии требуется минимум 2 точки, получено: %d", len(points))
	}

	minYear, maxYear := points[0].Year, points[0].Year
	for _, p := range points[1:] {
		if p.Year < minYear {
			minYear = p.Year
		}
		if p.Year > maxYear {
			maxYear = p.Year
		}
	}

	sums := accumulateSums(points)

	// Знаменатель наклона нулевой, когда все X совпадают
	slopeDenom := sums.n*sums.xx - sums.x*sums.x
	if math.Abs(slopeDenom) < 1e-10 {
		return nil, fmt.Errorf("все X одинаковы, невозможно вычислить наклон")
	}

	a := (sums.n*sums.xy - sums.x*sums.y) / slopeDenom
	b := (sums.y - a*sums.x) / sums.n

	// Корреляция Пирсона. Нулевой знаменатель означает постоянный Y
	rNumerator := sums.n*sums.xy - sums.x*sums.y
	rDenominator := math.Sqrt((sums.n*sums.xx - sums.x*sums.x) * (sums.n*sums.yy - sums.y*sums.y))

	r := 0.0
	if math.Abs(rDenominator) >= 1e-10 {
		r = rNumerator / rDenominator
	}

	return &RegressionResult{
		A:           RoundToThousandth(a),
		B:           RoundToThousandth(b),
		R:           RoundToThousandth(r),
		R2:          RoundToThousandth(r * r),
		PeriodStart: minYear,
		PeriodEnd:   maxYear,
		DataPoints:  points,
	}, nil
}

// Predict возвращает округленное значение модели в точке x
func Predict(result *RegressionResult, x float64) float64 {
	return RoundToThousandth(result.A*x + result.B)
}

// CalculateConfidenceInterval возвращает границы доверительного интервала
// прогноза в точке x для уровней доверия 0.90, 0.95 и 0.99
func CalculateConfidenceInterval(result *RegressionResult, x float64, confidenceLevel float64) (float64, float64) {
	n := float64(len(result.DataPoints))

	meanX := 0.0
	for _, p := range result.DataPoints {
		meanX += p.X
	}
	meanX /= n

	sumSqDevX := 0.0
	sumSqResiduals := 0.0
	for _, p := range result.DataPoints {
		residual := p.Y - Predict(result, p.X)
		sumSqDevX += (p.X - meanX) * (p.X - meanX)
		sumSqResiduals += residual * residual
	}

	// Стандартная ошибка оценки. При двух точках остатков нет,
	// и интервал вырождается в саму точку прогноза
	standardError := 0.0
	if n > 2 {
		standardError = math.Sqrt(sumSqResiduals / (n - 2))
	}

	// Приближение t-статистики вместо таблицы распределения Стьюдента
	tStat := 2.0
	switch confidenceLevel {
	case 0.99:
		tStat = 2.58
	case 0.90:
		tStat = 1.64
	}

	// Ошибка прогноза растет с удалением x от среднего по выборке
	predictionStdError := standardError * math.Sqrt(1+1/n+(x-meanX)*(x-meanX)/sumSqDevX)
	margin := tStat * predictionStdError
	yPred := Predict(result, x)

	return RoundToThousandth(yPred - margin), RoundToThousandth(yPred + margin)
}

// GenerateForecasts строит прогнозы на yearsAhead лет после конца периода
func GenerateForecasts(result *RegressionResult, yearsAhead int, confidenceLevel float64) []ForecastPoint {
	maxX := result.DataPoints[0].X
	for _, p := range result.DataPoints[1:] {
		if p.X > maxX {
			maxX = p.X
		}
	}

	forecasts := make([]ForecastPoint, 0, yearsAhead)
	for step := 1; step <= yearsAhead; step++ {
		x := maxX + float64(step)
		lower, upper := CalculateConfidenceInterval(result, x, confidenceLevel)

		forecasts = append(forecasts, ForecastPoint{
			Year:          result.PeriodEnd + step,
			ForecastValue: Predict(result, x),
			CILower:       lower,
			CIUpper:       upper,
		})
	}

	return forecasts
}
