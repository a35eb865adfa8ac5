package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// Значения показателя выводятся на графике в триллионах
const trillion = 1e12

// Размер сохраняемого графика
const (
	chartWidth  = 16 * vg.Inch
	chartHeight = 8 * vg.Inch
)

// DefaultTitle используется, если вызывающая сторона не передала свой заголовок
const DefaultTitle = "GDP (current US$)"

// Палитра линий по странам, цвета перебираются по кругу
var linePalette = []color.RGBA{
	{R: 0, G: 100, B: 0, A: 255},
	{R: 70, G: 130, B: 180, A: 255},
	{R: 220, G: 20, B: 60, A: 255},
	{R: 255, G: 165, B: 0, A: 255},
	{R: 65, G: 105, B: 225, A: 255},
	{R: 139, G: 0, B: 139, A: 255},
	{R: 34, G: 139, B: 34, A: 255},
}

// Renderer рисует линейный график показателя по широкой таблице
type Renderer struct {
	logger *utils.PipelineLogger
}

// NewRenderer создает новый экземпляр Renderer
func NewRenderer(logger *utils.PipelineLogger) *Renderer {
	return &Renderer{logger: logger}
}

// Render рисует по одной линии на страну: ось X - годы, ось Y - значение
// в триллионах. Если surface равен nil, создается новый график. Исходная
// таблица не изменяется. Пустая таблица дает пустой график без серий
func (r *Renderer) Render(wide *models.WideTable, surface *plot.Plot, title string) (*plot.Plot, error) {
	p := surface
	if p == nil {
		p = plot.New()
	}

	if title == "" {
		title = DefaultTitle
	}
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "GDP (trillions, current US$)"

	seriesAdded := 0
	for j, country := range wide.Countries {
		points := make(plotter.XYs, 0, len(wide.Years))
		for i, year := range wide.Years {
			value := wide.Values[i][j]
			// Годы без данных пропускаем
			if math.IsNaN(value) {
				continue
			}
			points = append(points, plotter.XY{X: float64(year), Y: value / trillion})
		}

		if len(points) == 0 {
			continue
		}

		line, err := plotter.NewLine(points)
		if err != nil {
			r.logger.Error("Ошибка при построении линии для %s: %v", country, err)
			return nil, fmt.Errorf("ошибка при построении линии для %s: %w", country, err)
		}
		line.Color = linePalette[j%len(linePalette)]
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(country, line)
		seriesAdded++
	}

	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	// Без единой серии у осей нет диапазона, задаем его явно
	if seriesAdded == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
	}

	r.logger.Debug("График построен: %d серий, %d лет", seriesAdded, len(wide.Years))

	return p, nil
}

// SaveChart сохраняет график в файл фиксированного размера.
// Формат определяется расширением пути (.png, .svg, .pdf)
func (r *Renderer) SaveChart(p *plot.Plot, outputPath string) error {
	if err := p.Save(chartWidth, chartHeight, outputPath); err != nil {
		r.logger.Error("Ошибка при сохранении графика %s: %v", outputPath, err)
		return fmt.Errorf("ошибка при сохранении графика: %w", err)
	}

	r.logger.Info("График сохранён: %s", outputPath)
	return nil
}
