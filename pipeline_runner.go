package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/JacobSchwandt03/gdp-trackr/config"
	"github.com/JacobSchwandt03/gdp-trackr/export"
	"github.com/JacobSchwandt03/gdp-trackr/fetchers"
	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/render"
	"github.com/JacobSchwandt03/gdp-trackr/transform"
	"github.com/JacobSchwandt03/gdp-trackr/trend"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// Имена файлов, которые пайплайн создает в каталоге результатов
const (
	chartFileName    = "gdp_chart.png"
	forecastFileName = "gdp_forecast.csv"
	runLogFileName   = "pipeline_runs.json"
)

type PipelineRunner struct {
	config        config.PipelineConfig
	logger        *utils.PipelineLogger
	fetcher       *fetchers.WorldBankFetcher
	transformer   *transform.Transformer
	renderer      *render.Renderer
	exportManager *export.ExportManager
	runLogRepo    models.RunLogRepository
	countries     []string // Полные названия стран для обработки
	chartTitle    string
}

// NewPipelineRunner создает новый экземпляр PipelineRunner
func NewPipelineRunner(pipelineConfig config.PipelineConfig, countries []string, chartTitle string) (*PipelineRunner, error) {
	// Инициализируем логгер
	logger := utils.NewPipelineLogger(pipelineConfig.EnableDetailedLogging)
	logger.Info("Инициализация Pipeline Runner")

	// Пустой список стран означает все поддерживаемые
	if len(countries) == 0 {
		countries = config.DefaultCountryNames()
	}

	// Проверяем список стран по справочнику кодов
	for _, country := range countries {
		if _, ok := config.ISO3For(country); !ok {
			return nil, fmt.Errorf("неизвестная страна: %s", country)
		}
	}

	// Инициализируем репозиторий журнала запусков
	runLogRepo := models.NewFileRunLogRepository(filepath.Join(pipelineConfig.OutputDir, runLogFileName))

	return &PipelineRunner{
		config:        pipelineConfig,
		logger:        logger,
		fetcher:       fetchers.NewWorldBankFetcher(pipelineConfig.APIConfig, logger),
		transformer:   transform.NewTransformer(logger),
		renderer:      render.NewRenderer(logger),
		exportManager: export.NewExportManager(pipelineConfig.OutputDir, logger),
		runLogRepo:    runLogRepo,
		countries:     countries,
		chartTitle:    chartTitle,
	}, nil
}

// requestedISO3 возвращает коды ISO3 запрашиваемых стран
func (r *PipelineRunner) requestedISO3() []string {
	codes := make([]string, 0, len(r.countries))
	for _, country := range r.countries {
		code, _ := config.ISO3For(country)
		codes = append(codes, code)
	}
	return codes
}

// ExecutePipeline выполняет полный пайплайн обработки показателей
func (r *PipelineRunner) ExecutePipeline() error {
	r.logger.LogPipelineStart()
	startTime := time.Now()

	// Создаем запись в журнале запусков
	logID, err := r.runLogRepo.CreateLogEntry(startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале запусков: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале запусков: %w", err)
	}

	// Получаем информацию о последнем успешном запуске
	lastRun, err := r.runLogRepo.GetLastSuccessfulRun()
	if err != nil {
		r.logger.Error("Не удалось получить информацию о последнем успешном запуске: %v", err)
		// Продолжаем выполнение
	}
	if lastRun != nil {
		r.logger.Info("Последний успешный запуск: %v (%d строк)",
			lastRun.EndTime.Format("2006-01-02 15:04:05"), lastRun.RowsCleaned)
	}

	// 1. Фаза загрузки данных (Fetch)
	observations, err := r.fetcher.FetchIndicator(r.requestedISO3(), r.config.IndicatorCode, r.config.StartYear, r.config.EndYear)
	if err != nil {
		errMsg := fmt.Sprintf("Ошибка в фазе Fetch: %v", err)
		r.logger.Error(errMsg)
		r.updateRunLogFailure(logID, errMsg)
		return fmt.Errorf("ошибка в фазе Fetch: %w", err)
	}

	// Если данных нет, завершаем запуск
	if len(observations) == 0 {
		r.logger.Info("Нет данных для обработки")
		r.updateRunLogSuccess(logID, models.RunStats{CountriesRequested: len(r.countries)})
		return nil
	}

	// 2. Фаза трансформации данных (Transform)
	tidy, wide, err := r.transformer.Transform(observations)
	if err != nil {
		errMsg := fmt.Sprintf("Ошибка в фазе Transform: %v", err)
		r.logger.Error(errMsg)
		r.updateRunLogFailure(logID, errMsg)
		return fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	// 3. Фаза выгрузки таблиц (Export)
	exportPaths, err := r.exportManager.ExportAll(tidy, wide)
	if err != nil {
		errMsg := fmt.Sprintf("Ошибка в фазе Export: %v", err)
		r.logger.Error(errMsg)
		r.updateRunLogFailure(logID, errMsg)
		return fmt.Errorf("ошибка в фазе Export: %w", err)
	}

	// 4. Фаза построения графика (Render)
	chart, err := r.renderer.Render(wide, nil, r.chartTitle)
	if err != nil {
		errMsg := fmt.Sprintf("Ошибка в фазе Render: %v", err)
		r.logger.Error(errMsg)
		r.updateRunLogFailure(logID, errMsg)
		return fmt.Errorf("ошибка в фазе Render: %w", err)
	}

	chartPath := filepath.Join(r.config.OutputDir, chartFileName)
	if err := r.renderer.SaveChart(chart, chartPath); err != nil {
		errMsg := fmt.Sprintf("Ошибка при сохранении графика: %v", err)
		r.logger.Error(errMsg)
		r.updateRunLogFailure(logID, errMsg)
		return fmt.Errorf("ошибка при сохранении графика: %w", err)
	}

	// 5. Запускаем расчет трендов для прогнозирования показателя
	r.logger.Info("Запуск расчета трендов показателя")
	if err := r.runTrendAnalysis(wide, trend.DefaultConfig()); err != nil {
		r.logger.Error("Ошибка при расчете трендов: %v", err)
		// Не прерываем пайплайн из-за ошибки в расчете трендов
		// Это некритичный компонент
	}

	// Обновляем запись в журнале с информацией об успешном выполнении
	r.updateRunLogSuccess(logID, models.RunStats{
		CountriesRequested:  len(r.countries),
		ObservationsFetched: len(observations),
		RowsCleaned:         len(tidy.Rows),
		YearsCovered:        len(wide.Years),
		ChartPath:           chartPath,
		ExportPaths:         exportPaths,
	})

	r.logger.LogPipelineComplete(startTime, len(tidy.Rows), len(wide.Countries), len(wide.Years))
	return nil
}

// updateRunLogSuccess обновляет запись в журнале запусков при успешном завершении
func (r *PipelineRunner) updateRunLogSuccess(logID string, stats models.RunStats) {
	if err := r.runLogRepo.UpdateLogEntrySuccess(logID, time.Now(), stats); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}
}

// updateRunLogFailure обновляет запись в журнале запусков при ошибке
func (r *PipelineRunner) updateRunLogFailure(logID string, errorMessage string) {
	if err := r.runLogRepo.UpdateLogEntryFailure(logID, time.Now(), errorMessage); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}
}

// runTrendAnalysis запускает расчет трендов по готовой широкой таблице
func (r *PipelineRunner) runTrendAnalysis(wide *models.WideTable, trendConfig trend.Config) error {
	repository := trend.NewCSVPredictionRepository(filepath.Join(r.config.OutputDir, forecastFileName))
	processor := trend.NewTrendProcessor(repository, r.logger, trendConfig)

	trends, err := processor.Process(wide)
	if err != nil {
		return err
	}

	r.logger.Info("Построено трендов: %d, прогнозы сохранены в %s",
		len(trends), filepath.Join(r.config.OutputDir, forecastFileName))
	return nil
}

// RunTrendAnalysis загружает свежие данные и выполняет только расчет трендов
func (r *PipelineRunner) RunTrendAnalysis(trendConfig trend.Config) error {
	r.logger.Info("Запуск расчета трендов с параметрами: прогноз=%d лет, доверие=%.2f, минR²=%.2f",
		trendConfig.ForecastYears, trendConfig.ConfidenceLevel, trendConfig.MinR2Threshold)

	observations, err := r.fetcher.FetchIndicator(r.requestedISO3(), r.config.IndicatorCode, r.config.StartYear, r.config.EndYear)
	if err != nil {
		return fmt.Errorf("ошибка в фазе Fetch: %w", err)
	}

	_, wide, err := r.transformer.Transform(observations)
	if err != nil {
		return fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	return r.runTrendAnalysis(wide, trendConfig)
}

// StartScheduler запускает планировщик для регулярного выполнения пайплайна
func (r *PipelineRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика пайплайна с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск пайплайна")
		if err := r.ExecutePipeline(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного пайплайна: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик пайплайна остановлен")
}

// RunOnce запускает пайплайн один раз
func RunOnce(pipelineConfig config.PipelineConfig, countries []string, title string) {
	runner, err := NewPipelineRunner(pipelineConfig, countries, title)
	if err != nil {
		log.Fatalf("Ошибка при создании Pipeline Runner: %v", err)
	}

	if err := runner.ExecutePipeline(); err != nil {
		log.Fatalf("Ошибка при выполнении пайплайна: %v", err)
	}
}

// RunScheduled запускает пайплайн по расписанию
func RunScheduled(pipelineConfig config.PipelineConfig, countries []string, title string) {
	// Создаем контекст, который будет отменен при получении сигнала завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настраиваем обработку сигналов завершения
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	// Запускаем горутину для обработки сигналов
	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем Pipeline Runner...")
		cancel()
	}()

	runner, err := NewPipelineRunner(pipelineConfig, countries, title)
	if err != nil {
		log.Fatalf("Ошибка при создании Pipeline Runner: %v", err)
	}

	// Запускаем планировщик
	runner.StartScheduler(ctx)
}

// RunTrend запускает только расчет трендов с пользовательскими параметрами
func RunTrend(pipelineConfig config.PipelineConfig, countries []string, forecastYears int, confidence, minR2 float64) {
	log.Println("Запуск утилиты расчета трендов")

	runner, err := NewPipelineRunner(pipelineConfig, countries, "")
	if err != nil {
		log.Fatalf("Ошибка при создании Pipeline Runner: %v", err)
	}

	trendConfig := trend.Config{
		ForecastYears:   forecastYears,
		ConfidenceLevel: confidence,
		MinR2Threshold:  minR2,
	}

	if err := runner.RunTrendAnalysis(trendConfig); err != nil {
		log.Fatalf("Ошибка при расчете трендов: %v", err)
	}

	log.Println("Расчет трендов успешно завершен")
}

// parseCountries разбирает список стран из флага командной строки
func parseCountries(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	countries := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			countries = append(countries, trimmed)
		}
	}
	return countries
}

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "scheduled", "Режим работы: scheduled, once или trend")
	countriesPtr := flag.String("countries", "", "Список стран через запятую (по умолчанию все поддерживаемые)")
	startPtr := flag.Int("start", 0, "Первый год выборки (по умолчанию из конфигурации)")
	endPtr := flag.Int("end", 0, "Последний год выборки (по умолчанию из конфигурации)")
	indicatorPtr := flag.String("indicator", "", "Код показателя World Bank (по умолчанию из конфигурации)")
	outPtr := flag.String("out", "", "Каталог для графиков и выгрузок (по умолчанию из конфигурации)")
	titlePtr := flag.String("title", "", "Заголовок графика")
	forecastPtr := flag.Int("forecast", 5, "Количество лет для прогноза (только для режима trend)")
	confidencePtr := flag.Float64("confidence", 0.95, "Уровень доверия (только для режима trend)")
	minR2Ptr := flag.Float64("min-r2", 0.30, "Минимальный порог для R² (только для режима trend)")

	flag.Parse()

	log.Println("Запуск Pipeline Runner в режиме:", *modePtr)

	// Собираем конфигурацию с учетом флагов
	pipelineConfig := config.GetConfig()
	if *startPtr != 0 {
		pipelineConfig.StartYear = *startPtr
	}
	if *endPtr != 0 {
		pipelineConfig.EndYear = *endPtr
	}
	if *indicatorPtr != "" {
		pipelineConfig.IndicatorCode = *indicatorPtr
	}
	if *outPtr != "" {
		pipelineConfig.OutputDir = *outPtr
	}

	if pipelineConfig.StartYear > pipelineConfig.EndYear {
		log.Fatalf("Первый год выборки (%d) больше последнего (%d)", pipelineConfig.StartYear, pipelineConfig.EndYear)
	}

	countries := parseCountries(*countriesPtr)

	switch *modePtr {
	case "once":
		RunOnce(pipelineConfig, countries, *titlePtr)
	case "scheduled":
		RunScheduled(pipelineConfig, countries, *titlePtr)
	case "trend":
		RunTrend(pipelineConfig, countries, *forecastPtr, *confidencePtr, *minR2Ptr)
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: scheduled, once, trend")
		os.Exit(1)
	}

	log.Println("Pipeline Runner завершил работу")
}
