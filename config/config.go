package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// PipelineConfig содержит конфигурацию пайплайна обработки показателей
type PipelineConfig struct {
	// Конфигурация источника данных (World Bank API)
	APIConfig APIConfig `json:"api_config"`

	// Код запрашиваемого показателя
	IndicatorCode string `json:"indicator_code"`

	// Диапазон лет выборки (включительно)
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`

	// Интервал запуска пайплайна в режиме scheduled
	RunInterval time.Duration `json:"run_interval"`

	// Каталог для графиков и выгрузок
	OutputDir string `json:"output_dir"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// APIConfig содержит настройки подключения к World Bank API
type APIConfig struct {
	BaseURL string        `json:"base_url"`
	PerPage int           `json:"per_page"`
	Timeout time.Duration `json:"timeout"`
}

// Значения конфигурации по умолчанию
var (
	DefaultAPIConfig = APIConfig{
		BaseURL: "https://api.worldbank.org/v2",
		PerPage: 20000,
		Timeout: 30 * time.Second,
	}

	DefaultPipelineConfig = PipelineConfig{
		APIConfig:             DefaultAPIConfig,
		IndicatorCode:         "NY.GDP.MKTP.CD",
		StartYear:             2000,
		EndYear:               2022,
		RunInterval:           24 * time.Hour,
		OutputDir:             "output",
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию пайплайна.
// Значения по умолчанию можно переопределить переменными окружения
// (в том числе из файла .env, если он есть рядом с бинарником)
func GetConfig() PipelineConfig {
	// Файл .env не обязателен, его отсутствие не ошибка
	_ = godotenv.Load()

	config := DefaultPipelineConfig

	if baseURL := os.Getenv("WORLDBANK_BASE_URL"); baseURL != "" {
		config.APIConfig.BaseURL = baseURL
	}

	if timeoutStr := os.Getenv("GDP_HTTP_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeoutSeconds, err := strconv.Atoi(timeoutStr); err == nil && timeoutSeconds > 0 {
			config.APIConfig.Timeout = time.Duration(timeoutSeconds) * time.Second
		}
	}

	if outputDir := os.Getenv("GDP_OUTPUT_DIR"); outputDir != "" {
		config.OutputDir = outputDir
	}

	if indicator := os.Getenv("GDP_INDICATOR_CODE"); indicator != "" {
		config.IndicatorCode = indicator
	}

	return config
}
