package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// PipelineLogger пишет журнал пайплайна в файл и дублирует его в стандартный вывод
type PipelineLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
}

func newLevelLoggers(w io.Writer, verbose bool) *PipelineLogger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &PipelineLogger{
		infoLogger:  log.New(w, "INFO: ", flags),
		errorLogger: log.New(w, "ERROR: ", flags),
		debugLogger: log.New(w, "DEBUG: ", flags),
		isVerbose:   verbose,
	}
}

// NewPipelineLogger создает логгер, пишущий в дневной лог-файл.
// Файл открывается на дозапись, поэтому перезапуски дописывают в тот же лог
func NewPipelineLogger(verbose bool) *PipelineLogger {
	logFileName := fmt.Sprintf("pipeline_log_%s.log", time.Now().Format("2006-01-02"))

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Не удалось открыть или создать файл лога: %v", err)
	}

	return newLevelLoggers(file, verbose)
}

// NewPipelineLoggerWithWriter создает логгер, пишущий в переданный writer.
// Используется в тестах, чтобы не создавать файлы логов
func NewPipelineLoggerWithWriter(w io.Writer, verbose bool) *PipelineLogger {
	return newLevelLoggers(w, verbose)
}

// Info логирует информационное сообщение
func (l *PipelineLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)

	// Дублируем в стандартный вывод
	log.Println("INFO:", msg)
}

// Error логирует сообщение об ошибке
func (l *PipelineLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)

	// Дублируем в стандартный вывод
	log.Println("ERROR:", msg)
}

// Debug логирует отладочное сообщение, только если включен verbose режим
func (l *PipelineLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)

	// Дублируем в стандартный вывод
	log.Println("DEBUG:", msg)
}

// LogPipelineStart логирует начало выполнения пайплайна
func (l *PipelineLogger) LogPipelineStart() {
	l.Info("Начало выполнения пайплайна обработки показателей")
}

// LogPipelineComplete логирует завершение пайплайна
func (l *PipelineLogger) LogPipelineComplete(startTime time.Time, totalRows int, totalCountries int, totalYears int) {
	l.Info("Пайплайн завершён. Длительность: %v", time.Since(startTime))
	l.Info("Обработано: %d наблюдений, %d стран, %d лет", totalRows, totalCountries, totalYears)
}

// LogFetchStart логирует начало фазы загрузки данных из API
func (l *PipelineLogger) LogFetchStart(countries int) {
	l.Info("Начало фазы Fetch (Загрузка данных World Bank API, стран: %d)", countries)
}

// LogFetchComplete логирует завершение фазы загрузки данных
func (l *PipelineLogger) LogFetchComplete(observations int, duration time.Duration) {
	l.Info("Фаза Fetch завершена. Длительность: %v", duration)
	l.Info("Загружено наблюдений: %d", observations)
}

// LogTransformStart логирует начало фазы трансформации данных
func (l *PipelineLogger) LogTransformStart() {
	l.Info("Начало фазы Transform (Очистка и пивот данных)")
}

// LogTransformComplete логирует завершение фазы трансформации данных
func (l *PipelineLogger) LogTransformComplete(rows int, years int, countries int, duration time.Duration) {
	l.Info("Фаза Transform завершена. Длительность: %v", duration)
	l.Info("Получено: %d строк, %d лет, %d стран", rows, years, countries)
}
