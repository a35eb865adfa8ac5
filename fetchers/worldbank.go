package fetchers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/JacobSchwandt03/gdp-trackr/config"
	"github.com/JacobSchwandt03/gdp-trackr/models"
	"github.com/JacobSchwandt03/gdp-trackr/utils"
)

// WorldBankFetcher выполняет загрузку показателей из World Bank API
type WorldBankFetcher struct {
	httpClient *http.Client
	apiConfig  config.APIConfig
	logger     *utils.PipelineLogger
}

// NewWorldBankFetcher создает новый экземпляр WorldBankFetcher
func NewWorldBankFetcher(apiConfig config.APIConfig, logger *utils.PipelineLogger) *WorldBankFetcher {
	return &WorldBankFetcher{
		httpClient: &http.Client{Timeout: apiConfig.Timeout},
		apiConfig:  apiConfig,
		logger:     logger,
	}
}

// FetchIndicator загружает годовые значения показателя для списка стран одним запросом.
// countriesISO3 - коды стран ISO3, годы задают диапазон выборки включительно
func (f *WorldBankFetcher) FetchIndicator(countriesISO3 []string, indicator string, startYear, endYear int) ([]models.RawObservation, error) {
	// Проверяем аргументы до построения запроса
	if len(countriesISO3) == 0 {
		f.logger.Error("Список стран для запроса пуст")
		return nil, fmt.Errorf("список стран для запроса пуст")
	}
	if indicator == "" {
		f.logger.Error("Код показателя не задан")
		return nil, fmt.Errorf("код показателя не задан")
	}
	if startYear > endYear {
		f.logger.Error("Первый год выборки (%d) больше последнего (%d)", startYear, endYear)
		return nil, fmt.Errorf("первый год выборки (%d) больше последнего (%d)", startYear, endYear)
	}

	startTime := time.Now()
	f.logger.LogFetchStart(len(countriesISO3))

	url := f.buildURL(countriesISO3, indicator, startYear, endYear)
	f.logger.Debug("Запрос World Bank API: %s", url)

	resp, err := f.httpClient.Get(url)
	if err != nil {
		f.logger.Error("Ошибка при запросе World Bank API: %v", err)
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		f.logger.Error("World Bank API вернул статус %s", resp.Status)
		return nil, &HttpStatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Error("Ошибка при чтении тела ответа: %v", err)
		return nil, &TransportError{URL: url, Err: err}
	}

	observations, err := f.parseEnvelope(url, body)
	if err != nil {
		return nil, err
	}

	f.logger.LogFetchComplete(len(observations), time.Since(startTime))
	return observations, nil
}

// buildURL собирает URL запроса показателя по образцу World Bank API v2
func (f *WorldBankFetcher) buildURL(countriesISO3 []string, indicator string, startYear, endYear int) string {
	countriesPart := strings.Join(countriesISO3, ";")
	return fmt.Sprintf(
		"%s/country/%s/indicator/%s?format=json&per_page=%d&date=%d:%d",
		f.apiConfig.BaseURL, countriesPart, indicator, f.apiConfig.PerPage, startYear, endYear,
	)
}

// parseEnvelope разбирает конверт ответа World Bank API: [метаданные, записи].
// Конверт без двух элементов дает пустой результат, это не ошибка
func (f *WorldBankFetcher) parseEnvelope(url string, body []byte) ([]models.RawObservation, error) {
	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		if !json.Valid(body) {
			f.logger.Error("World Bank API вернул невалидный JSON")
			return nil, &ParseError{URL: url, Reason: "невалидный JSON", Err: err}
		}
		// Валидный JSON, но не массив (например, сообщение об ошибке API)
		f.logger.Debug("Ответ World Bank API не является массивом, результат пуст")
		return []models.RawObservation{}, nil
	}

	if len(envelope) < 2 {
		f.logger.Debug("Конверт ответа содержит %d элементов, результат пуст", len(envelope))
		return []models.RawObservation{}, nil
	}

	// Метаданные нужны только для отладочного лога
	var metadata models.WorldBankMetadata
	if err := json.Unmarshal(envelope[0], &metadata); err == nil {
		f.logger.Debug("Метаданные ответа: страница %d из %d, всего записей %d",
			metadata.Page, metadata.Pages, metadata.Total)
	}

	var records []models.WorldBankRecord
	if err := json.Unmarshal(envelope[1], &records); err != nil {
		f.logger.Error("Ошибка при разборе записей ответа: %v", err)
		return nil, &ParseError{URL: url, Reason: "второй элемент конверта не является списком записей", Err: err}
	}

	observations := make([]models.RawObservation, 0, len(records))
	for _, record := range records {
		// Пропускаем записи без значения (null)
		if record.Value == nil {
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(record.Date))
		if err != nil {
			f.logger.Error("Ошибка при разборе года %q: %v", record.Date, err)
			return nil, &ParseError{URL: url, Reason: fmt.Sprintf("некорректный год %q", record.Date), Err: err}
		}

		observations = append(observations, models.RawObservation{
			Country: record.Country.Value,
			ISO3:    record.Country.ID,
			Year:    year,
			Value:   *record.Value,
		})
	}

	// Сортируем наблюдения по стране и году
	sort.Slice(observations, func(i, j int) bool {
		if observations[i].Country != observations[j].Country {
			return observations[i].Country < observations[j].Country
		}
		yearI, _ := observations[i].Year.(int)
		yearJ, _ := observations[j].Year.(int)
		return yearI < yearJ
	})

	return observations, nil
}
