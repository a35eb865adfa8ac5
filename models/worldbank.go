package models

// WorldBankCountry представляет вложенный объект country в записи World Bank API
type WorldBankCountry struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// WorldBankIndicator представляет вложенный объект indicator в записи World Bank API
type WorldBankIndicator struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// WorldBankRecord представляет одну запись показателя из ответа World Bank API.
// Value - указатель, потому что API отдает null для лет без данных
type WorldBankRecord struct {
	Indicator       WorldBankIndicator `json:"indicator"`
	Country         WorldBankCountry   `json:"country"`
	CountryISO3Code string             `json:"countryiso3code"`
	Date            string             `json:"date"`
	Value           *float64           `json:"value"`
	Unit            string             `json:"unit"`
	ObsStatus       string             `json:"obs_status"`
	Decimal         int                `json:"decimal"`
}

// WorldBankMetadata представляет метаданные первого элемента конверта ответа.
// Используются только для отладочного лога
type WorldBankMetadata struct {
	Page        int    `json:"page"`
	Pages       int    `json:"pages"`
	Total       int    `json:"total"`
	LastUpdated string `json:"lastupdated"`
}
