package config

import "sort"

// countryISO3 сопоставляет полные названия стран их трехбуквенным кодам ISO3.
// Карта не экспортируется, чтобы ее нельзя было изменить снаружи пакета
var countryISO3 = map[string]string{
	"United Kingdom": "GBR",
	"United States":  "USA",
	"Brazil":         "BRA",
	"Japan":          "JPN",
	"China":          "CHN",
	"Germany":        "DEU",
	"Switzerland":    "CHE",
}

// ISO3For возвращает код ISO3 для полного названия страны
func ISO3For(country string) (string, bool) {
	code, ok := countryISO3[country]
	return code, ok
}

// CountryISO3Codes возвращает копию карты страна - код ISO3
func CountryISO3Codes() map[string]string {
	codes := make(map[string]string, len(countryISO3))
	for country, code := range countryISO3 {
		codes[country] = code
	}
	return codes
}

// DefaultCountryNames возвращает отсортированный список поддерживаемых стран
func DefaultCountryNames() []string {
	names := make([]string, 0, len(countryISO3))
	for country := range countryISO3 {
		names = append(names, country)
	}
	sort.Strings(names)
	return names
}
