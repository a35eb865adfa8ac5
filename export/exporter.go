package export

import (
	"github.com/JacobSchwandt03/gdp-trackr/models"
)

// Exporter интерфейс для выгрузки таблиц в файлы
type Exporter interface {
	// ExportTidy выгружает очищенную таблицу в длинном формате
	ExportTidy(tidy *models.TidyTable, outputPath string) error

	// ExportWide выгружает широкую таблицу (строки - годы, столбцы - страны)
	ExportWide(wide *models.WideTable, outputPath string) error
}
