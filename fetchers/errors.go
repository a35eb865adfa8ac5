package fetchers

import "fmt"

// TransportError представляет сетевую ошибку при обращении к World Bank API
// (недоступность хоста, таймаут, обрыв соединения)
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("сетевая ошибка при запросе %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HttpStatusError представляет ответ World Bank API со статусом 4xx или 5xx
type HttpStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HttpStatusError) Error() string {
	return fmt.Sprintf("World Bank API вернул статус %s для %s", e.Status, e.URL)
}

// ParseError представляет ошибку разбора ответа World Bank API
// (невалидный JSON или неожиданная структура конверта)
type ParseError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("не удалось разобрать ответ %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("не удалось разобрать ответ %s: %s", e.URL, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
