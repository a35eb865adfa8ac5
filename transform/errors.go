package transform

import "fmt"

// TypeCoercionError представляет ошибку приведения типов при очистке наблюдений
type TypeCoercionError struct {
	Field string // "year" или "value"
	Raw   any    // Исходное значение, которое не удалось привести
	Err   error
}

func (e *TypeCoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("не удалось привести поле %s (значение %v): %v", e.Field, e.Raw, e.Err)
	}
	return fmt.Sprintf("не удалось привести поле %s (значение %v типа %T)", e.Field, e.Raw, e.Raw)
}

func (e *TypeCoercionError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError представляет конфликт ключа (год, страна) при пивоте
type DuplicateKeyError struct {
	Year    int
	Country string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("дубликат наблюдения для страны %s за %d год", e.Country, e.Year)
}
