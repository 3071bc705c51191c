package validation

import (
	"errors"
	"strings"
)

var (
	ErrEmptySymbol = errors.New("symbol must not be empty")
	ErrEmptyCoinID = errors.New("coin_id is required")
)

// NormalizeSymbol приводит символ монеты к каноничному виду: обрезает пробелы и понижает регистр.
func NormalizeSymbol(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}

// ValidateSymbol проверяет уже нормализованный символ.
// Формат не проверяется: неизвестный символ отсекает справочник монет (404).
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return ErrEmptySymbol
	}
	return nil
}

// ValidateCoinID проверяет идентификатор монеты у внешнего провайдера.
// Существует ли монета, решает провайдер.
func ValidateCoinID(id string) error {
	if id == "" {
		return ErrEmptyCoinID
	}
	return nil
}

// SplitList разбивает строку через запятую, обрезает пробелы и убирает пустые элементы.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
