package common

import "errors"

// Базовые ошибки хранилища. Репозитории оборачивают их через %w,
// сервисы проверяют через errors.Is.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)
