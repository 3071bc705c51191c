package dto

// ErrorResponse - единый формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ItemsResponse оборачивает список в {"items": [...]}.
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

func NewItemsResponse[T any](items []T) ItemsResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ItemsResponse[T]{Items: items}
}

type MessageResponse struct {
	Message string `json:"message"`
}
