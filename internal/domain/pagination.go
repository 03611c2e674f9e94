package domain

// PageRequest номер страницы (с 1) и размер
type PageRequest struct {
	Page    int
	PerPage int
}

// NewPageRequest нормализует параметры пагинации
func NewPageRequest(page, perPage int) PageRequest {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return PageRequest{Page: page, PerPage: perPage}
}

// Offset смещение первой записи страницы
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page одна страница результата
type Page[T any] struct {
	Items   []T
	Total   int
	Page    int
	PerPage int
}

// LastPage номер последней страницы (не меньше 1)
func (p Page[T]) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}
