// Package pagination реализует постраничный вывод списков со "окном" номеров
// страниц для элементов управления пагинацией.
package pagination

import (
	"errors"
	"strconv"
)

var (
	// ErrNotAnInteger : параметр page отсутствует или не является целым числом
	ErrNotAnInteger = errors.New("номер страницы не является целым числом")
	// ErrOutOfRange : параметр page вне диапазона [1, totalPages]
	ErrOutOfRange = errors.New("номер страницы вне диапазона")
)

// Page : одна страница списка
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"number"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// Paginate : разбивает items на страницы размером pageSize и возвращает окно
// номеров страниц вместе с запрошенной страницей.
//
// requestedPage разбирается как целое число. Невалидное значение не приводит
// к ошибке: нечисловой или пустой параметр даёт первую страницу, число вне
// диапазона [1, totalPages] — последнюю. Окно номеров страниц вычисляется как
// полуинтервал [max(1, page-4), min(totalPages+1, page+5)), то есть до девяти
// номеров вокруг текущей страницы, обрезанных по границам списка.
func Paginate[T any](items []T, requestedPage string, pageSize int) ([]int, Page[T]) {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page, err := parsePage(requestedPage, totalPages)
	switch {
	case errors.Is(err, ErrNotAnInteger):
		page = 1
	case errors.Is(err, ErrOutOfRange):
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := page * pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	left := page - 4
	if left < 1 {
		left = 1
	}
	right := page + 5
	if right > totalPages+1 {
		right = totalPages + 1
	}

	window := make([]int, 0, right-left)
	for i := left; i < right; i++ {
		window = append(window, i)
	}

	return window, Page[T]{
		Items:      items[start:end],
		Number:     page,
		PageSize:   pageSize,
		TotalItems: len(items),
		TotalPages: totalPages,
	}
}

func parsePage(requestedPage string, totalPages int) (int, error) {
	page, err := strconv.Atoi(requestedPage)
	if err != nil {
		return 0, ErrNotAnInteger
	}
	if page < 1 || page > totalPages {
		return 0, ErrOutOfRange
	}
	return page, nil
}
