package models

// Значения Filter.Sort.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortDeadline = "deadline"
)

// Filter - параметры публичной выдачи. Все поля опциональны и объединяются по AND;
// Search ищет по OR среди title, content, organization, category, tags.
type Filter struct {
	Type          string
	Category      string
	Organization  string
	Qualification string
	Search        string
	Sort          string
	Limit         int64
	Offset        int64
	// Cursor - hex id последнего элемента предыдущей страницы.
	Cursor string
}

// CursorPage - результат курсорной выдачи.
// NextCursor пуст, когда страниц больше нет.
type CursorPage[T any] struct {
	Data       []T    `json:"data"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// BulkError - ошибка одного элемента bulk-операции.
// Index - позиция во входном массиве; ID заполняется, если известен.
type BulkError struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// BulkResult - итог BatchInsert/BatchUpdate.
type BulkResult struct {
	Inserted int64       `json:"inserted,omitempty"`
	Modified int64       `json:"modified,omitempty"`
	Errors   []BulkError `json:"errors"`
}

// UpsertResult - итог BulkUpsert.
type UpsertResult struct {
	Upserted int64       `json:"upserted"`
	Modified int64       `json:"modified"`
	Errors   []BulkError `json:"errors"`
}
