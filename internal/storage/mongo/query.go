package mongo

import (
	"regexp"
	"strings"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// searchFields - поля, по которым Search ищет подстроку (OR).
var searchFields = []string{"title", "content", "organization", "category", "tags"}

// activeOnly - базовое условие всех публичных выборок.
func activeOnly() bson.D {
	return bson.D{{Key: "isActive", Value: true}}
}

// containsCI - регистронезависимый поиск подстроки.
// Пользовательский ввод экранируется: метасимволы трактуются буквально.
func containsCI(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// buildFilter переводит models.Filter в запрос MongoDB (без курсора).
func buildFilter(f models.Filter) bson.D {
	filter := activeOnly()

	if v := strings.TrimSpace(f.Type); v != "" {
		filter = append(filter, bson.E{Key: "type", Value: v})
	}

	if v := strings.TrimSpace(f.Category); v != "" {
		filter = append(filter, bson.E{Key: "category", Value: containsCI(v)})
	}

	if v := strings.TrimSpace(f.Organization); v != "" {
		filter = append(filter, bson.E{Key: "organization", Value: containsCI(v)})
	}

	if v := strings.TrimSpace(f.Qualification); v != "" {
		filter = append(filter, bson.E{Key: "minQualification", Value: containsCI(v)})
	}

	if v := strings.TrimSpace(f.Search); v != "" {
		re := containsCI(v)
		or := make(bson.A, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.D{{Key: field, Value: re}})
		}
		filter = append(filter, bson.E{Key: "$or", Value: or})
	}

	return filter
}

// sortDirection возвращает направление сортировки по _id.
// "deadline" пока совпадает с "newest": истинная сортировка по дедлайну не согласована.
func sortDirection(sort string) int {
	if sort == models.SortOldest {
		return 1
	}

	return -1
}

// cursorCondition - keyset-граница: _id < cursor для DESC, _id > cursor для ASC.
func cursorCondition(cursor primitive.ObjectID, dir int) bson.E {
	op := "$lt"
	if dir > 0 {
		op = "$gt"
	}

	return bson.E{Key: "_id", Value: bson.D{{Key: op, Value: cursor}}}
}

// paginate режет выборку из limit+1 элементов на страницу.
// NextCursor - id последнего элемента страницы, только если есть продолжение.
func paginate[T any](items []T, limit int64, idOf func(T) string) *models.CursorPage[T] {
	page := &models.CursorPage[T]{Data: items}
	if page.Data == nil {
		page.Data = []T{}
	}

	if int64(len(items)) > limit {
		page.Data = items[:limit]
		page.HasMore = true
		page.NextCursor = idOf(page.Data[len(page.Data)-1])
	}

	return page
}
