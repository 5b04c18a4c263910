package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// CreateInput - данные для создания (и upsert) объявления.
// Правила валидации описаны тегами validate (go-playground/validator).
type CreateInput struct {
	// Slug задаётся только при BulkUpsert; при Create всегда вычисляется.
	Slug             string          `json:"slug,omitempty"`
	Type             string          `json:"type"                       validate:"required,oneof=job result admit-card answer-key admission syllabus"`
	Title            string          `json:"title"                      validate:"required,max=500"`
	Category         string          `json:"category,omitempty"         validate:"max=200"`
	Organization     string          `json:"organization,omitempty"     validate:"max=300"`
	Content          string          `json:"content,omitempty"`
	ExternalLink     string          `json:"externalLink,omitempty"     validate:"omitempty,url"`
	Location         string          `json:"location,omitempty"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	MinQualification string          `json:"minQualification,omitempty"`
	AgeLimit         string          `json:"ageLimit,omitempty"`
	ApplicationFee   string          `json:"applicationFee,omitempty"`
	TotalPosts       *int            `json:"totalPosts,omitempty"       validate:"omitempty,gte=0"`
	Tags             []string        `json:"tags,omitempty"             validate:"max=50,dive,required,max=100"`
	JobDetails       map[string]any  `json:"jobDetails,omitempty"`
	ImportantDates   []ImportantDate `json:"importantDates,omitempty"   validate:"dive"`
	PostedBy         string          `json:"postedBy,omitempty"`
	PostedAt         *time.Time      `json:"postedAt,omitempty"`
}

// Optional - поле частичного обновления, различающее три состояния:
//   - отсутствует в запросе (Set=false) - поле не трогаем;
//   - явный null (Set=true, Null=true) - поле очищаем;
//   - значение (Set=true) - поле перезаписываем.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some - конструктор установленного значения.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null - конструктор явной очистки.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON вызывается только для ключей, присутствующих в JSON,
// поэтому отсутствие поля оставляет Set=false.
// Для дат пустая строка равна null: {"deadline":""} очищает дедлайн.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true

	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		o.Null = true
		return nil
	}

	if _, isTime := any(o.Value).(time.Time); isTime && bytes.Equal(b, []byte(`""`)) {
		o.Null = true
		return nil
	}

	return json.Unmarshal(b, &o.Value)
}

// MarshalJSON нужен для логов и тестов; отсутствующее поле сериализуется как null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

// UpdateInput - частичное обновление объявления.
// updatedAt выставляется всегда, даже если ни одно поле не передано.
type UpdateInput struct {
	Type             Optional[string]          `json:"type"`
	Title            Optional[string]          `json:"title"`
	Category         Optional[string]          `json:"category"`
	Organization     Optional[string]          `json:"organization"`
	Content          Optional[string]          `json:"content"`
	ExternalLink     Optional[string]          `json:"externalLink"`
	Location         Optional[string]          `json:"location"`
	Deadline         Optional[time.Time]       `json:"deadline"`
	MinQualification Optional[string]          `json:"minQualification"`
	AgeLimit         Optional[string]          `json:"ageLimit"`
	ApplicationFee   Optional[string]          `json:"applicationFee"`
	TotalPosts       Optional[int]             `json:"totalPosts"`
	Tags             Optional[[]string]        `json:"tags"`
	JobDetails       Optional[map[string]any]  `json:"jobDetails"`
	ImportantDates   Optional[[]ImportantDate] `json:"importantDates"`
	IsActive         Optional[bool]            `json:"isActive"`
}

// BatchUpdateItem - элемент BatchUpdate.
type BatchUpdateItem struct {
	ID    string      `json:"id"`
	Patch UpdateInput `json:"patch"`
}
