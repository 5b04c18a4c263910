// Package models содержит доменные сущности announcements-сервиса.
package models

import "time"

// Допустимые типы объявлений.
const (
	TypeJob       = "job"
	TypeResult    = "result"
	TypeAdmitCard = "admit-card"
	TypeAnswerKey = "answer-key"
	TypeAdmission = "admission"
	TypeSyllabus  = "syllabus"
)

// Types - все допустимые значения Announcement.Type.
var Types = []string{TypeJob, TypeResult, TypeAdmitCard, TypeAnswerKey, TypeAdmission, TypeSyllabus}

// Announcement - доменная модель объявления (MongoDB, коллекция announcements).
// Важно:
//   - ID - ObjectID MongoDB в hex. Содержит время создания, поэтому сортировка
//     по _id DESC = «сначала новые»;
//   - Slug - стабильный внешний идентификатор, ключ для BulkUpsert и кэша;
//   - IsActive=false скрывает документ из всех публичных выборок,
//     но не из FindByID/FindByIDs;
//   - ViewCount только растёт ($inc).
type Announcement struct {
	ID               string          `json:"id"`
	Slug             string          `json:"slug"`
	Type             string          `json:"type"`
	Category         string          `json:"category,omitempty"`
	Organization     string          `json:"organization,omitempty"`
	Title            string          `json:"title"`
	Content          string          `json:"content,omitempty"`
	ExternalLink     string          `json:"externalLink,omitempty"`
	Location         string          `json:"location,omitempty"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	MinQualification string          `json:"minQualification,omitempty"`
	AgeLimit         string          `json:"ageLimit,omitempty"`
	ApplicationFee   string          `json:"applicationFee,omitempty"`
	TotalPosts       *int            `json:"totalPosts,omitempty"`
	Tags             []string        `json:"tags,omitempty"`
	JobDetails       map[string]any  `json:"jobDetails,omitempty"`
	ImportantDates   []ImportantDate `json:"importantDates,omitempty"`
	PostedBy         string          `json:"postedBy,omitempty"`
	PostedAt         time.Time       `json:"postedAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	IsActive         bool            `json:"isActive"`
	ViewCount        int64           `json:"viewCount"`
}

// ImportantDate - событие в расписании объявления (начало приёма, экзамен и т.д.).
type ImportantDate struct {
	EventName   string     `json:"eventName"   validate:"required"`
	EventDate   *time.Time `json:"eventDate,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ListingCard - облегчённая проекция для списков.
type ListingCard struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Type         string     `json:"type"`
	Category     string     `json:"category,omitempty"`
	Organization string     `json:"organization,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	TotalPosts   *int       `json:"totalPosts,omitempty"`
	PostedAt     time.Time  `json:"postedAt"`
	ViewCount    int64      `json:"viewCount"`
}

// TagCount - результат агрегации по тегам.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}
