package models

import (
	"strings"
	"time"
)

// Модели устаревших коллекций jobs, results, admitcards.
// Используются только миграцией в announcements (cmd/announcements-import -source legacy).

// LegacyJob - документ коллекции jobs.
type LegacyJob struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Organization  string     `json:"organization"`
	Department    string     `json:"department"`
	Location      string     `json:"location"`
	Qualification string     `json:"qualification"`
	AgeLimit      string     `json:"ageLimit"`
	Fee           string     `json:"fee"`
	Posts         int        `json:"posts"`
	LastDate      *time.Time `json:"lastDate"`
	ApplyLink     string     `json:"applyLink"`
	Description   string     `json:"description"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// LegacyResult - документ коллекции results.
type LegacyResult struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Organization string     `json:"organization"`
	ResultDate   *time.Time `json:"resultDate"`
	ResultLink   string     `json:"resultLink"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// LegacyAdmitCard - документ коллекции admitcards.
type LegacyAdmitCard struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Organization string     `json:"organization"`
	ExamDate     *time.Time `json:"examDate"`
	DownloadLink string     `json:"downloadLink"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// legacyPostedBy - автор мигрированных объявлений.
const legacyPostedBy = "legacy-migration"

func postedAt(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

// ToInput переводит вакансию в CreateInput.
// Department уходит в category, если она не задана явно.
func (j LegacyJob) ToInput() CreateInput {
	in := CreateInput{
		Type:             TypeJob,
		Title:            strings.TrimSpace(j.Title),
		Category:         strings.TrimSpace(j.Department),
		Organization:     strings.TrimSpace(j.Organization),
		Content:          j.Description,
		ExternalLink:     strings.TrimSpace(j.ApplyLink),
		Location:         j.Location,
		Deadline:         j.LastDate,
		MinQualification: j.Qualification,
		AgeLimit:         j.AgeLimit,
		ApplicationFee:   j.Fee,
		Tags:             j.Tags,
		PostedBy:         legacyPostedBy,
		PostedAt:         postedAt(j.CreatedAt),
	}
	if j.Posts > 0 {
		posts := j.Posts
		in.TotalPosts = &posts
	}

	return in
}

// ToInput переводит результат экзамена в CreateInput.
func (r LegacyResult) ToInput() CreateInput {
	in := CreateInput{
		Type:         TypeResult,
		Title:        strings.TrimSpace(r.Title),
		Organization: strings.TrimSpace(r.Organization),
		Content:      r.Description,
		ExternalLink: strings.TrimSpace(r.ResultLink),
		PostedBy:     legacyPostedBy,
		PostedAt:     postedAt(r.CreatedAt),
	}
	if r.ResultDate != nil {
		in.ImportantDates = []ImportantDate{{EventName: "Result Declared", EventDate: r.ResultDate}}
	}

	return in
}

// ToInput переводит допуск (admit card) в CreateInput.
func (a LegacyAdmitCard) ToInput() CreateInput {
	in := CreateInput{
		Type:         TypeAdmitCard,
		Title:        strings.TrimSpace(a.Title),
		Organization: strings.TrimSpace(a.Organization),
		Content:      a.Description,
		ExternalLink: strings.TrimSpace(a.DownloadLink),
		PostedBy:     legacyPostedBy,
		PostedAt:     postedAt(a.CreatedAt),
	}
	if a.ExamDate != nil {
		in.ImportantDates = []ImportantDate{{EventName: "Exam Date", EventDate: a.ExamDate}}
	}

	return in
}
