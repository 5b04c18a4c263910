package service

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

const maxSlugBase = 200

// Slugify приводит строку к виду для URL: нижний регистр, любые серии
// не буквенно-цифровых символов -> "-", без "-" по краям, не длиннее 200 символов.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if len(out) > maxSlugBase {
		out = strings.TrimRight(out[:maxSlugBase], "-")
	}

	return out
}

// newSlug - Slugify(title) + "-" + unix millis. Суффикс снижает риск коллизий,
// но не гарантирует уникальность: см. slugger.
func newSlug(title string, t time.Time) string {
	suffix := strconv.FormatInt(t.UnixMilli(), 10)

	base := Slugify(title)
	if base == "" {
		return suffix
	}

	return base + "-" + suffix
}

// slugger выдаёт slug'и, не повторяющиеся в пределах одной операции:
// если slug уже выдан (одинаковый title в одну миллисекунду), суффикс сдвигается на 1ms.
type slugger struct {
	seen map[string]struct{}
}

func newSlugger() *slugger {
	return &slugger{seen: make(map[string]struct{})}
}

func (g *slugger) next(title string, t time.Time) string {
	for {
		slug := newSlug(title, t)
		if _, dup := g.seen[slug]; !dup {
			g.seen[slug] = struct{}{}
			return slug
		}
		t = t.Add(time.Millisecond)
	}
}

// cleanTags убирает пустые теги и дубли, сохраняя порядок.
func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimFunc(t, unicode.IsSpace)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}
