package rss

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	"github.com/pribylovaa/go-govjobs/internal/service"
)

// Parser реализует service.Parser для RSS 2.0.
// Возвращает черновики models.CreateInput без Type/PostedBy.
//
// Параллелизм ограничен семафором maxConc. HTTP-клиент настраивается извне.
type Parser struct {
	client  *http.Client
	maxConc int
	token   string
}

// Option настраивает Parser.
type Option func(*Parser)

// WithToken добавляет заголовок Authorization: Bearer <token> к каждому запросу.
// Пустой токен игнорируется.
func WithToken(token string) Option {
	return func(p *Parser) { p.token = token }
}

// New создаёт новый RSS-парсер.
func New(client *http.Client, maxConcurrent int, opts ...Option) *Parser {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	p := &Parser{client: client, maxConc: maxConcurrent}
	for _, o := range opts {
		o(p)
	}

	return p
}

// ParseMany парсит несколько лент конкурентно и отдаёт результаты в канал.
// Канал закрывается после обработки всех URL; потребитель обязан его вычитать.
func (p *Parser) ParseMany(ctx context.Context, urls []string) <-chan service.ParseResult {
	output := make(chan service.ParseResult)

	go func() {
		defer close(output)

		sem := make(chan struct{}, p.maxConc)

	loop:
		for _, u := range urls {
			select {
			case <-ctx.Done():
				break loop
			case sem <- struct{}{}:
			}

			go func(src string) {
				defer func() { <-sem }()

				items, err := p.fetchOne(ctx, src)
				output <- service.ParseResult{URL: src, Items: items, Err: err}
			}(u)
		}

		// Ждём завершения запущенных загрузок до закрытия канала.
		for i := 0; i < cap(sem); i++ {
			sem <- struct{}{}
		}
	}()

	return output
}

// fetchOne загружает и парсит ленту по URL.
func (p *Parser) fetchOne(ctx context.Context, src string) ([]models.CreateInput, error) {
	const op = "rss/fetchOne"

	lg := log.From(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}

	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.5")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		lg.Warn("http_error",
			slog.String("op", op),
			slog.String("url", src),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var doc rss
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	org := strings.TrimSpace(doc.Channel.Title)

	var output []models.CreateInput
	for _, it := range doc.Channel.Items {
		title := strings.TrimSpace(it.Title)
		link := canonicalLink(it.Link, it.GUID)

		if title == "" || link == "" {
			continue
		}

		in := models.CreateInput{
			Title:        title,
			ExternalLink: link,
			Content:      pickContent(it),
			Organization: org,
		}

		if tags := trimAll(it.Categories); len(tags) > 0 {
			in.Category = tags[0]
			in.Tags = tags
		}

		pub, err := parsePubDate(it.PubDate)
		if err != nil {
			lg.Warn("date_parse_failed",
				slog.String("op", op),
				slog.String("url", src),
				slog.String("value", it.PubDate),
				slog.String("err", err.Error()),
			)
		} else {
			in.PostedAt = &pub
		}

		output = append(output, in)
	}

	return output, nil
}

// pickContent: content:encoded, иначе description.
func pickContent(it item) string {
	if c := strings.TrimSpace(it.ContentHTML); c != "" {
		return c
	}

	return strings.TrimSpace(it.Description)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}

// canonicalLink нормализует ссылку: убирает фрагмент и трекинг.
func canonicalLink(raw string, g guid) string {
	str := strings.TrimSpace(raw)

	if str == "" {
		if v := strings.TrimSpace(g.Value); strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			str = v
		}
	}

	u, err := url.Parse(str)
	if err != nil {
		return str
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return str
	}

	u.Fragment = ""
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || strings.HasSuffix(lk, "clid") || strings.HasPrefix(lk, "mc_") {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// parsePubDate пробует набор популярных форматов и возвращает UTC-время.
func parsePubDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}

	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 02 Jan 06 15:04:05 -0700",
		"Mon, 02 Jan 06 15:04:05 MST",
		"Mon, 2 Jan 2006 15:04:05 -0700",
		time.RFC822Z,
		time.RFC822,
		time.RFC3339,
		"2006-01-02",
	}

	var lastErr error
	for _, l := range layouts {
		t, err := time.Parse(l, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}
