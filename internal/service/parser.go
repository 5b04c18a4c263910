package service

import (
	"context"

	"github.com/pribylovaa/go-govjobs/internal/models"
)

// Parser описывает источник объявлений (RSS и т.п.), который парсит несколько лент
// и возвращает черновики CreateInput.
//
// Требования к реализации:
//  1. Type и PostedBy не заполняются - их проставляет сервис из cfg.Fetcher.
//  2. ExternalLink нормализован (без #fragment и трекеров).
//  3. PostedAt - в UTC или nil, если дата в ленте отсутствует или не распознана.
//  4. Реализация обязана уважать ctx.
//
// ParseMany отправляет по одному ParseResult на каждый URL и затем закрывает канал.
// Порядок результатов не гарантируется.
type Parser interface {
	ParseMany(ctx context.Context, urls []string) <-chan ParseResult
}

// ParseResult - результат парсинга одной ленты.
// Если Err != nil, Items может быть неполным или пустым.
type ParseResult struct {
	URL   string
	Items []models.CreateInput
	Err   error
}
