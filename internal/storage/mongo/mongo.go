package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-govjobs/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	announcementsCollection = "announcements"
	jobsCollection          = "jobs"
	resultsCollection       = "results"
	admitCardsCollection    = "admitcards"
	defaultDBName           = "govjobs"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg           *config.Config
	client        *mongodriver.Client
	db            *mongodriver.Database
	announcements *mongodriver.Collection
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	// jobDetails - произвольный вложенный документ: декодируем в bson.M,
	// чтобы он без преобразований сериализовался в JSON.
	clientOpts := options.Client().
		ApplyURI(cfg.DB.URL).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	cli, err := mongodriver.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.DB.URL))

	m := &Mongo{
		cfg:           cfg,
		client:        cli,
		db:            db,
		announcements: db.Collection(announcementsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close отключает клиента.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping - проверка готовности для /healthz.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создаёт индексы коллекции announcements.
// - slug уникален: ключ upsert и внешних ссылок;
// - isActive + _id(desc): публичные ленты (keyset по _id);
// - isActive + deadline: выборка по диапазону дедлайнов;
// - isActive + viewCount(desc) + postedAt(desc): тренды;
// - tags: агрегация тегов.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("active_id_desc"),
		},
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "deadline", Value: 1}},
			Options: options.Index().SetName("active_deadline_asc"),
		},
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "viewCount", Value: -1}, {Key: "postedAt", Value: -1}},
			Options: options.Index().SetName("active_trending"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("tags"),
		},
	}

	if _, err := m.announcements.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
