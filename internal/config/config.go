// config реализует конфигурацию announcements-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config - корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	GRPC     GRPCConfig    `yaml:"grpc"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	Cache    CacheConfig   `yaml:"cache"`
	Limits   LimitsConfig  `yaml:"limits"`
	Policy   PolicyConfig  `yaml:"policy"`
	Auth     AuthConfig    `yaml:"auth"`
	Secret   SecretConfig  `yaml:"secret"`
	Fetcher  FetcherConfig `yaml:"fetcher"`
	S3       S3Config      `yaml:"s3"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig - дедлайны обработки запроса: обычный и для пакетных операций.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
	Bulk    time.Duration `yaml:"bulk"    env:"BULK_TIMEOUT"    env-default:"30s"`
}

// HTTPConfig - REST API + health/metrics.
type HTTPConfig struct {
	Host     string `yaml:"host"      env:"HTTP_HOST"      env-default:"0.0.0.0"`
	Port     string `yaml:"port"      env:"HTTP_PORT"      env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api"`
}

// GRPCConfig - gRPC-сервер только для health-проверок (mesh/k8s).
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// DBConfig - настройки подключения к MongoDB.
// Имя базы берётся из пути URI; если его нет - "govjobs".
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig - подключение к Redis. Пустой URL -> in-memory кэш процесса.
type RedisConfig struct {
	URL    string `yaml:"url"    env:"REDIS_URL"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"govjobs:"`
}

// CacheConfig - TTL кэшируемых чтений.
type CacheConfig struct {
	// Время жизни карточки объявления по slug (ключ job:{slug}).
	SlugTTL time.Duration `yaml:"slug_ttl" env:"CACHE_SLUG_TTL" env-default:"1h"`
}

// LimitsConfig - лимиты выдачи.
type LimitsConfig struct {
	// Курсорная пагинация: limit=0 -> Default.
	Default int64 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"20"`
	// Offset-пагинация: limit=0 -> OffsetDefault.
	OffsetDefault int64 `yaml:"offset_default" env:"OFFSET_DEFAULT_LIMIT" env-default:"100"`
	// Верхняя граница для любого limit.
	Max int64 `yaml:"max" env:"MAX_LIMIT" env-default:"500"`
	// Размер выдачи трендов/дедлайнов по умолчанию.
	Trending int64 `yaml:"trending" env:"TRENDING_LIMIT" env-default:"10"`
	// Максимальный размер одного пакета bulk-операции.
	Batch int `yaml:"batch" env:"BATCH_LIMIT" env-default:"1000"`
}

// PolicyConfig - политика деградации путей чтения.
// По умолчанию fail-open: ошибки хранилища логируются и превращаются
// в пустой результат. strict=true -> наружу уходит ErrInternal.
// Флаг инвертирован: cleanenv подставляет env-default поверх нулевого значения из YAML.
type PolicyConfig struct {
	Strict bool `yaml:"strict" env:"STRICT_READS"`
}

// FailOpen сообщает, нужно ли гасить ошибки хранилища на путях чтения.
func (p PolicyConfig) FailOpen() bool {
	return !p.Strict
}

// AuthConfig - проверка admin-токенов (HS256).
// Пустой JWTSecret отключает admin-маршруты.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	Issuer    string `yaml:"issuer"     env:"JWT_ISSUER"   env-default:"govjobs"`
	Audience  string `yaml:"audience"   env:"JWT_AUDIENCE" env-default:"govjobs-admin"`
}

// SecretConfig - парольная фраза секрет-бокса.
type SecretConfig struct {
	Passphrase string `yaml:"passphrase" env:"SECRET_PASSPHRASE"`
}

// FetcherConfig - параметры периодического опроса RSS-лент с вакансиями.
type FetcherConfig struct {
	// Список URL RSS-источников. ENV RSS_SOURCES, разделитель - запятая.
	Sources     []string      `yaml:"sources"     env:"RSS_SOURCES"      env-separator:","`
	Interval    time.Duration `yaml:"interval"    env:"FETCH_INTERVAL"   env-default:"10m"`
	Concurrency int           `yaml:"concurrency" env:"FETCH_CONCURRENCY" env-default:"4"`
	Timeout     time.Duration `yaml:"timeout"     env:"FETCH_TIMEOUT"    env-default:"15s"`
	// Тип объявлений, создаваемых из ленты.
	DefaultType string `yaml:"default_type" env:"FETCH_DEFAULT_TYPE" env-default:"job"`
	PostedBy    string `yaml:"posted_by"    env:"FETCH_POSTED_BY"    env-default:"rss-ingest"`
	// Токен доступа к лентам, зашифрованный секрет-боксом (iv.tag.ciphertext).
	TokenEnc string `yaml:"token_enc" env:"FETCH_TOKEN_ENC"`
}

// S3Config - источник NDJSON-выгрузок для импорта. Опционален.
type S3Config struct {
	Endpoint     string `yaml:"endpoint"      env:"S3_ENDPOINT"`
	RootUser     string `yaml:"root_user"     env:"S3_ROOT_USER"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket       string `yaml:"bucket"        env:"S3_BUCKET" env-default:"govjobs-imports"`
}

// Enabled сообщает, задан ли S3-источник.
func (s S3Config) Enabled() bool {
	return s.Endpoint != ""
}

// MustLoad - обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	readFile := func(p string) error {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return fmt.Errorf("failed to overlay env: %w", err)
		}

		return nil
	}

	switch {
	case path != "":
		if err := readFile(path); err != nil {
			return nil, err
		}
	case os.Getenv("CONFIG_PATH") != "":
		if err := readFile(os.Getenv("CONFIG_PATH")); err != nil {
			return nil, err
		}
	default:
		if _, err := os.Stat("local.yaml"); err == nil {
			if err := readFile("local.yaml"); err != nil {
				return nil, err
			}
			break
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate - базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Cache.SlugTTL <= 0 {
		return fmt.Errorf("cache.slug_ttl must be > 0")
	}

	if c.Limits.Default <= 0 || c.Limits.OffsetDefault <= 0 || c.Limits.Trending <= 0 {
		return fmt.Errorf("limits.default, limits.offset_default and limits.trending must be > 0")
	}

	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}

	if c.Limits.Default > c.Limits.Max || c.Limits.OffsetDefault > c.Limits.Max {
		return fmt.Errorf("limits.default and limits.offset_default must be <= limits.max")
	}

	if c.Limits.Batch <= 0 {
		return fmt.Errorf("limits.batch must be > 0")
	}

	if len(c.Fetcher.Sources) > 0 {
		if c.Fetcher.Interval < time.Minute {
			return fmt.Errorf("fetcher.interval must be at least 1m")
		}

		if c.Fetcher.Concurrency <= 0 {
			return fmt.Errorf("fetcher.concurrency must be > 0")
		}
	}

	if c.Fetcher.TokenEnc != "" && c.Secret.Passphrase == "" {
		return fmt.Errorf("secret.passphrase is required when fetcher.token_enc is set")
	}

	if c.Env == "prod" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required in prod")
	}

	if c.S3.Enabled() && (c.S3.RootUser == "" || c.S3.RootPassword == "" || c.S3.Bucket == "") {
		return fmt.Errorf("s3.root_user, s3.root_password and s3.bucket are required when s3.endpoint is set")
	}

	return nil
}
