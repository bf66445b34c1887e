package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Target     TargetConfig
	SuperAdmin SuperAdminConfig
	Postgres   PostgresConfig
	Twin       TwinConfig
}

// TargetConfig points the client at a deployed Cinescope. When either URL is
// empty the suites run against an in-process twin.
type TargetConfig struct {
	AuthURL string `env:"CINESCOPE_AUTH_URL"`
	APIURL  string `env:"CINESCOPE_API_URL"`
}

func (t TargetConfig) Remote() bool {
	return t.AuthURL != "" && t.APIURL != ""
}

type SuperAdminConfig struct {
	Email    string `env:"SUPER_ADMIN_EMAIL,    default=api1@gmail.com"`
	Password string `env:"SUPER_ADMIN_PASSWORD, default=asdqwe123Q"`
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST"`
	Port     int    `env:"DB_PORT,     default=5432"`
	User     string `env:"DB_USER,     default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,     default=db_movies"`
	SSLMode  string `env:"DB_SSLMODE,  default=disable"`
}

// Enabled reports whether a database collaborator is configured.
func (p PostgresConfig) Enabled() bool { return p.Host != "" }

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
}

type TwinConfig struct {
	Port       string        `env:"TWIN_PORT,        default=8080"`
	JWTSecret  string        `env:"TWIN_JWT_SECRET,  default=cinescope-twin-secret"`
	TokenTTL   time.Duration `env:"TWIN_TOKEN_TTL,   default=1h"`
	BcryptCost int           `env:"TWIN_BCRYPT_COST, default=10"`
	Store      string        `env:"TWIN_STORE,       default=memory"`
	Sessions   string        `env:"TWIN_SESSIONS,    default=memory"`
	SeedMovies int           `env:"TWIN_SEED_MOVIES, default=24"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cinescope_twin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads an optional dotenv file (CINESCOPE_ENV_FILE, default .env) into
// the process environment and then decodes the environment.
func Load(ctx context.Context) (*Config, error) {
	file := os.Getenv("CINESCOPE_ENV_FILE")
	if file == "" {
		file = ".env"
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", file, err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom decodes configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad panics when the configuration cannot be loaded.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if (c.Target.AuthURL == "") != (c.Target.APIURL == "") {
		return errors.New("config: CINESCOPE_AUTH_URL and CINESCOPE_API_URL must be set together")
	}
	switch c.Twin.Store {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("config: unsupported TWIN_STORE %q", c.Twin.Store)
	}
	switch c.Twin.Sessions {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("config: unsupported TWIN_SESSIONS %q", c.Twin.Sessions)
	}
	return nil
}
