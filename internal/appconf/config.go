package appconf

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Store kinds accepted by Config.Store.
const (
	StoreSQLite = "sqlite"
	StoreNeo4j  = "neo4j"
)

// Config holds the settings of the API server.
type Config struct {
	Port      int         `yaml:"port" validate:"gt=0,lte=65535"`
	Env       Environment `yaml:"-"`
	EnvName   string      `yaml:"env" validate:"omitempty,oneof=development test production prod"`
	RateLimit int         `yaml:"rateLimit" validate:"gte=0"`
	LogLevel  string      `yaml:"logLevel" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string      `yaml:"logFormat" validate:"omitempty,oneof=json text"`
	Store     string      `yaml:"store" validate:"oneof=sqlite neo4j"`
	Data      DataConfig  `yaml:"data"`
	Neo4j     Neo4jConfig `yaml:"neo4j"`
}

// DataConfig locates the SQLite database and the files imported into it at startup.
type DataConfig struct {
	DBPath      string `yaml:"dbPath" validate:"required"`
	NetworkFile string `yaml:"networkFile"`
	GtfsFile    string `yaml:"gtfsFile"`
}

// Neo4jConfig describes the graph database used when Store is "neo4j".
type Neo4jConfig struct {
	URI            string `yaml:"uri" validate:"required_if=Enabled true"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"maxConnections" validate:"gte=0"`
	Enabled        bool   `yaml:"-"`
}

// Default returns the configuration used when no file or flag overrides a value.
func Default() Config {
	return Config{
		Port:      4000,
		Env:       Development,
		EnvName:   Development.String(),
		RateLimit: 100,
		LogLevel:  "info",
		LogFormat: "json",
		Store:     StoreSQLite,
		Data: DataConfig{
			DBPath: "subway.db",
		},
	}
}

// LoadFile reads a YAML configuration file on top of Default and validates it.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration on top of Default and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Env = EnvFlagToEnvironment(cfg.EnvName)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	c.Neo4j.Enabled = c.Store == StoreNeo4j
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
