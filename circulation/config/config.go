package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/kafka"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/logger"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/postgres"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"CIRCULATION_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"CIRCULATION_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"15s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Storage struct {
	// Driver falls back to postgres when neither env nor an option sets it.
	Driver string `yaml:"driver" envconfig:"STORAGE_DRIVER"`
}

type Circulation struct {
	IssuePoints    int64         `yaml:"issuePoints" envconfig:"REWARD_ISSUE_POINTS" default:"10"`
	ReturnPoints   int64         `yaml:"returnPoints" envconfig:"REWARD_RETURN_POINTS" default:"5"`
	PopularWindow  time.Duration `yaml:"popularWindow" envconfig:"POPULAR_WINDOW" default:"720h"`
	TrendingWindow time.Duration `yaml:"trendingWindow" envconfig:"TRENDING_WINDOW" default:"336h"`
	RecommendLimit int           `yaml:"recommendLimit" envconfig:"RECOMMEND_LIMIT" default:"10"`
	DiscoverLimit  int           `yaml:"discoverLimit" envconfig:"DISCOVER_LIMIT" default:"12"`
}

type Config struct {
	Server      HTTPServer  `yaml:"server"`
	Storage     Storage     `yaml:"storage"`
	Database    postgres.DB `yaml:"db"`
	Kafka       kafka.Config
	Circulation Circulation `yaml:"circulation"`
	Log         logger.Log  `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options are applied first, so
// the environment wins; an option only sticks for keys without a default
// tag that the environment leaves unset.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		if err := config.validate(); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func (c *Config) validate() error {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverPostgres
	}
	switch c.Storage.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Circulation.IssuePoints <= 0 || c.Circulation.ReturnPoints <= 0 {
		return fmt.Errorf("reward points must be positive")
	}
	return nil
}

func printConfig(cfg *Config) {
	printable := *cfg
	printable.Database.Password = "***"
	jscfg, _ := json.MarshalIndent(printable, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
