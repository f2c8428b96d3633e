package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	SyncModeLocal  = "local"
	SyncModeBroker = "broker"

	defaultIndex      = "userinfo"
	defaultSyncBuffer = 256
)

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		SSLMode  string
	}
	ES struct {
		Addresses []string
		Username  string
		Password  string
		Index     string
	}
	Sync struct {
		Mode       string
		BufferSize int
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App  APP
		DB   DB
		ES   ES
		Sync Sync
		MQ   MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:      getEnv("SERVICE_NAME", "userinfo"),
		Host:      getEnv("SERVICE_HOST", ""),
		Port:      getEnv("SERVICE_PORT", "8080"),
		Env:       getEnv("SERVICE_ENV", ""),
		JWTSecret: getEnv("SERVICE_JWT_SECRET", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		SSLMode:  getEnv("POSTGRES_SSLMODE", ""),
	}
	es := ES{
		Addresses: splitList(getEnv("ELASTICSEARCH_ADDRESSES", "http://localhost:9200")),
		Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
		Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
		Index:     getEnv("ELASTICSEARCH_INDEX", defaultIndex),
	}
	sync := Sync{
		Mode:       strings.ToLower(getEnv("SEARCH_SYNC_MODE", SyncModeLocal)),
		BufferSize: getEnvInt("SEARCH_SYNC_BUFFER", defaultSyncBuffer),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "userinfo.mirror"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "userinfo.index"),
	}

	return Config{
		App:  app,
		DB:   db,
		ES:   es,
		Sync: sync,
		MQ:   mq,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	)
	if c.DB.SSLMode != "" {
		dsn += "?sslmode=" + url.QueryEscape(c.DB.SSLMode)
	}

	return dsn, nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

// Validate checks the settings every process needs regardless of mode.
func (c Config) Validate() error {
	if c.App.JWTSecret == "" {
		return fmt.Errorf("SERVICE_JWT_SECRET is required")
	}
	if len(c.ES.Addresses) == 0 {
		return fmt.Errorf("at least one elasticsearch address is required")
	}
	switch c.Sync.Mode {
	case SyncModeLocal, SyncModeBroker:
	default:
		return fmt.Errorf("unknown SEARCH_SYNC_MODE %q", c.Sync.Mode)
	}

	return nil
}
