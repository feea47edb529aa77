package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	LogDir           string
	ConsulAddress    string
	ServiceName      string
	ServiceID        string
	ServiceAddress   string
	RabbitMQUser     string
	RabbitMQPassword string
	RabbitMQHost     string
	RabbitMQPort     string
	JWTSecret        string
	TokenExpiry      time.Duration
	RequestTimeout   time.Duration
	LoginLockMinutes int64
}

func init() {
	ServiceConfig = New()
}

var ServiceConfig *Config

func New() *Config {
	tokenExpiry, _ := strconv.Atoi(getEnv("TOKEN_EXPIRY_SECONDS", "3600"))
	requestTimeout, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "10"))
	lockMinutes, _ := strconv.ParseInt(getEnv("LOGIN_LOCK_MINUTES", "10"), 10, 64)

	return &Config{
		Port:             getEnv("PORT", "9200"),
		LogDir:           getEnv("LOG_DIR", "log"),
		ConsulAddress:    getEnv("CONSUL_ADDR", "consul-server:8500"),
		ServiceName:      getEnv("SERVICE_NAME", "devconnect"),
		ServiceID:        getEnv("SERVICE_NAME", "devconnect") + "-" + getEnv("HOSTNAME", "1"),
		ServiceAddress:   getEnv("SERVICE_ADDRESS", "devconnect"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", ""),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", ""),
		RabbitMQHost:     getEnv("RABBITMQ_HOST", "rabbitmq"),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenExpiry:      time.Duration(tokenExpiry) * time.Second,
		RequestTimeout:   time.Duration(requestTimeout) * time.Second,
		LoginLockMinutes: lockMinutes,
	}
}

// RabbitMQURI is empty when no broker user is configured, which disables
// event publishing instead of failing startup.
func (c *Config) RabbitMQURI() string {
	if c.RabbitMQUser == "" {
		return ""
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.RabbitMQUser, c.RabbitMQPassword, c.RabbitMQHost, c.RabbitMQPort)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("ENV %s not set, using default %q", key, fallback)
	return fallback
}
