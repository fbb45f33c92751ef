package enginetester

import "time"

type Config struct {
	ServerAddress string        `env:"SERVER_ADDRESS,default=:8080"` // Address to listen on
	RelayTimeout  time.Duration `env:"RELAY_TIMEOUT,default=30s"`    // Timeout for each POST to the engine
	LogLevel      string        `env:"LOG_LEVEL,default=info"`
}
