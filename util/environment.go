package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"pokerduel.com/server/logging"
)

var environmentLogger = logging.GetZeroLogger("util::environment", nil)

type duelServerEnvironment struct {
	PersistMethod  string
	RedisHost      string
	RedisPort      string
	RedisPW        string
	RedisDB        string
	NatsURL        string
	GameConfigFile string
	Port           string
	LogLevel       string
}

// Env is a helper object for accessing environment variables.
var Env = &duelServerEnvironment{
	PersistMethod:  "PERSIST_METHOD",
	RedisHost:      "REDIS_HOST",
	RedisPort:      "REDIS_PORT",
	RedisPW:        "REDIS_PW",
	RedisDB:        "REDIS_DB",
	NatsURL:        "NATS_URL",
	GameConfigFile: "GAME_CONFIG_FILE",
	Port:           "PORT",
	LogLevel:       "LOG_LEVEL",
}

func (d *duelServerEnvironment) GetPersistMethod() string {
	method := os.Getenv(d.PersistMethod)
	if method == "" {
		return "redis"
	}
	return method
}

func (d *duelServerEnvironment) GetRedisHost() string {
	host := os.Getenv(d.RedisHost)
	if host == "" {
		return "localhost"
	}
	return host
}

func (d *duelServerEnvironment) GetRedisPort() int {
	portStr := os.Getenv(d.RedisPort)
	if portStr == "" {
		return 6379
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (d *duelServerEnvironment) GetRedisPW() string {
	return os.Getenv(d.RedisPW)
}

func (d *duelServerEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(d.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

func (d *duelServerEnvironment) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", d.GetRedisHost(), d.GetRedisPort())
}

func (d *duelServerEnvironment) GetNatsURL() string {
	url := os.Getenv(d.NatsURL)
	if url == "" {
		return "nats://localhost:4222"
	}
	return url
}

func (d *duelServerEnvironment) GetGameConfigFile() string {
	return os.Getenv(d.GameConfigFile)
}

func (d *duelServerEnvironment) GetPort() int {
	portStr := os.Getenv(d.Port)
	if portStr == "" {
		return 8080
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid server port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (d *duelServerEnvironment) GetZeroLogLogLevel() zerolog.Level {
	levelStr := os.Getenv(d.LogLevel)
	if levelStr == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		environmentLogger.Warn().Msgf("Unknown log level %s. Using info.", levelStr)
		return zerolog.InfoLevel
	}
	return level
}
