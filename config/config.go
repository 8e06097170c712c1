package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// 数据库配置
	DatabaseURL string

	// 服务器配置
	Port string

	// 赛季配置
	Season             int
	FinalsPickDeadline time.Time
	MvpPickDeadline    time.Time

	// 计分规则覆盖文件 (可选, YAML)
	RulesFile string

	// 结果消息队列配置 (可选)
	AMQPURL      string
	ResultsQueue string

	// Telegram 通知配置 (可选)
	TelegramToken  string
	TelegramChatID int64

	// 排行榜缓存时间
	CacheTTL time.Duration

	// 其他配置
	Environment    string
	AllowedOrigins []string
}

// Load 从环境变量加载配置
func Load() *Config {
	// .env 文件存在时优先加载
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded configuration from .env")
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/predictions?sslmode=disable"),

		Port: getEnv("PORT", "8080"),

		Season:             getEnvInt("SEASON", 2026),
		FinalsPickDeadline: getEnvTime("FINALS_PICK_DEADLINE", time.Date(2026, 4, 18, 20, 0, 0, 0, time.UTC)),
		MvpPickDeadline:    getEnvTime("MVP_PICK_DEADLINE", time.Date(2026, 6, 30, 20, 0, 0, 0, time.UTC)),

		RulesFile: getEnv("RULES_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		ResultsQueue: getEnv("RESULTS_QUEUE", "game-results"),

		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID: int64(getEnvInt("TELEGRAM_CHAT_ID", 0)),

		CacheTTL: getEnvDuration("CACHE_TTL", 30*time.Second),

		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: getAllowedOrigins(),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var result int
	fmt.Sscanf(value, "%d", &result)
	if result == 0 {
		return defaultValue
	}
	return result
}

func getEnvTime(key string, defaultValue time.Time) time.Time {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return defaultValue
	}
	return t
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getAllowedOrigins() []string {
	origins := getEnv("ALLOWED_ORIGINS", "*")
	return strings.Split(origins, ",")
}
