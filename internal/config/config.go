package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultLoyaltyEarnRateCents is the spend required to earn one loyalty
// point: 1 point per whole 100.00 of a bill's grand total.
const DefaultLoyaltyEarnRateCents = 10000

type Config struct {
	Port                     string
	AllowedOrigin            string
	DatabaseURL              string
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int
	AuthSecret               string
	AccessTokenTTLMinutes    int
	LoyaltyEarnRateCents     int64
	LowStockThreshold        int
	TopProductsLimit         int
	DashboardCacheTTLSeconds int
}

func Load() Config {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	tokenTTL, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}
	loyaltyRate, err := strconv.ParseInt(getEnv("LOYALTY_EARN_RATE_CENTS", ""), 10, 64)
	if err != nil || loyaltyRate < 1 {
		loyaltyRate = DefaultLoyaltyEarnRateCents
	}
	lowStock, err := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "10"))
	if err != nil || lowStock < 0 {
		lowStock = 10
	}
	topN, err := strconv.Atoi(getEnv("TOP_PRODUCTS_LIMIT", "5"))
	if err != nil || topN < 1 {
		topN = 5
	}
	cacheTTL, err := strconv.Atoi(getEnv("DASHBOARD_CACHE_TTL_SECONDS", "30"))
	if err != nil || cacheTTL < 1 {
		cacheTTL = 30
	}

	return Config{
		Port:                     getEnv("PORT", "8080"),
		AllowedOrigin:            getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		RedisAddr:                os.Getenv("REDIS_ADDR"),
		RedisPassword:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  redisDB,
		AuthSecret:               strings.TrimSpace(os.Getenv("AUTH_SECRET")),
		AccessTokenTTLMinutes:    tokenTTL,
		LoyaltyEarnRateCents:     loyaltyRate,
		LowStockThreshold:        lowStock,
		TopProductsLimit:         topN,
		DashboardCacheTTLSeconds: cacheTTL,
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
