package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file loaded, using process environment")
	}
}

// GetEnv retrieves an environment variable with a fallback.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

var (
	jwtSecretOnce sync.Once
	jwtSecret     []byte
)

// JWTSecret returns the session signing secret, normalized once to a
// single byte-slice representation for every sign and verify call.
func JWTSecret() []byte {
	jwtSecretOnce.Do(func() {
		jwtSecret = []byte(GetEnv("JWT_SECRET", ""))
	})
	return jwtSecret
}

func MongoURI() string  { return GetEnv("MONGO_URI", "") }
func DBName() string    { return GetEnv("DB_NAME", "divyakart") }
func Port() string      { return GetEnv("PORT", "8080") }
func RedisAddr() string { return GetEnv("REDIS_ADDR", "") }

func RazorpayKeyID() string     { return GetEnv("RAZORPAY_KEY_ID", "") }
func RazorpayKeySecret() string { return GetEnv("RAZORPAY_KEY_SECRET", "") }

func IdentityBaseURL() string { return GetEnv("IDENTITY_BASE_URL", "") }
func IdentityAPIKey() string  { return GetEnv("IDENTITY_API_KEY", "") }
