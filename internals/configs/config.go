package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	AdminUsername     string
	AdminPasswordHash string

	MidtransServerKey string
	MidtransClientKey string
	MidtransUseProd   bool

	SessionTTL = 12 * time.Hour
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	AdminUsername = GetEnv("ADMIN_USERNAME", "admin")
	AdminPasswordHash = GetEnv("ADMIN_PASSWORD_HASH")
	if AdminPasswordHash == "" {
		// Dev fallback: accept plaintext ADMIN_PASSWORD and hash it at boot.
		// Production must set ADMIN_PASSWORD_HASH (bcrypt digest) instead.
		if plain := GetEnv("ADMIN_PASSWORD"); plain != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("❌ Failed to hash ADMIN_PASSWORD: %v", err)
			}
			AdminPasswordHash = string(hashed)
			log.Println("⚠️ ADMIN_PASSWORD_HASH not set, derived from ADMIN_PASSWORD (dev only)")
		} else {
			log.Println("❌ ADMIN_PASSWORD_HASH not set! Admin login will always be rejected.")
		}
	} else {
		log.Println("✅ ADMIN_PASSWORD_HASH loaded.")
	}

	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransClientKey = GetEnv("MIDTRANS_CLIENT_KEY")
	MidtransUseProd = getEnvBool("MIDTRANS_USE_PROD", false)
	if MidtransServerKey == "" {
		log.Println("❌ MIDTRANS_SERVER_KEY not set! Gateway payments are disabled.")
	} else {
		log.Println("✅ MIDTRANS_SERVER_KEY loaded.")
	}

	SessionTTL = time.Duration(getEnvInt("SESSION_TTL_MINUTES", 720)) * time.Minute
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
