package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// DefaultJWTSecret is only acceptable outside release mode.
const DefaultJWTSecret = "change-me-in-production"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set when GIN_MODE=release")

type Env struct {
	AppAddr  string
	GinMode  string
	LogLevel string

	DatabaseDSN    string
	DBMaxOpenConns int

	// BaseURL is the public origin used to build absolute invoice links.
	BaseURL    string
	InvoiceDir string

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string
	BookingRatePerMin  int

	WhatsAppCountryCode string
	Company             Company
}

// Company is printed on every invoice as the issuer block.
type Company struct {
	Name    string
	GSTIN   string
	Address string
}

func LoadEnv() Env {
	_ = godotenv.Load(".env")

	return Env{
		AppAddr:  cast.ToString(getOrDefault("APP_ADDR", ":8080")),
		GinMode:  cast.ToString(getOrDefault("GIN_MODE", "")),
		LogLevel: cast.ToString(getOrDefault("LOG_LEVEL", "info")),

		DatabaseDSN:    cast.ToString(getOrDefault("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/travelnest")),
		DBMaxOpenConns: cast.ToInt(getOrDefault("DB_MAX_OPEN_CONNS", 25)),

		BaseURL:    strings.TrimRight(cast.ToString(getOrDefault("BASE_URL", "http://127.0.0.1:8000")), "/"),
		InvoiceDir: cast.ToString(getOrDefault("INVOICE_DIR", "invoices")),

		JWTSecret: cast.ToString(getOrDefault("JWT_SECRET", DefaultJWTSecret)),
		JWTTTL:    time.Duration(cast.ToInt(getOrDefault("JWT_TTL_MINUTES", 60))) * time.Minute,

		CORSAllowedOrigins: splitList(cast.ToString(getOrDefault("CORS_ALLOWED_ORIGINS",
			"https://travelnestcabs.com,http://127.0.0.1:5500,http://localhost:5500"))),
		BookingRatePerMin: cast.ToInt(getOrDefault("BOOKING_RATE_PER_MINUTE", 30)),

		WhatsAppCountryCode: cast.ToString(getOrDefault("WHATSAPP_COUNTRY_CODE", "91")),
		Company: Company{
			Name:    cast.ToString(getOrDefault("COMPANY_NAME", "Travel Nest Cabs")),
			GSTIN:   cast.ToString(getOrDefault("COMPANY_GSTIN", "29ABCDE1234F1Z5")),
			Address: cast.ToString(getOrDefault("COMPANY_ADDRESS", "Bengaluru, Karnataka, India")),
		},
	}
}

// Validate rejects settings that are unsafe to serve with.
func (e Env) Validate() error {
	if e.GinMode == "release" && (e.JWTSecret == "" || e.JWTSecret == DefaultJWTSecret) {
		return ErrDefaultJWTSecret
	}
	return nil
}

func getOrDefault(key string, def any) any {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
