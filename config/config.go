package config

import "os"

// Environment-backed configuration, loaded once at startup (main calls
// godotenv.Load before Init so a local .env is honoured).
var (
	Port string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	AdminKey string

	FCMServerKey    string
	OneSignalAppID  string
	OneSignalAPIKey string

	StripeSecretKey     string
	StripeWebhookSecret string

	PublicSiteURL string
	ClientUrl     string
)

// Init reads the configuration from the environment
func Init() {
	Port = getEnv("PORT", "8080")

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "twinclash")

	AdminKey = os.Getenv("ADMIN_PUSH_KEY")

	FCMServerKey = os.Getenv("FCM_SERVER_KEY")
	OneSignalAppID = os.Getenv("ONESIGNAL_APP_ID")
	OneSignalAPIKey = os.Getenv("ONESIGNAL_API_KEY")

	StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	StripeWebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	PublicSiteURL = getEnv("PUBLIC_SITE_URL", "https://twinclash.org")
	ClientUrl = getEnv("CLIENT_URL", "https://twinclash.org")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
