package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	DatabaseSchema  string `envconfig:"DATABASE_SCHEMA" default:"givehaven"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Supabase Auth
	SupabaseProjectRef string `envconfig:"SUPABASE_PROJECT_REF"`
	SupabaseAnonKey    string `envconfig:"SUPABASE_ANON_KEY"`

	// Object storage for home logos: "supabase" or "s3"
	StorageBackend     string `envconfig:"STORAGE_BACKEND" default:"supabase"`
	StorageBucketName  string `envconfig:"STORAGE_BUCKET_NAME" default:"home-logos"`
	SupabaseServiceKey string `envconfig:"SUPABASE_SERVICE_KEY"`
	S3Region           string `envconfig:"S3_REGION" default:"us-east-1"`

	// Preference store backing consent and banner dismissals: "cookie" or "redis"
	PreferenceBackend string `envconfig:"PREFERENCE_BACKEND" default:"cookie"`
	RedisAddr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD"`
	RedisDB           int    `envconfig:"REDIS_DB" default:"0"`

	// Auth Configuration
	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"session_id"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
