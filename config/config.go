package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config contient toutes les configurations de l'application
type Config struct {
	Port            string        `env:"PORT" env-default:"8090"`
	Host            string        `env:"HOST" env-default:"0.0.0.0"` // 0.0.0.0 pour serveur cloud
	MongoURI        string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDB         string        `env:"MONGO_DB" env-default:"events_cms_db"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTTTL          time.Duration `env:"JWT_TTL" env-default:"24h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" env-default:"false"`
	Environment     string        `env:"ENVIRONMENT" env-default:"development"`
	RawCORSOrigins  string        `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	SlackWebhookURL string        `env:"SLACK_WEBHOOK_URL"`
	RedisURL        string        `env:"REDIS_URL"`

	Storage Storage
	Upload  Upload

	CORSOrigins []string
}

// Storage regroupe la configuration du stockage objet (S3 ou MinIO)
type Storage struct {
	Driver          string `env:"STORAGE_DRIVER" env-default:"s3"`
	Region          string `env:"AWS_REGION" env-default:"eu-west-3"`
	Bucket          string `env:"AWS_BUCKET_NAME"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"S3_ENDPOINT"`
	PublicBaseURL   string `env:"STORAGE_PUBLIC_BASE_URL"`
	UseSSL          bool   `env:"MINIO_USE_SSL" env-default:"true"`
}

// Upload regroupe les seuils d'upload. Le seuil multipart et la taille
// de part sont indépendants.
type Upload struct {
	MultipartThreshold int64         `env:"MULTIPART_THRESHOLD" env-default:"15728640"`
	PartSize           int64         `env:"MULTIPART_PART_SIZE" env-default:"5242880"`
	PresignExpiry      time.Duration `env:"PRESIGN_EXPIRY" env-default:"15m"`
	TrackingTTL        time.Duration `env:"UPLOAD_TRACKING_TTL" env-default:"24h"`
}

// Load charge la configuration depuis les variables d'environnement
func Load() (*Config, error) {
	// Charger le fichier .env s'il existe
	_ = godotenv.Load()

	config := &Config{}
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("erreur lors de la lecture de la configuration: %w", err)
	}

	// Parser les origines CORS
	originsList := strings.Split(config.RawCORSOrigins, ",")
	config.CORSOrigins = make([]string, 0, len(originsList))
	for _, origin := range originsList {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			config.CORSOrigins = append(config.CORSOrigins, trimmed)
		}
	}

	// Valider les configurations critiques
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET est requis")
	}
	if config.Upload.MultipartThreshold <= 0 || config.Upload.PartSize <= 0 {
		return nil, fmt.Errorf("MULTIPART_THRESHOLD et MULTIPART_PART_SIZE doivent être positifs")
	}
	switch config.Storage.Driver {
	case "s3", "minio":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER inconnu: %s", config.Storage.Driver)
	}

	return config, nil
}
