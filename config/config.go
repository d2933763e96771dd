// server/config/config.go
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbName"`
	SSLMode  string `mapstructure:"sslMode"`
}

// DSN returns the PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	return "host=" + p.Host +
		" port=" + p.Port +
		" user=" + p.User +
		" password=" + p.Password +
		" dbname=" + p.DBName +
		" sslmode=" + p.SSLMode
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type GeocodingConfig struct {
	Provider         string `mapstructure:"provider"` // "nominatim", "census" or "mapbox"
	UserAgent        string `mapstructure:"userAgent"`
	NominatimBaseURL string `mapstructure:"nominatimBaseURL"`
	NominatimDelayMs int    `mapstructure:"nominatimDelayMs"`
	CensusBaseURL    string `mapstructure:"censusBaseURL"`
	MapboxToken      string `mapstructure:"mapboxToken"`
	BatchLimit       int    `mapstructure:"batchLimit"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	S3        S3Config        `mapstructure:"s3"`
}

// LoadConfig reads configuration from config.yaml and overrides values with
// environment variables. A missing config file is not an error; env vars alone
// are enough to run the server.
func LoadConfig(path string) (config Config, err error) {
	// .env is optional; it feeds the BindEnv lookups below.
	_ = godotenv.Load()

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("postgres.host", "POSTGRES_HOST")
	viper.BindEnv("postgres.port", "POSTGRES_PORT")
	viper.BindEnv("postgres.user", "POSTGRES_USER")
	viper.BindEnv("postgres.password", "POSTGRES_PASSWORD")
	viper.BindEnv("postgres.dbName", "POSTGRES_DB")
	viper.BindEnv("postgres.sslMode", "POSTGRES_SSLMODE")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("geocoding.provider", "GEOCODING_PROVIDER")
	viper.BindEnv("geocoding.userAgent", "GEOCODING_USER_AGENT")
	viper.BindEnv("geocoding.nominatimBaseURL", "NOMINATIM_BASE_URL")
	viper.BindEnv("geocoding.nominatimDelayMs", "NOMINATIM_DELAY_MS")
	viper.BindEnv("geocoding.censusBaseURL", "CENSUS_BASE_URL")
	viper.BindEnv("geocoding.mapboxToken", "MAPBOX_TOKEN")
	viper.BindEnv("geocoding.batchLimit", "GEOCODING_BATCH_LIMIT")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")

	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.allowedOrigins", []string{"*"})
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.user", "raildir")
	viper.SetDefault("postgres.dbName", "raildir")
	viper.SetDefault("postgres.sslMode", "disable")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("geocoding.provider", "nominatim")
	viper.SetDefault("geocoding.userAgent", "railfreight-directory/1.0")
	viper.SetDefault("geocoding.nominatimBaseURL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("geocoding.nominatimDelayMs", 1100)
	viper.SetDefault("geocoding.censusBaseURL", "https://geocoding.geo.census.gov")
	viper.SetDefault("geocoding.batchLimit", 500)
}
