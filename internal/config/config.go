package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN      string `mapstructure:"dsn"`
		MaxConns int32  `mapstructure:"max_conns"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Storage struct {
		// Driver selects the file store backend: "local" or "cloudinary".
		Driver  string `mapstructure:"driver"`
		BaseDir string `mapstructure:"base_dir"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"storage"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Upload struct {
		MaxThumbKB   int64 `mapstructure:"max_thumb_kb"`
		MaxBannerKB  int64 `mapstructure:"max_banner_kb"`
		MaxTrailerKB int64 `mapstructure:"max_trailer_kb"`
		MaxVideoKB   int64 `mapstructure:"max_video_kb"`
	} `mapstructure:"upload"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("db.max_conns", "DB_MAX_CONNS")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	viper.BindEnv("storage.driver", "STORAGE_DRIVER")
	viper.BindEnv("storage.base_dir", "STORAGE_BASE_DIR")
	viper.BindEnv("storage.base_url", "STORAGE_BASE_URL")
	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	// Uploads hold connections for the whole transactional window, so the
	// pool is sized above pgx's default.
	viper.SetDefault("db.max_conns", 16)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("storage.driver", "local")
	viper.SetDefault("storage.base_dir", "storage/uploads")
	viper.SetDefault("storage.base_url", "http://localhost:8080/storage")

	// Limits mirror the admin frontend's expectations per file kind.
	viper.SetDefault("upload.max_thumb_kb", 5*1024)
	viper.SetDefault("upload.max_banner_kb", 10*1024)
	viper.SetDefault("upload.max_trailer_kb", 1024*1024)
	viper.SetDefault("upload.max_video_kb", 50*1024*1024)

	err = viper.Unmarshal(&cfg)
	return
}
