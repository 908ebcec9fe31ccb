package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体，进程启动时构建一次并注入各模块
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Upload    UploadConfig    `mapstructure:"upload"`
	OSS       OSSConfig       `mapstructure:"oss"`
	TagLookup TagLookupConfig `mapstructure:"tag_lookup"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	LogLevel    string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	Algorithm     string `mapstructure:"algorithm"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
	CookieName    string `mapstructure:"cookie_name"`
	CookieSecure  bool   `mapstructure:"cookie_secure"`
}

// TTL token 有效期
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type UploadConfig struct {
	Driver    string `mapstructure:"driver"` // local | oss
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
}

type TagLookupConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	Language       string `mapstructure:"language"`
	Limit          int    `mapstructure:"limit"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

// Timeout 外部标签查询超时
func (t TagLookupConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

var supportedAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

// Validate 验证配置，缺少必填项时进程应直接退出
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("SECRET_KEY environment variable is not set")
	}
	if !supportedAlgorithms[c.JWT.Algorithm] {
		return fmt.Errorf("unsupported signing algorithm %q", c.JWT.Algorithm)
	}
	if c.JWT.ExpireMinutes <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.Upload.Driver {
	case "local":
		if c.Upload.Dir == "" {
			return errors.New("upload dir is required for the local driver")
		}
	case "oss":
		if c.OSS.Endpoint == "" || c.OSS.BucketName == "" {
			return errors.New("oss endpoint and bucket are required for the oss driver")
		}
	default:
		return fmt.Errorf("unknown upload driver %q", c.Upload.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.expire_minutes", 30)
	v.SetDefault("jwt.cookie_name", "access_token")
	v.SetDefault("jwt.cookie_secure", false)
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("upload.driver", "local")
	v.SetDefault("upload.dir", "static")
	v.SetDefault("upload.url_prefix", "/static")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("tag_lookup.endpoint", "https://www.wikidata.org/w/api.php")
	v.SetDefault("tag_lookup.language", "en")
	v.SetDefault("tag_lookup.limit", 10)
	v.SetDefault("tag_lookup.timeout_seconds", 5)
	v.SetDefault("tag_lookup.user_agent", "catalog-api/1.0")
	v.SetDefault("ratelimit.rps", 20)
	v.SetDefault("ratelimit.burst", 40)
}

// 环境变量名沿用部署脚本中已有的名字，第一个存在的生效
var envBindings = map[string][]string{
	"server.port":                {"PORT", "SERVER_PORT"},
	"server.mode":                {"GIN_MODE", "SERVER_MODE"},
	"database.url":               {"DATABASE_URL"},
	"database.auto_migrate":      {"DATABASE_AUTO_MIGRATE"},
	"database.log_level":         {"DATABASE_LOG_LEVEL"},
	"redis.addr":                 {"REDIS_ADDR"},
	"redis.password":             {"REDIS_PASSWORD"},
	"redis.db":                   {"REDIS_DB"},
	"jwt.secret":                 {"SECRET_KEY", "JWT_SECRET"},
	"jwt.algorithm":              {"ALGORITHM", "JWT_ALGORITHM"},
	"jwt.expire_minutes":         {"ACCESS_TOKEN_EXPIRE_MINUTES"},
	"jwt.cookie_name":            {"AUTH_COOKIE_NAME"},
	"jwt.cookie_secure":          {"AUTH_COOKIE_SECURE"},
	"app.env":                    {"APP_ENV"},
	"log.level":                  {"LOG_LEVEL"},
	"cors.allowed_origins":       {"CORS_ALLOWED_ORIGINS"},
	"upload.driver":              {"UPLOAD_DRIVER"},
	"upload.dir":                 {"UPLOAD_DIR"},
	"upload.url_prefix":          {"UPLOAD_URL_PREFIX"},
	"upload.max_size_mb":         {"UPLOAD_MAX_SIZE_MB"},
	"oss.endpoint":               {"OSS_ENDPOINT"},
	"oss.access_key_id":          {"OSS_ACCESS_KEY_ID"},
	"oss.access_key_secret":      {"OSS_ACCESS_KEY_SECRET"},
	"oss.bucket_name":            {"OSS_BUCKET_NAME"},
	"tag_lookup.endpoint":        {"TAG_LOOKUP_ENDPOINT"},
	"tag_lookup.language":        {"TAG_LOOKUP_LANGUAGE"},
	"tag_lookup.limit":           {"TAG_LOOKUP_LIMIT"},
	"tag_lookup.timeout_seconds": {"TAG_LOOKUP_TIMEOUT_SECONDS"},
	"tag_lookup.user_agent":      {"TAG_LOOKUP_USER_AGENT"},
	"ratelimit.rps":              {"RATELIMIT_RPS"},
	"ratelimit.burst":            {"RATELIMIT_BURST"},
}

// LoadConfig 加载配置：默认值 < 配置文件 < 环境变量
func LoadConfig() (*Config, error) {
	env := os.Getenv("APP_ENV")

	// 根据环境选择配置文件
	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
