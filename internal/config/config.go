package config

import "time"

type BackendConfig struct {
	BaseUrl string        `yaml:"baseUrl" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
}

type AuthConfig struct {
	// Password protects the dashboard when set.
	Password  string        `yaml:"password"`
	JwtSecret string        `yaml:"jwtSecret" validate:"required_with=Password"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
}

type DBConfig struct {
	// Driver is mysql or sqlite. An empty DSN disables the activity log.
	Driver       string `yaml:"driver" validate:"oneof=mysql sqlite"`
	DSN          string `yaml:"dsn"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
	MaxLifetime  int    `yaml:"maxLifetime"`
}

type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket" validate:"required_if=Enabled true"`
	Endpoint        string `yaml:"endpoint" validate:"required_if=Enabled true"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
}

type ChartConfig struct {
	Width  int `yaml:"width" validate:"min=100,max=4096"`
	Height int `yaml:"height" validate:"min=100,max=4096"`
}

type Config struct {
	Addr    string        `yaml:"addr" validate:"required"`
	SSLCert string        `yaml:"sslCert"`
	SSLKey  string        `yaml:"sslKey"`
	Backend BackendConfig `yaml:"backend"`
	Auth    AuthConfig    `yaml:"auth"`
	DB      DBConfig      `yaml:"db"`
	S3      S3Config      `yaml:"s3"`
	Chart   ChartConfig   `yaml:"chart"`
}

func DefaultConfig() *Config {
	return &Config{
		Addr: "127.0.0.1:8081",
		Backend: BackendConfig{
			BaseUrl: "http://127.0.0.1:8000",
			Timeout: 30 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		DB: DBConfig{
			Driver:       "sqlite",
			MaxIdleConns: 10,
			MaxOpenConns: 100,
			MaxLifetime:  60,
		},
		S3: S3Config{
			Bucket:   "feedbackdash",
			Endpoint: "127.0.0.1:9000",
			UseSSL:   false,
			Region:   "us-east-1",
			Prefix:   "exports",
		},
		Chart: ChartConfig{
			Width:  640,
			Height: 480,
		},
	}
}
