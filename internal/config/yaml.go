package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const envPrefix = "FEEDBACKDASH_"

// LoadYAMLConfig load config from filename in YAML format
func LoadYAMLConfig(filename string, cfg interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("ReadFile: %w", err)
	}
	err = yaml.Unmarshal(data, cfg)
	return err
}

// InitConfig layers, in order: defaults, the YAML file, a .env file in the
// working directory and FEEDBACKDASH_* environment variables. A missing
// config file is only an error when mustExist is set.
func InitConfig(configPath string, mustExist bool) (*Config, error) {
	conf := DefaultConfig()

	err := LoadYAMLConfig(configPath, conf)
	if err != nil {
		if mustExist || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logrus.Warnf("config file %s not found, using defaults", configPath)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(conf)

	if err := Validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func applyEnv(conf *Config) {
	strVars := map[string]*string{
		"ADDR":             &conf.Addr,
		"BACKEND_URL":      &conf.Backend.BaseUrl,
		"AUTH_PASSWORD":    &conf.Auth.Password,
		"AUTH_JWT_SECRET":  &conf.Auth.JwtSecret,
		"DB_DRIVER":        &conf.DB.Driver,
		"DB_DSN":           &conf.DB.DSN,
		"S3_BUCKET":        &conf.S3.Bucket,
		"S3_ENDPOINT":      &conf.S3.Endpoint,
		"S3_ACCESS_KEY_ID": &conf.S3.AccessKeyID,
		"S3_SECRET_KEY":    &conf.S3.SecretAccessKey,
	}
	for name, dst := range strVars {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "S3_ENABLED"); ok {
		conf.S3.Enabled = v == "1" || v == "true"
	}
}

var validate = validator.New()

func Validate(conf *Config) error {
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
