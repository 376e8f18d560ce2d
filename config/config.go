// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers = []string{"sqlite", "postgres"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("auth.jwt_secret", "auth_jwt_secret")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("upload.max_size", "upload_max_size")
	v.BindEnv("upload.timeout", "upload_timeout")
	v.BindEnv("upload.rate_limit", "upload_rate_limit")
	v.BindEnv("upload.rate_burst", "upload_rate_burst")

	v.BindEnv("cloudinary.cloud_name", "cloudinary_cloud_name")
	v.BindEnv("cloudinary.api_key", "cloudinary_api_key")
	v.BindEnv("cloudinary.api_secret", "cloudinary_api_secret")
	v.BindEnv("cloudinary.video_folder", "cloudinary_video_folder")
	v.BindEnv("cloudinary.image_folder", "cloudinary_image_folder")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "videos.db")

	// Max video size in MiB. Shifted into bytes at the end of setup
	v.SetDefault("upload.max_size", 70)
	v.SetDefault("upload.timeout", 30)
	v.SetDefault("upload.rate_limit", 1)
	v.SetDefault("upload.rate_burst", 3)

	v.SetDefault("cloudinary.video_folder", "video-uploads")
	v.SetDefault("cloudinary.image_folder", "image-uploads")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		// Not having a config.toml is fine as long as the required
		// values come in through the environment
		zap.L().Debug("No config.toml found, relying on environment variables")
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("auth.jwt_secret") == "" {
		return errors.New("auth.jwt_secret can't be empty")
	}

	if !slices.Contains(validDBDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("database.dsn can't be empty")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("upload.timeout") <= 0 {
		return errors.New("upload.timeout must be bigger than 0")
	}

	if v.GetString("cloudinary.cloud_name") == "" {
		return errors.New("cloudinary cloud name can't be empty")
	}
	if v.GetString("cloudinary.api_key") == "" {
		return errors.New("cloudinary api key can't be empty")
	}
	if v.GetString("cloudinary.api_secret") == "" {
		return errors.New("cloudinary api secret can't be empty")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
