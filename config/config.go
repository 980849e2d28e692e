package config

import (
	"github.com/jinzhu/configor"
)

type Config struct {
	AppConfig       AppConfig       `env:"APPCONFIG"`
	AWSConfig       AWSConfig       `env:"AWSCONFIG"`
	QuotaConfig     QuotaConfig     `env:"QUOTACONFIG"`
	DiscoveryConfig DiscoveryConfig `env:"DISCOVERYCONFIG"`
}

type AppConfig struct {
	APPName string `default:"pookiey" env:"APP_NAME"`
	Version string `default:"x.x.x" env:"VERSION"`
	Port    int    `default:"8080" env:"PORT"`
}

type AWSConfig struct {
	Region string `default:"ap-south-1" env:"AWS_REGION"`
}

// QuotaConfig holds the daily interaction allowance per subscription plan.
// A limit of 0 or below means unlimited.
type QuotaConfig struct {
	FreeDailyLimit    int `default:"1" env:"QUOTA_FREE_DAILY_LIMIT"`
	BasicDailyLimit   int `default:"15" env:"QUOTA_BASIC_DAILY_LIMIT"`
	PremiumDailyLimit int `default:"25" env:"QUOTA_PREMIUM_DAILY_LIMIT"`
	SuperDailyLimit   int `default:"30" env:"QUOTA_SUPER_DAILY_LIMIT"`
}

type DiscoveryConfig struct {
	DefaultMaxDistanceKm float64 `default:"50" env:"DISCOVERY_DEFAULT_MAX_DISTANCE_KM"`
	DefaultAgeMin        int     `default:"18" env:"DISCOVERY_DEFAULT_AGE_MIN"`
	DefaultAgeMax        int     `default:"35" env:"DISCOVERY_DEFAULT_AGE_MAX"`
	MinSharedInterests   int     `default:"1" env:"DISCOVERY_MIN_SHARED_INTERESTS"`
	MaxResults           int     `default:"50" env:"DISCOVERY_MAX_RESULTS"`
}

func LoadConfigOrPanic() Config {
	var config = Config{}
	configor.Load(&config, "config/config.dev.json")

	return config
}
