package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	Trading         TradingConfig        `mapstructure:"trading"`
	AWS             AWSConfig            `mapstructure:"aws"`
}

type ServiceConfig struct {
	Port string `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type ExternalClientConfig struct {
	StockQuote StockQuoteConfig `mapstructure:"stockQuote"`
}

type StockQuoteConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
	// APIKeySecret, when set, names an AWS Secrets Manager secret holding
	// the API key and takes precedence over APIKey.
	APIKeySecret string `mapstructure:"apiKeySecret"`
}

type AuthConfig struct {
	Secret       string `mapstructure:"secret"`
	TokenTTLMins int    `mapstructure:"tokenTtlMinutes"`
}

type TradingConfig struct {
	// InitialCash is the cash balance granted to newly registered users.
	InitialCash string `mapstructure:"initialCash"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// LoadConfig reads settings/appsettings.yaml, or appsettings.{env}.yaml when
// env is non-empty.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	configName := "appsettings"
	if env != "" {
		configName = fmt.Sprintf("appsettings.%s", env)
	}

	viper.AddConfigPath(path)
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
