package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries everything the engine and server need. It is constructed
// once at startup and passed into constructors; nothing reads it as global
// state.
type Config struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Dir         string `mapstructure:"dir"`
		PrettyPrint bool   `mapstructure:"pretty_print"`
	} `mapstructure:"storage"`

	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
}

// LoadConfig reads a YAML config file. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("app_name", "docsql")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.pretty_print", true)
	v.SetDefault("server.addr", "127.0.0.1:8866")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
