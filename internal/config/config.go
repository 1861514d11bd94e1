package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/infinitybotlist/infernoplex/internal/config/hook"
)

type Config struct {
	Discord struct {
		Auth  string
		AppID string
	}

	Storage struct {
		PostgresDSN string
	}

	Site struct {
		FrontendURL string
	}

	CDN struct {
		MainScopePath string
	}

	Logging struct {
		Level zapcore.Level
	}

	Api struct {
		Port uint16
	}
}

func Read() (*Config, error) {
	v := viper.New()
	configureEnv(v)
	configureLocation(v)
	return readUnmarshalConfig(v)
}

func configureEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvPrefix("conf")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func configureLocation(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
}

func readUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	c := &Config{}
	if err := v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		hook.Level(),
	))); err != nil {
		return nil, err
	}
	return c, nil
}
