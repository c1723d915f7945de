package ioc

import (
	"github.com/KNICEX/signal-tracker/internal/service/notification"
	"github.com/spf13/viper"
)

type TelegramConfig struct {
	BotToken  string  `mapstructure:"bot_token"`
	ChannelId string  `mapstructure:"channel_id"`
	AdminIds  []int64 `mapstructure:"admin_ids"`
}

func InitTelegramConfig() TelegramConfig {
	var cfg TelegramConfig
	if err := viper.UnmarshalKey("telegram", &cfg); err != nil {
		panic(err)
	}
	if cfg.BotToken == "" {
		panic("no telegram bot token set")
	}
	if cfg.ChannelId == "" {
		panic("no telegram channel id set")
	}
	return cfg
}

func InitTelegramClient(cfg TelegramConfig) *notification.TelegramClient {
	return notification.NewTelegramClient(cfg.BotToken)
}
