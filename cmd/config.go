package main

import "time"

type Config struct {
	BotToken       string `env:"BOT_TOKEN,required=true"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	OwnerID        int64  `env:"OWNER_ID,required=true" validate:"gt=0"`
	LoginUsername  string `env:"LOGIN_USERNAME,required=true" validate:"min=1"`
	LoginPassword  string `env:"LOGIN_PASSWORD,required=true" validate:"min=1"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`

	SessionTTL        time.Duration `env:"SESSION_TTL,default=24h" validate:"gt=0"`
	SendTimeout       time.Duration `env:"SEND_TIMEOUT,default=5s" validate:"gt=0"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=1m"`

	SupportURL string `env:"SUPPORT_URL,default=https://t.me/KnightsXBotsupport" validate:"url"`
	UpdatesURL string `env:"UPDATES_URL,default=https://t.me/KnightsXbots" validate:"url"`

	CensoredWords string `env:"CENSORED_WORDS"` // comma-separated, empty disables moderation
	CensoredChar  string `env:"CENSORED_CHAR,default=*"`
}
