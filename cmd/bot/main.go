package main

import (
	"wallpapermod/internal/app/bot"
	"wallpapermod/internal/config"

	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()

	cfg, err := config.MustLoad()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to load config")
	}

	botApp, err := bot.NewBot(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Str("subreddit", cfg.Reddit.Subreddit).Msg("Failed to start bot")
	}

	if err := botApp.Run(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Bot failed")
	}
}
