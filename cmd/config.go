package main

import (
	"multilingo/infrastructure/http/server"
	"multilingo/internal"
	"multilingo/translator"
)

func serverConfig(config internal.Config) server.Config {
	return server.Config{
		BaseURL:        config.BaseURL,
		MaxBodyBytes:   config.MaxBodyBytes,
		RequestTimeout: config.RequestTimeout,
	}
}

func translatorConfig(config internal.Config) translator.ClientConfig {
	return translator.ClientConfig{
		BaseURL: config.TranslationBaseURL,
		Timeout: config.TranslationTimeout,
		Retries: config.TranslationRetries,
		Backoff: config.TranslationBackoff,
	}
}
