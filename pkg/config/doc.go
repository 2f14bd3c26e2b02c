// Package config loads env-tagged configuration structs, backed by a
// one-time .env load for local development.
//
//	type AppConfig struct {
//		Mongo mongo.Config
//		Redis redis.Config
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Each infrastructure package declares its own Config with `env` tags
// and defaults; this package only does the parsing.
package config
