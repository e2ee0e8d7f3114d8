package logger

import (
	"log/slog"
	"os"
	"strings"
)

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

func DetectEnv() Env {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case "prod", "production":
		return EnvProd
	default:
		return EnvDev
	}
}

type Backend string

const (
	BackendStd Backend = "std" // текстовый slog-handler
	BackendZap Backend = "zap" // JSON через slog-zap, с sampling
)

type Config struct {
	// Метаданные, приклеиваемые к каждой записи
	Service    string
	Version    string
	InstanceID string

	// Управление выводом
	Level   slog.Level
	Env     Env
	Backend Backend // default: zap в prod, std в dev
	Debug   bool

	// AddSource в dev
	AddSource bool
}
