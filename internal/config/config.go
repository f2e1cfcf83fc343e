package config

import (
	"os"
	"strings"
)

const ServiceName = "sword-game-backend"

type APIConfig struct {
	Addr    string
	DataDir string
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() APIConfig {
	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("SWORD_API_ADDR", ":8000")
	}

	return APIConfig{
		Addr:    addr,
		DataDir: envDefault("SWORD_DATA_DIR", "data"),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("SWORD_API_BASE_URL", "http://localhost:8000"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
