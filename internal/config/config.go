package config

import (
	"log"
	"os"
)

// Webhook holds the outbound messaging credentials. Passed by value into the
// notify sender at construction; nothing reads these from the environment at
// call time.
type Webhook struct {
	APIURL     string
	InstanceID string
	APIToken   string
	ChatID     string
}

// Configured reports whether enough is present to attempt a send.
func (w Webhook) Configured() bool {
	return w.InstanceID != "" && w.APIToken != "" && w.ChatID != ""
}

type Config struct {
	Port    string
	DBDSN   string
	LogFile string
	Webhook Webhook
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "pedidos.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./pedidos.log"
	}
	apiURL := os.Getenv("WA_API_URL")
	if apiURL == "" {
		apiURL = "https://api.green-api.com"
	}

	cfg := Config{
		Port:    port,
		DBDSN:   dsn,
		LogFile: logFile,
		Webhook: Webhook{
			APIURL:     apiURL,
			InstanceID: os.Getenv("WA_INSTANCE_ID"),
			APIToken:   os.Getenv("WA_API_TOKEN"),
			ChatID:     os.Getenv("WA_CHAT_ID"),
		},
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s WA_CONFIGURED=%v",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.Webhook.Configured())
	return cfg
}
