package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Mongo stores document store connection settings.
type Mongo struct {
	URI      string
	Database string
}

// Config stores parcelhub service settings.
type Config struct {
	Port             int
	Mongo            Mongo
	OperationTimeout time.Duration
	FirebaseCredFile string
	StripeKey        string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:             defaultPort,
		Mongo:            DefaultMongo(),
		OperationTimeout: defaultOperationTimeout,
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		cfg.Mongo.Database = v
	}
	if v := os.Getenv("OPERATION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OperationTimeout = d
		}
	}
	cfg.FirebaseCredFile = os.Getenv("FIREBASE_CRED_FILE")
	cfg.StripeKey = os.Getenv("PAYMENT_GATEWAY_KEY")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Mongo.URI, "mongo-uri", cfg.Mongo.URI, "MongoDB connection URI")
	pflag.StringVar(&cfg.Mongo.Database, "mongo-db", cfg.Mongo.Database, "MongoDB database name")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("mongo URI is required")
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = defaultOperationTimeout
	}
	return cfg, nil
}
