package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MongoURL      string `envconfig:"MONGO_URL" required:"true"`
	MongoDatabase string `envconfig:"MONGO_DB" default:"storefront"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	BraintreeEnv        string `envconfig:"BRAINTREE_ENV" default:"sandbox"`
	BraintreeMerchantID string `envconfig:"BRAINTREE_MERCHANT_ID" required:"true"`
	BraintreePublicKey  string `envconfig:"BRAINTREE_PUBLIC_KEY" required:"true"`
	BraintreePrivateKey string `envconfig:"BRAINTREE_PRIVATE_KEY" required:"true"`
}

// Load reads .env when present, then populates Config from the
// environment. Missing required keys are a startup error, not a
// runtime surprise.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Println("Warning: .env file not found, using environment variables or defaults.")
		} else {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return &cfg, nil
}
