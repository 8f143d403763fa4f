package config

import (
	"encoding/json"
	"os"
	"slices"
)

const (
	defaultCryptoAPI = "https://api.coingecko.com/api/v3"
	defaultFiatAPI   = "https://api.exchangerate-api.com/v4/latest/USD"
)

// Config stores bot configuration
type Config struct {
	BotToken string  `json:"bot_token"`
	AdminIDs []int64 `json:"admin_ids"`

	// Rate providers. CryptoAPI is a base URL, FiatAPI is the full
	// latest-rates URL including the base currency.
	CryptoAPI string `json:"crypto_api"`
	FiatAPI   string `json:"fiat_api"`

	// Optional integrations, skipped when empty.
	MongoURI            string `json:"mongo_uri"`
	SheetsCredentials   string `json:"sheets_credentials"`
	SheetsSpreadsheetID string `json:"sheets_spreadsheet_id"`
}

// LoadConfig loads configuration from JSON file
func LoadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	if config.CryptoAPI == "" {
		config.CryptoAPI = defaultCryptoAPI
	}
	if config.FiatAPI == "" {
		config.FiatAPI = defaultFiatAPI
	}

	return &config, nil
}

// IsOperator checks if the user ID is in the admin list
func (c *Config) IsOperator(id int64) bool {
	return slices.Contains(c.AdminIDs, id)
}
