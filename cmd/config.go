package cmd

import (
	"fmt"
	"strconv"
	"time"
)

// Config carries the runtime settings of the fulfillment service.
type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	DeliveryWindowMinutes string
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// DeliveryWindow parses the configured delivery window. A missing or
// malformed value falls back to zero, which the assigner replaces with its
// default.
func (c Config) DeliveryWindow() time.Duration {
	minutes, err := strconv.Atoi(c.DeliveryWindowMinutes)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
