package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"fooddelivery/internal/adapters/in/realtime"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	JWTTTL    time.Duration

	KafkaHost              string
	KafkaOrderChangedTopic string

	DispatchTimePolicy    string
	PartnerCommissionRate decimal.Decimal
	ReconcileSchedule     string
	WSSendBuffer          int
}

// DSN is the gorm/pgx connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading .env when it exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "fooddelivery")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.changed")
	v.SetDefault("DISPATCH_TIME_POLICY", "freeze")
	v.SetDefault("PARTNER_COMMISSION_RATE", queries.DefaultCommissionRate.String())
	v.SetDefault("RECONCILE_SCHEDULE", jobs.DefaultReconcileSchedule)
	v.SetDefault("WS_SEND_BUFFER", realtime.DefaultSendBuffer)

	commission, err := decimal.NewFromString(v.GetString("PARTNER_COMMISSION_RATE"))
	if err != nil {
		return Config{}, fmt.Errorf("PARTNER_COMMISSION_RATE: %w", err)
	}
	if commission.IsNegative() || commission.GreaterThan(decimal.NewFromInt(1)) {
		return Config{}, fmt.Errorf("PARTNER_COMMISSION_RATE must be within [0, 1], got %s", commission)
	}

	config := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTTTL:                 v.GetDuration("JWT_TTL"),
		KafkaHost:              v.GetString("KAFKA_HOST"),
		KafkaOrderChangedTopic: v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),
		DispatchTimePolicy:     v.GetString("DISPATCH_TIME_POLICY"),
		PartnerCommissionRate:  commission,
		ReconcileSchedule:      v.GetString("RECONCILE_SCHEDULE"),
		WSSendBuffer:           v.GetInt("WS_SEND_BUFFER"),
	}
	if config.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be a positive duration, got %q", v.GetString("JWT_TTL"))
	}
	return config, nil
}
