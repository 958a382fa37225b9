package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// PathEnv переменная окружения с путём к config.toml
const PathEnv = "CONFIG_PATH"

// DefaultPath путь к конфигу, если CONFIG_PATH не задан
const DefaultPath = "config.toml"

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	SellerService SellerServiceConfig `toml:"seller_service"`
	Kafka         KafkaConfig         `toml:"kafka"`
	Deposit       DepositConfig       `toml:"deposit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SellerServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type KafkaConfig struct {
	Enabled  bool     `toml:"enabled"`
	Brokers  []string `toml:"brokers"`
	Topic    string   `toml:"topic"`
	GroupID  string   `toml:"group_id"`
	MinBytes int      `toml:"min_bytes"`
	MaxBytes int      `toml:"max_bytes"`
}

// DepositConfig параметры нормализации сумм и депозитной политики
type DepositConfig struct {
	WeekendDays         []string `toml:"weekend_days"`
	MinChargeMinorUnits int64    `toml:"min_charge_minor_units"`
	MajorUnitsThreshold int64    `toml:"major_units_threshold"`

	NewClientPercentage          int `toml:"new_client_percentage"`
	RepeatCancellationPercentage int `toml:"repeat_cancellation_percentage"`
	RepeatCancellationThreshold  int `toml:"repeat_cancellation_threshold"`
	LowScorePercentage           int `toml:"low_score_percentage"`
	LowScoreThreshold            int `toml:"low_score_threshold"`
	SingleCancellationPercentage int `toml:"single_cancellation_percentage"`
	StandardPercentage           int `toml:"standard_percentage"`
	WeekendPremiumPoints         int `toml:"weekend_premium_points"`
	WeekendFloorPercentage       int `toml:"weekend_floor_percentage"`
}

// Path возвращает путь к конфигу с учётом CONFIG_PATH
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load читает TOML, заполняет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию, поверх неё декодируется файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "deposit_service",
		},
		SellerService: SellerServiceConfig{
			Timeout: 5,
		},
		Kafka: KafkaConfig{
			GroupID:  "deposit-service",
			MinBytes: 1,
			MaxBytes: 10e6,
		},
		Deposit: DepositConfig{
			WeekendDays:                  []string{"saturday", "sunday"},
			MinChargeMinorUnits:          domain.MinChargeMinorUnits,
			MajorUnitsThreshold:          domain.MajorUnitsThreshold,
			NewClientPercentage:          domain.DefaultNewClientPercentage,
			RepeatCancellationPercentage: domain.DefaultRepeatCancellationPercentage,
			RepeatCancellationThreshold:  domain.DefaultRepeatCancellationThreshold,
			LowScorePercentage:           domain.DefaultLowScorePercentage,
			LowScoreThreshold:            domain.DefaultLowScoreThreshold,
			SingleCancellationPercentage: domain.DefaultSingleCancellationPercentage,
			StandardPercentage:           domain.DefaultStandardPercentage,
			WeekendPremiumPoints:         domain.DefaultWeekendPremiumPoints,
			WeekendFloorPercentage:       domain.DefaultWeekendFloorPercentage,
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database.dbname and database.user are required", ErrInvalidConfig)
	}
	if c.SellerService.URL == "" {
		return fmt.Errorf("%w: seller_service.url is required", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka.brokers and kafka.topic are required when kafka is enabled", ErrInvalidConfig)
	}

	if _, err := c.Deposit.WeekendWeekdays(); err != nil {
		return err
	}
	if c.Deposit.MinChargeMinorUnits <= 0 {
		return fmt.Errorf("%w: deposit.min_charge_minor_units must be positive", ErrInvalidConfig)
	}
	if c.Deposit.MajorUnitsThreshold <= 0 {
		return fmt.Errorf("%w: deposit.major_units_threshold must be positive", ErrInvalidConfig)
	}

	percentages := map[string]int{
		"new_client_percentage":          c.Deposit.NewClientPercentage,
		"repeat_cancellation_percentage": c.Deposit.RepeatCancellationPercentage,
		"low_score_percentage":           c.Deposit.LowScorePercentage,
		"single_cancellation_percentage": c.Deposit.SingleCancellationPercentage,
		"standard_percentage":            c.Deposit.StandardPercentage,
		"weekend_premium_points":         c.Deposit.WeekendPremiumPoints,
		"weekend_floor_percentage":       c.Deposit.WeekendFloorPercentage,
		"low_score_threshold":            c.Deposit.LowScoreThreshold,
	}
	for name, value := range percentages {
		if value < domain.MinDepositPercentage || value > domain.MaxDepositPercentage {
			return fmt.Errorf("%w: deposit.%s=%d out of [0, 100]", ErrInvalidConfig, name, value)
		}
	}
	if c.Deposit.RepeatCancellationThreshold < 1 {
		return fmt.Errorf("%w: deposit.repeat_cancellation_threshold must be at least 1", ErrInvalidConfig)
	}

	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekendWeekdays переводит названия дней в time.Weekday
func (d DepositConfig) WeekendWeekdays() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(d.WeekendDays))
	for _, name := range d.WeekendDays {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: deposit.weekend_days: unknown day %q", ErrInvalidConfig, name)
		}
		days = append(days, day)
	}
	return days, nil
}
