package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type SimulationConfig struct {
	Seed           int64          `mapstructure:"seed"`
	OpenHour       float64        `mapstructure:"open_hour"`
	CloseHour      float64        `mapstructure:"close_hour"`
	TickInterval   time.Duration  `mapstructure:"tick_interval"`
	MinutesPerTick float64        `mapstructure:"minutes_per_tick"`
	MaxQueueLength int            `mapstructure:"max_queue_length"`
	ServiceChance  float64        `mapstructure:"service_chance"`
	Speed          int            `mapstructure:"speed"`
	Days           int            `mapstructure:"days"`
	Location       string         `mapstructure:"location"`
	StartingMoney  int64          `mapstructure:"starting_money"`
	EventLogSize   int            `mapstructure:"event_log_size"`
	Inventory      map[string]int `mapstructure:"inventory"`
}

type KafkaConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	BrokerList string `mapstructure:"broker_list"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CloudStorageConfig struct {
	Provider string `mapstructure:"provider"`
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
}

type OutputConfig struct {
	Destination  string             `mapstructure:"destination"` // local or cloud
	Format       string             `mapstructure:"format"`      // console, json, parquet
	Path         string             `mapstructure:"path"`
	Folder       string             `mapstructure:"folder"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Output     OutputConfig     `mapstructure:"output"`
	GameID     string           `mapstructure:"game_id"`
	PlayerID   string           `mapstructure:"player_id"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// config file is optional; defaults and flags are enough to run
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Simulation.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("simulation.seed", 42)
	viper.SetDefault("simulation.open_hour", 6.0)
	viper.SetDefault("simulation.close_hour", 18.0)
	viper.SetDefault("simulation.tick_interval", 80*time.Millisecond)
	viper.SetDefault("simulation.minutes_per_tick", 1.0)
	viper.SetDefault("simulation.max_queue_length", 6)
	viper.SetDefault("simulation.service_chance", 0.08)
	viper.SetDefault("simulation.speed", 1)
	viper.SetDefault("simulation.days", 1)
	viper.SetDefault("simulation.location", "ucr")
	viper.SetDefault("simulation.starting_money", 18500)
	viper.SetDefault("simulation.event_log_size", 15)
	viper.SetDefault("simulation.inventory", map[string]int{
		"gallo_pinto": 8,
		"empanada":    15,
		"agua_dulce":  20,
	})
	viper.SetDefault("output.destination", "local")
	viper.SetDefault("output.format", "console")
}

func (sc *SimulationConfig) Validate() error {
	if sc.CloseHour <= sc.OpenHour {
		return fmt.Errorf("close_hour %.2f must be after open_hour %.2f", sc.CloseHour, sc.OpenHour)
	}
	if sc.MaxQueueLength <= 0 {
		return fmt.Errorf("max_queue_length must be positive, got %d", sc.MaxQueueLength)
	}
	if sc.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", sc.TickInterval)
	}
	if sc.ServiceChance < 0 || sc.ServiceChance > 1 {
		return fmt.Errorf("service_chance must be in [0,1], got %f", sc.ServiceChance)
	}
	return nil
}

// ConnectionString assembles the pgx DSN from the configured parts.
func (dc *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dc.Host, dc.Port, dc.User, dc.Password, dc.DBName, dc.SSLMode,
	)
}
