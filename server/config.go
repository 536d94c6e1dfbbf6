package server

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"schedgrid/errors"
	"schedgrid/logger"
	"schedgrid/timetable"
)

var validate = validator.New()

type Config struct {
	Logging LoggingConfig `json:"logging"`
	Server  ServerConfig  `json:"server"`
	Redis   RedisConfig   `json:"redis"`
	Colors  ColorConfig   `json:"colors"`
	Export  ExportConfig  `json:"export"`
}

type LoggingConfig struct {
	UseLogFile bool   `json:"useLogFile"`
	LogDir     string `json:"logDir"`
}

type ServerConfig struct {
	Addr string `json:"addr" validate:"required"`
	// TLS can be turned off here or for a single run with -w.
	TLS  bool   `json:"tls"`
	Cert string `json:"cert"`
	Key  string `json:"key"`
}

type RedisConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr" validate:"required_if=Enabled true"`
	DB      int    `json:"db" validate:"min=0,max=15"`
	// TTL is in seconds.
	TTL int `json:"ttl" validate:"min=0"`
	// AskPassword prompts for the password on the terminal at startup when
	// none was given through the environment.
	AskPassword bool `json:"askPassword"`
	// Password is never written to config.json.
	Password string `json:"-"`
}

type ColorConfig struct {
	Lecture  string `json:"lecture" validate:"len=7,hexcolor"`
	Tutorial string `json:"tutorial" validate:"len=7,hexcolor"`
}

type ExportConfig struct {
	Padding    int     `json:"padding" validate:"min=0,max=500"`
	PixelRatio float64 `json:"pixelRatio" validate:"gt=0,lte=4"`
}

// Style returns the configured default colours.
func (c ColorConfig) Style() timetable.Style {
	return timetable.Style{Lecture: c.Lecture, Tutorial: c.Tutorial}
}

func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			UseLogFile: false,
			LogDir:     "logs",
		},
		Server: ServerConfig{
			Addr: "localhost:8080",
			TLS:  true,
			Cert: "cert.pem",
			Key:  "key.pem",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  86400,
		},
		Colors: ColorConfig{
			Lecture:  timetable.DefaultStyle.Lecture,
			Tutorial: timetable.DefaultStyle.Tutorial,
		},
		Export: ExportConfig{
			Padding:    50,
			PixelRatio: 2,
		},
	}
}

// LoadConfig reads config.json at cfgPath on top of the defaults, then
// writes the merged result back so that every setting is visible in the
// file. A missing file is created.
func LoadConfig(cfgPath string) (Config, error) {
	cfg := DefaultConfig()

	jsonFile, err := os.OpenFile(cfgPath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return cfg, errors.NewError("server.LoadConfig", "failed to open config.json", err)
	}
	b, err := io.ReadAll(jsonFile)
	jsonFile.Close()
	if err != nil {
		return cfg, errors.NewError("server.LoadConfig", "failed to read config.json", err)
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, &cfg); err != nil {
			return DefaultConfig(), errors.NewError("server.LoadConfig", "failed to unmarshal config.json", err)
		}
	} else {
		logger.Info("Using default configuration settings. These can be edited in %s", cfgPath)
	}

	if err := validate.Struct(cfg); err != nil {
		return DefaultConfig(), errors.NewError("server.LoadConfig", "invalid config.json", err)
	}

	rawJson, err := json.MarshalIndent(cfg, "", "\t")
	if err != nil {
		return cfg, errors.NewError("server.LoadConfig", "failed to marshal config.json", err)
	}
	if err := os.WriteFile(cfgPath, append(rawJson, '\n'), 0644); err != nil {
		return cfg, errors.NewError("server.LoadConfig", "failed to write to config.json", err)
	}
	return cfg, nil
}

// ApplyEnv loads envFile if it exists and lets the environment override the
// listen address and the Redis connection.
func ApplyEnv(cfg *Config, envFile string) error {
	if err := godotenv.Load(envFile); err == nil {
		logger.Info("Loaded environment from %s", envFile)
	} else if !os.IsNotExist(err) {
		return errors.NewError("server.ApplyEnv", "cannot read "+envFile, err)
	}

	if v := os.Getenv("SCHEDGRID_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SCHEDGRID_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("SCHEDGRID_REDIS_DB"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewError("server.ApplyEnv", "SCHEDGRID_REDIS_DB is not a number", err)
		}
		cfg.Redis.DB = idx
	}
	if v, ok := os.LookupEnv("SCHEDGRID_REDIS_PASSWORD"); ok {
		cfg.Redis.Password = v
	}
	return nil
}
