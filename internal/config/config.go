package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Worker  WorkerConfig  `yaml:"worker"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type StorageConfig struct {
	Type string `yaml:"type"` // "postgres", "file" или "inmemory"
	Path string `yaml:"path"` // каталог данных для файлового хранилища
	URL  string `yaml:"url"`  // строка подключения postgres
}

type WorkerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Storage: StorageConfig{
			Type: "file",
			Path: "data",
		},
		Worker: WorkerConfig{
			Interval: time.Minute,
		},
		Logging: LoggingConfig{
			Development: true,
		},
	}
}

// Load читает config.yml поверх значений по умолчанию.
// Отсутствие файла ошибкой не считается - приложение стартует с дефолтами.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}

	if cfg.Worker.Interval <= 0 {
		cfg.Worker.Interval = time.Minute
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
