package configs

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      App      `yaml:"app"`
	Database Database `yaml:"database"`
	Redis    Redis    `yaml:"redis"`
	JWT      JWT      `yaml:"jwt"`
	Email    Email    `yaml:"email"`
	Judge    Judge    `yaml:"judge"`
	Log      Log      `yaml:"log"`
}

type App struct {
	Name string `yaml:"name"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Redis struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWT struct {
	Secret string `yaml:"secret"`
}

type Email struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	UserName string `yaml:"username"`
	Password string `yaml:"password"`
}

type Judge struct {
	URL     string `yaml:"url"`
	Key     string `yaml:"key"`
	Timeout int    `yaml:"timeout"`
}

type Log struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

var Conf *Config

// Load 读取yaml配置，.env中的敏感项可以覆盖yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	_ = godotenv.Load()
	applyEnv(config)
	Conf = config
	return config, nil
}

func applyEnv(config *Config) {
	if v := os.Getenv("BITCODE_DB_PASSWORD"); v != "" {
		config.Database.Password = v
	}
	if v := os.Getenv("BITCODE_REDIS_PASSWORD"); v != "" {
		config.Redis.Password = v
	}
	if v := os.Getenv("BITCODE_JWT_SECRET"); v != "" {
		config.JWT.Secret = v
	}
	if v := os.Getenv("BITCODE_EMAIL_PASSWORD"); v != "" {
		config.Email.Password = v
	}
	if v := os.Getenv("BITCODE_JUDGE_KEY"); v != "" {
		config.Judge.Key = v
	}
	if v := os.Getenv("BITCODE_APP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.App.Port = port
		}
	}
}
