package config

import (
	"catalog-backend/models"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

// Env holds the secrets that must come from the environment. Their absence
// is a startup misconfiguration, so LoadEnv fails instead of defaulting.
type Env struct {
	JWTSecret   string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
}

func LoadConfig(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}

	if config.Server.Port == "" {
		config.Server.Port = "3000"
	}

	return config, nil
}

func LoadEnv() (Env, error) {
	// A missing .env file is fine as long as the variables are set.
	_ = godotenv.Load()

	env := Env{
		JWTSecret:   os.Getenv("JWT_SECRET"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3UseSSL:    os.Getenv("S3_USE_SSL") == "true",
	}

	for name, value := range map[string]string{
		"JWT_SECRET":    env.JWTSecret,
		"S3_ENDPOINT":   env.S3Endpoint,
		"S3_ACCESS_KEY": env.S3AccessKey,
		"S3_SECRET_KEY": env.S3SecretKey,
		"S3_BUCKET":     env.S3Bucket,
	} {
		if value == "" {
			return env, fmt.Errorf("environment variable %s is not set", name)
		}
	}

	return env, nil
}

func SetupMySQLConnection(configPath string) (*gorm.DB, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Database.Username,
		config.Database.Password,
		config.Database.Host,
		config.Database.Port,
		config.Database.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
