package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	JWTSecret string
	// AnswerKeyFile is the versioned data file holding the secret grading
	// records, loaded once at startup.
	AnswerKeyFile string
	// LegalDocsDir is served read-only under /legal (terms, privacy policy).
	LegalDocsDir string
	GinMode      string
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ANSWER_KEY_FILE", "data/answer_keys.json")
	viper.SetDefault("LEGAL_DOCS_DIR", "static/legal")
	viper.SetDefault("GIN_MODE", "debug")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWTSecret = viper.GetString("JWT_SECRET")
	config.AnswerKeyFile = viper.GetString("ANSWER_KEY_FILE")
	config.LegalDocsDir = viper.GetString("LEGAL_DOCS_DIR")
	config.GinMode = viper.GetString("GIN_MODE")

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	// The secret and database password stay out of the startup log.
	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Str("answerKeyFile", config.AnswerKeyFile).
		Msg("Config loaded")
	return &config, nil
}
