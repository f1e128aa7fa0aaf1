package database

import (
	"strconv"

	"github.com/semmidev/azwebapp/internal/config"
	"github.com/semmidev/azwebapp/internal/domain"
)

type PostgreSQLDatabase struct {
	config *config.DatabaseConfig
}

func NewPostgreSQL(cfg *config.DatabaseConfig) *PostgreSQLDatabase {
	return &PostgreSQLDatabase{config: cfg}
}

func (p *PostgreSQLDatabase) ConnectionString() string {
	sslMode := p.config.SSLMode
	if sslMode == "" {
		sslMode = "Require"
	}

	return keyValue(
		"Server", p.config.Host,
		"Port", strconv.Itoa(portOrDefault(p.config.Port, 5432)),
		"Database", databaseName(p.config),
		"User Id", p.config.Username,
		"Password", p.config.Password,
		"Ssl Mode", sslMode,
	)
}

func (p *PostgreSQLDatabase) GetName() string {
	return p.config.Name
}

func (p *PostgreSQLDatabase) GetType() string {
	return domain.DatabaseTypePostgreSQL
}
