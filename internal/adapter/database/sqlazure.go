package database

import (
	"fmt"

	"github.com/semmidev/azwebapp/internal/config"
	"github.com/semmidev/azwebapp/internal/domain"
)

type SQLAzureDatabase struct {
	config *config.DatabaseConfig
}

func NewSQLAzure(cfg *config.DatabaseConfig) *SQLAzureDatabase {
	return &SQLAzureDatabase{config: cfg}
}

func (s *SQLAzureDatabase) ConnectionString() string {
	return keyValue(
		"Server", fmt.Sprintf("tcp:%s,%d", s.config.Host, portOrDefault(s.config.Port, 1433)),
		"Initial Catalog", databaseName(s.config),
		"User ID", s.config.Username,
		"Password", s.config.Password,
		"Encrypt", "True",
		"TrustServerCertificate", "False",
		"Connection Timeout", "30",
	)
}

func (s *SQLAzureDatabase) GetName() string {
	return s.config.Name
}

func (s *SQLAzureDatabase) GetType() string {
	return domain.DatabaseTypeSQLAzure
}
