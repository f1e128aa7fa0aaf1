package database

import (
	"strconv"

	"github.com/semmidev/azwebapp/internal/config"
)

type MySQLDatabase struct {
	config *config.DatabaseConfig
}

func NewMySQL(cfg *config.DatabaseConfig) *MySQLDatabase {
	return &MySQLDatabase{config: cfg}
}

func (m *MySQLDatabase) ConnectionString() string {
	return keyValue(
		"Database", databaseName(m.config),
		"Data Source", m.config.Host,
		"Port", strconv.Itoa(portOrDefault(m.config.Port, 3306)),
		"User Id", m.config.Username,
		"Password", m.config.Password,
	)
}

func (m *MySQLDatabase) GetName() string {
	return m.config.Name
}

// GetType keeps LocalMySql apart from MySql; the service treats them differently.
func (m *MySQLDatabase) GetType() string {
	return m.config.Type
}
