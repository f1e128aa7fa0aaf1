package database

import (
	"strings"

	"github.com/semmidev/azwebapp/internal/config"
	"github.com/semmidev/azwebapp/internal/domain"
)

// Database turns a configured database into the setting App Service needs to
// include it in a site backup.
type Database interface {
	GetName() string
	GetType() string
	ConnectionString() string
}

// New picks the connection string builder for cfg.Type. Types App Service
// may add later fall back to a pass-through of the configured string.
func New(cfg *config.DatabaseConfig) Database {
	if cfg.ConnectionString != "" || cfg.Host == "" {
		return &passthrough{config: cfg}
	}

	switch cfg.Type {
	case domain.DatabaseTypeSQLAzure:
		return NewSQLAzure(cfg)
	case domain.DatabaseTypeMySQL, domain.DatabaseTypeLocalMySQL:
		return NewMySQL(cfg)
	case domain.DatabaseTypePostgreSQL:
		return NewPostgreSQL(cfg)
	default:
		return &passthrough{config: cfg}
	}
}

// Settings converts configured databases in order. It returns nil for an
// empty list so that no databases key is sent.
func Settings(cfgs []config.DatabaseConfig) []domain.DatabaseBackupSetting {
	if len(cfgs) == 0 {
		return nil
	}

	settings := make([]domain.DatabaseBackupSetting, 0, len(cfgs))
	for i := range cfgs {
		db := New(&cfgs[i])
		settings = append(settings, domain.DatabaseBackupSetting{
			DatabaseType:         db.GetType(),
			Name:                 db.GetName(),
			ConnectionStringName: cfgs[i].ConnectionStringName,
			ConnectionString:     db.ConnectionString(),
		})
	}

	return settings
}

type passthrough struct {
	config *config.DatabaseConfig
}

func (p *passthrough) GetName() string          { return p.config.Name }
func (p *passthrough) GetType() string          { return p.config.Type }
func (p *passthrough) ConnectionString() string { return p.config.ConnectionString }

func portOrDefault(port, def int) int {
	if port == 0 {
		return def
	}
	return port
}

func databaseName(cfg *config.DatabaseConfig) string {
	if cfg.Database != "" {
		return cfg.Database
	}
	return cfg.Name
}

// keyValue renders "Key=Value;" pairs, skipping empty values.
func keyValue(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		b.WriteString(pairs[i])
		b.WriteByte('=')
		b.WriteString(pairs[i+1])
		b.WriteByte(';')
	}
	return b.String()
}
