package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host" validate:"required"`
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	Mode           string   `mapstructure:"mode" validate:"required"`
	BaseURL        string   `mapstructure:"base_url" validate:"omitempty,url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Username        string `mapstructure:"username" validate:"required"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// GtRConfig configures the Gateway to Research client and the import
// pipeline built on top of it.
type GtRConfig struct {
	BaseURL       string              `mapstructure:"base_url" validate:"required,url"`
	Timeout       time.Duration       `mapstructure:"timeout" validate:"required"`
	InternalHost  string              `mapstructure:"internal_host" validate:"required,hostname"`
	PublicHost    string              `mapstructure:"public_host" validate:"required,hostname"`
	UnmappedLog   string              `mapstructure:"unmapped_log"`
	MappingTables MappingTablesConfig `mapstructure:"mapping_tables"`
}

// MappingTablesConfig holds the file paths of the identifier mapping
// tables consulted during reconciliation. A missing file is tolerated
// and yields an empty table.
type MappingTablesConfig struct {
	Organisations string `mapstructure:"organisations"`
	People        string `mapstructure:"people"`
	Topics        string `mapstructure:"topics"`
	Subjects      string `mapstructure:"subjects"`
}
