package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Ingestion   IngestionConfig   `mapstructure:"ingestion" validate:"required"`
	Appender    AppenderConfig    `mapstructure:"appender" validate:"required"`
	Dashboard   DashboardConfig   `mapstructure:"dashboard" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host              string `mapstructure:"host" validate:"omitempty,hostname_rfc1123|ip"` // empty binds all interfaces
	Port              int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int    `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int    `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int    `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int    `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
// RootDir is the output folder holding one <tag>.jsonl file per tag.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// IngestionConfig holds record ingestion configuration.
type IngestionConfig struct {
	MaxBodyBytes int `mapstructure:"max_body_bytes" validate:"required,min=1,max=10485760"`
}

// AppenderConfig sizes the per-tag append lanes.
type AppenderConfig struct {
	Partitions int `mapstructure:"partitions" validate:"required,min=1,max=256"`
	Buffer     int `mapstructure:"buffer" validate:"required,min=1"`
}

// DashboardConfig holds the dashboard page and the logs it may read back.
type DashboardConfig struct {
	PageFile string   `mapstructure:"page_file" validate:"required"`
	LogNames []string `mapstructure:"log_names" validate:"dive,tagname"`
}
