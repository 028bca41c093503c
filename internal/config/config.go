package config

type Config interface {
	EnvConfig
	DatabaseConfig
	MailConfig
	SecurityConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAppURL() string
	GetEnv() string
}

type DatabaseConfig interface {
	GetDatabaseDSN() string
}

type MailConfig interface {
	GetSmtpHost() string
	GetSmtpPort() int
	GetSmtpAccount() string
	GetSmtpPassword() string
	GetMailSender() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Database
	Mail
	Security
	Cors
}

func New() Config {
	return mainConfig{}
}
