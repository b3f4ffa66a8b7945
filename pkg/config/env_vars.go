package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "CONFIGURATOR"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "CONFIGURATOR_APP_ENV"
	EnvAppPort = "CONFIGURATOR_APP_PORT"

	EnvDBDSN  = "CONFIGURATOR_DB_DSN"
	EnvDBHost = "CONFIGURATOR_DB_HOST"
	EnvDBUser = "CONFIGURATOR_DB_USER"
	EnvDBName = "CONFIGURATOR_DB_NAME"

	EnvRedisURL = "CONFIGURATOR_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
