package config

// EnvPrefix is passed to envconfig; variable names carry the full
// TARIFFSHERIFF_ prefix in their tags, so the prefix itself stays empty.
const EnvPrefix = ""

const (
	AppEnvDev     = "development"
	AppEnvStaging = "staging"
	AppEnvProd    = "production"
)

// Environment variable names used by tests and tooling.
const (
	EnvAppEnv   = "TARIFFSHERIFF_APP_ENV"
	EnvPort     = "TARIFFSHERIFF_APP_PORT"
	EnvDBDSN    = "TARIFFSHERIFF_DB_DSN"
	EnvRedisURL = "TARIFFSHERIFF_REDIS_URL"
)
