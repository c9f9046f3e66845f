package config

const (
	EnvPrefix = "CHAINFEED"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
