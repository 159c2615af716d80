package conf

// Environment enumeration
const (
	LocalEnvironmentEnum = "loc"
	DevEnvironmentEnum   = "dev"
	ProdEnvironmentEnum  = "prod"
)

// SystemEnvironmentEnum current environment, set from the command line
var SystemEnvironmentEnum = ProdEnvironmentEnum

// GetYaml get config file path for the current environment
func GetYaml() string {
	switch SystemEnvironmentEnum {
	case LocalEnvironmentEnum:
		return "./conf/config_loc.yaml"
	case DevEnvironmentEnum:
		return "./conf/config_dev.yaml"
	default:
		return "./conf/config.yaml"
	}
}
