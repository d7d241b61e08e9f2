package logger

// Environment names a deployment stage and selects logging defaults.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// ParseEnvironment maps common spellings to an Environment.
// Unknown values fall back to Development.
func ParseEnvironment(s string) Environment {
	switch s {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}
