package config

// RepairConfig holds the optional elevated credential used by the
// diagnostic/repair tool. When ServiceDSN is set, the repair path opens a
// dedicated database connection with it instead of the regular pool, so the
// missing-row insert is not subject to the normal connection's role.
type RepairConfig struct {
	ServiceDSN string
}

// LoadRepairConfig loads repair tool configuration from environment variables
func LoadRepairConfig() *RepairConfig {
	return &RepairConfig{
		ServiceDSN: getEnv("REPAIR_SERVICE_DSN", ""),
	}
}
