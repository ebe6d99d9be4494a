package cli

import (
	"github.com/shibukawa/planexplain"
)

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*planexplain.Config, error) {
	return planexplain.LoadConfig(configPath)
}
