package azure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"
)

const DefaultProfile = "default"

type Config struct {
	// Subscriptions holds every subscription the profile scans. The primary
	// subscription comes first.
	Subscriptions []string
	TenantID      string
	Credentials   *azidentity.AzureCLICredential
}

// LoadConfig reads a profile section from ~/.azure/config. The profile must
// name a primary subscription; an optional comma-separated subscriptions key
// widens the scan.
func LoadConfig(profile string) (*Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("unable to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".azure", "config")
	cfg, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found in Azure config: %w", profile, err)
	}

	primary := section.Key("subscription").String()
	if primary == "" {
		return nil, fmt.Errorf("subscription ID not found in profile %s", profile)
	}

	config := &Config{
		Subscriptions: []string{primary},
		TenantID:      section.Key("tenant").String(),
	}
	for _, extra := range strings.Split(section.Key("subscriptions").String(), ",") {
		extra = strings.TrimSpace(extra)
		if extra != "" && extra != primary {
			config.Subscriptions = append(config.Subscriptions, extra)
		}
	}

	credentials, err := getCredentials(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}
	config.Credentials = credentials
	return config, nil
}

func getCredentials(profile string) (*azidentity.AzureCLICredential, error) {
	// AzureCLICredential picks up the profile from the environment.
	if err := os.Setenv("AZURE_PROFILE", profile); err != nil {
		return nil, fmt.Errorf("failed to set Azure profile: %w", err)
	}

	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}

	return cred, nil
}
