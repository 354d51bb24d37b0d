package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	c := NewMapConfig(map[string]string{
		"AZURE_STORAGE_ACCOUNT":                  "storageaccount",
		"AZURE_STORAGE_KEY":                      "key",
		"AZURE_STORAGE_FILESHARE":                "fileshare",
		"AZURE_STORAGE_PROJECTS_LOCATION_PREFIX": "projects",
		"JWT_SECRET_KEY":                         "secret",
		"EUPHROSYNE_BACKEND_API_KEY":             "backend-key",
	})

	settings := LoadSettings(c)
	require.Equal(t, "storageaccount", settings.StorageAccount)
	require.Equal(t, "fileshare", settings.FileShare)
	require.Equal(t, "projects", settings.ProjectsPathPrefix)
	require.Equal(t, "secret", settings.JWTSecretKey)
	require.Equal(t, "backend-key", settings.BackendAPIKey)
}

func TestLoadSettingsPrefixDefaultsToEmpty(t *testing.T) {
	c := NewMapConfig(map[string]string{
		"AZURE_STORAGE_ACCOUNT":      "storageaccount",
		"AZURE_STORAGE_KEY":          "key",
		"AZURE_STORAGE_FILESHARE":    "fileshare",
		"JWT_SECRET_KEY":             "secret",
		"EUPHROSYNE_BACKEND_API_KEY": "backend-key",
	})

	settings := LoadSettings(c)
	require.Equal(t, "", settings.ProjectsPathPrefix)
}
