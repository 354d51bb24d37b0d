package config

// Settings holds the process-wide configuration for the data gateway. It is
// built once at startup and passed by reference into each component; no
// component reads the environment directly.
type Settings struct {
	// Azure storage account that owns the file share.
	StorageAccount string

	// Shared key for StorageAccount. Used for request signing and for
	// minting shared access signatures.
	StorageKey string

	// Name of the file share holding all project data.
	FileShare string

	// Path prefix under which project directories live on the share.
	// May be empty, in which case project directories sit at the share root.
	ProjectsPathPrefix string

	// Secret used to verify bearer tokens issued by the euphrosyne backend.
	JWTSecretKey string

	// API key the euphrosyne backend sends on trusted service-to-service
	// calls (project/run initialization, renames).
	BackendAPIKey string
}

// LoadSettings builds Settings from a Configer. It is the only place that
// knows the environment key names.
func LoadSettings(c Configer) *Settings {
	return &Settings{
		StorageAccount:     c.MustGetKey("AZURE_STORAGE_ACCOUNT"),
		StorageKey:         c.MustGetKey("AZURE_STORAGE_KEY"),
		FileShare:          c.MustGetKey("AZURE_STORAGE_FILESHARE"),
		ProjectsPathPrefix: c.GetKeyWithDefault("AZURE_STORAGE_PROJECTS_LOCATION_PREFIX", ""),
		JWTSecretKey:       c.MustGetKey("JWT_SECRET_KEY"),
		BackendAPIKey:      c.MustGetKey("EUPHROSYNE_BACKEND_API_KEY"),
	}
}
