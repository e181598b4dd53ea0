package config

// Loader defines the interface for configuration loaders
type Loader interface {
	// Load loads the configuration into the target
	Load(target any) error
}
