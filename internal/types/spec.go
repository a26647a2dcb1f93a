package types

// SpecFile is the decoded content of a spec file. Channels are only
// populated by formats that can declare them.
type SpecFile struct {
	Path     string
	Format   SpecFileFormat
	Specs    []string
	Channels []string
}

// EnvironmentFile is the YAML environment file layout.
type EnvironmentFile struct {
	Name         string   `yaml:"name,omitempty"`
	Channels     []string `yaml:"channels,omitempty"`
	Dependencies []any    `yaml:"dependencies"`
}

// ManifestFile is the TOML manifest layout.
type ManifestFile struct {
	Channels     []string          `toml:"channels"`
	Dependencies map[string]string `toml:"dependencies"`
}
