package types

// InstalledSummary is the per-package entry of an installed snapshot: the
// dist fields of the record plus its dependency list and build string.
type InstalledSummary struct {
	BaseURL     string   `json:"base_url"`
	BuildNumber int      `json:"build_number"`
	BuildString string   `json:"build_string"`
	Channel     string   `json:"channel"`
	DistName    string   `json:"dist_name"`
	Name        string   `json:"name"`
	Platform    string   `json:"platform"`
	Version     string   `json:"version"`
	Depends     []string `json:"depends"`
	Build       string   `json:"build"`
}

// InstalledSnapshot maps package filename to summary for every package
// present in a prefix.
type InstalledSnapshot struct {
	Packages map[string]InstalledSummary `json:"packages"`
}
