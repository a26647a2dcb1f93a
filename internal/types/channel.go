package types

// ChannelURL identifies a package channel subdir, remote or local. It may
// carry credentials, either as URL userinfo or as a "/t/<token>" segment.
type ChannelURL string

// Channel is a parsed ChannelURL. Name is the credential-free identity that
// the solver echoes back; BaseURL keeps the credentials so download URLs can
// be rebuilt from it.
type Channel struct {
	Name    string
	BaseURL string
	Subdir  string
}

// ChannelIndex is the package index advertised by one channel subdir.
type ChannelIndex struct {
	Channel   string
	BaseURL   string
	Subdir    string
	CachePath string
	Packages  map[string]PackageRecord
}

// RepoData mirrors the repodata.json document served by a channel subdir.
type RepoData struct {
	Info         RepoDataInfo             `json:"info"`
	Packages     map[string]PackageRecord `json:"packages"`
	PackagesCond map[string]PackageRecord `json:"packages.conda,omitempty"`
}

type RepoDataInfo struct {
	Subdir string `json:"subdir,omitempty"`
}
