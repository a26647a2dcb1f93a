package types

// NormalizedSpec is a package request in "name =version" form.
type NormalizedSpec string

type ChannelDescriptor struct {
	Channel   string `json:"channel"`
	IndexPath string `json:"index_path"`
}

type SolverRequest struct {
	Channels       []ChannelDescriptor `json:"channels"`
	InstalledPath  string              `json:"installed_path"`
	Specs          []NormalizedSpec    `json:"specs"`
	StrictPriority bool                `json:"strict_channel_priority"`
}

type UnlinkItem struct {
	Channel  string
	Filename string
}

// LinkItem references a package by channel and filename. Metadata is the
// raw JSON record text as the solver returned it.
type LinkItem struct {
	Channel  string
	Filename string
	Metadata string
}

type SolverResult struct {
	Link   []LinkItem
	Unlink []UnlinkItem
}
