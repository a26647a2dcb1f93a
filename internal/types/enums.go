package types

type ChannelPriority string

const (
	ChannelPriorityStrict   ChannelPriority = "strict"
	ChannelPriorityFlexible ChannelPriority = "flexible"
	ChannelPriorityDisabled ChannelPriority = "disabled"
)

type PlanAction string

const (
	PlanActionInstall   PlanAction = "install"
	PlanActionRemove    PlanAction = "remove"
	PlanActionUpdate    PlanAction = "update"
	PlanActionDowngrade PlanAction = "downgrade"
	PlanActionReinstall PlanAction = "reinstall"
)

type SpecFileFormat string

const (
	SpecFileFormatText SpecFileFormat = "text"
	SpecFileFormatYAML SpecFileFormat = "yaml"
	SpecFileFormatTOML SpecFileFormat = "toml"
)
