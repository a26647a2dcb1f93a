package types

// TransactionPlan is the unit handed to the execution engine.
type TransactionPlan struct {
	Prefix      string          `json:"prefix"`
	Unlink      []PackageRecord `json:"unlink"`
	Link        []PackageRecord `json:"link"`
	UpdateSpecs []string        `json:"update_specs"`
	RemoveSpecs []string        `json:"remove_specs"`
	Warnings    []string        `json:"warnings,omitempty"`
}

func (p TransactionPlan) Empty() bool {
	return len(p.Unlink) == 0 && len(p.Link) == 0
}

type PlanSummaryEntry struct {
	Action      PlanAction `json:"action" yaml:"action"`
	Name        string     `json:"name" yaml:"name"`
	FromVersion string     `json:"from_version,omitempty" yaml:"from_version,omitempty"`
	FromBuild   string     `json:"from_build,omitempty" yaml:"from_build,omitempty"`
	ToVersion   string     `json:"to_version,omitempty" yaml:"to_version,omitempty"`
	ToBuild     string     `json:"to_build,omitempty" yaml:"to_build,omitempty"`
	Channel     string     `json:"channel,omitempty" yaml:"channel,omitempty"`
}

type PlanSummary struct {
	Entries []PlanSummaryEntry `json:"entries" yaml:"entries"`
}

// Count returns the number of entries with the given action.
func (s PlanSummary) Count(action PlanAction) int {
	count := 0
	for _, entry := range s.Entries {
		if entry.Action == action {
			count++
		}
	}
	return count
}
