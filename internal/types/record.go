package types

import "encoding/json"

// PackageRecord describes one package build. Unknown metadata keys are kept
// in Extra and written back on marshal.
type PackageRecord struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Build       string   `json:"build"`
	BuildNumber int      `json:"build_number"`
	Depends     []string `json:"depends"`
	Constrains  []string `json:"constrains,omitempty"`
	Filename    string   `json:"fn"`
	Channel     string   `json:"channel,omitempty"`
	URL         string   `json:"url,omitempty"`
	Subdir      string   `json:"subdir,omitempty"`
	MD5         string   `json:"md5,omitempty"`
	SHA256      string   `json:"sha256,omitempty"`
	Size        int64    `json:"size,omitempty"`
	License     string   `json:"license,omitempty"`
	Timestamp   int64    `json:"timestamp,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownRecordFields = []string{
	"name", "version", "build", "build_number", "depends", "constrains",
	"fn", "channel", "url", "subdir", "md5", "sha256", "size", "license",
	"timestamp",
}

type packageRecordAlias PackageRecord

func (r *PackageRecord) UnmarshalJSON(data []byte) error {
	var alias packageRecordAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range knownRecordFields {
		delete(raw, key)
	}
	alias.Extra = nil
	if len(raw) > 0 {
		alias.Extra = raw
	}
	*r = PackageRecord(alias)
	return nil
}

func (r PackageRecord) MarshalJSON() ([]byte, error) {
	alias := packageRecordAlias(r)
	if alias.Depends == nil {
		alias.Depends = []string{}
	}
	base, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return base, nil
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range r.Extra {
		if _, ok := merged[key]; ok {
			continue
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}

// Clone returns a copy that shares no slices or maps with r.
func (r PackageRecord) Clone() PackageRecord {
	out := r
	out.Depends = append([]string(nil), r.Depends...)
	out.Constrains = append([]string(nil), r.Constrains...)
	if r.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for key, value := range r.Extra {
			out.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return out
}
