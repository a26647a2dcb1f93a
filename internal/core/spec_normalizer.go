package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

// ExplicitMarker in a spec list routes the request to the explicit planner.
const ExplicitMarker = "@EXPLICIT"

// NormalizeSpecs converts raw package specs into the "name =version" form the
// solver expects. Any spec with a relational operator fails the whole call.
func NormalizeSpecs(raw []string) ([]types.NormalizedSpec, error) {
	out := make([]types.NormalizedSpec, 0, len(raw))
	for _, spec := range raw {
		normalized, err := NormalizeSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}

// NormalizeSpec inserts a space before the first '=' of a spec. A spec that
// already has the space is returned unchanged.
func NormalizeSpec(raw string) (types.NormalizedSpec, error) {
	spec := shared.TrimSpecQuotes(raw)
	if spec == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty package spec")
	}
	for i := 0; i < len(spec); i++ {
		switch spec[i] {
		case '<', '>':
			return "", shared.NewUnsupportedOperatorError(spec)
		case '!', '~':
			if i+1 < len(spec) && spec[i+1] == '=' {
				return "", shared.NewUnsupportedOperatorError(spec)
			}
		case '=':
			if hasRelationalOperator(spec[i:]) {
				return "", shared.NewUnsupportedOperatorError(spec)
			}
			if i > 0 && spec[i-1] == ' ' {
				return types.NormalizedSpec(spec), nil
			}
			return types.NormalizedSpec(spec[:i] + " " + spec[i:]), nil
		}
	}
	return types.NormalizedSpec(spec), nil
}

// IsExplicit reports whether specs carry the explicit marker.
func IsExplicit(specs []string) bool {
	for _, spec := range specs {
		if shared.TrimSpecQuotes(spec) == ExplicitMarker {
			return true
		}
	}
	return false
}

func hasRelationalOperator(value string) bool {
	for i := 0; i < len(value); i++ {
		if value[i] == '<' || value[i] == '>' {
			return true
		}
	}
	return false
}
