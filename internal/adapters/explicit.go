package adapters

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

const explicitMarker = "@EXPLICIT"

var packageSuffixes = []string{".tar.bz2", ".conda"}

// ExplicitSpecAdapter turns an explicit URL list into a link-only plan. Every
// line after the marker is a package URL, optionally with an md5 fragment.
type ExplicitSpecAdapter struct{}

func NewExplicitSpecAdapter() ExplicitSpecAdapter {
	return ExplicitSpecAdapter{}
}

func (a ExplicitSpecAdapter) PlanExplicit(ctx context.Context, specs []string, prefix string) (types.TransactionPlan, error) {
	plan := types.TransactionPlan{
		Prefix:      prefix,
		Unlink:      []types.PackageRecord{},
		Link:        []types.PackageRecord{},
		UpdateSpecs: []string{},
		RemoveSpecs: []string{},
	}
	seenMarker := false
	for _, raw := range specs {
		spec := shared.TrimSpecQuotes(raw)
		if spec == "" || strings.HasPrefix(spec, "#") {
			continue
		}
		if spec == explicitMarker {
			seenMarker = true
			continue
		}
		if !seenMarker {
			continue
		}
		record, err := explicitRecord(spec)
		if err != nil {
			return types.TransactionPlan{}, err
		}
		plan.Link = append(plan.Link, record)
		plan.UpdateSpecs = append(plan.UpdateSpecs, record.Name)
	}
	log.Ctx(ctx).Info().Int("link", len(plan.Link)).Msg("explicit transaction planned")
	return plan, nil
}

func explicitRecord(spec string) (types.PackageRecord, error) {
	parsed, err := url.Parse(spec)
	if err != nil || parsed.Scheme == "" {
		return types.PackageRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("explicit spec is not a package url: %s", shared.RedactURL(spec))).
			WithCause(err)
	}
	md5 := parsed.Fragment
	parsed.Fragment = ""
	filename := path.Base(parsed.Path)
	name, version, build, ok := splitPackageFilename(filename)
	if !ok {
		return types.PackageRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cannot parse package filename %q", filename))
	}
	channelURL := strings.TrimSuffix(parsed.String(), "/"+filename)
	record := types.PackageRecord{
		Name:     name,
		Version:  version,
		Build:    build,
		Depends:  []string{},
		Filename: filename,
		Channel:  shared.RedactURL(channelURL),
		URL:      parsed.String(),
		MD5:      md5,
	}
	if subdir := path.Base(channelURL); shared.IsKnownSubdir(subdir) {
		record.Subdir = subdir
	}
	return record, nil
}

// splitPackageFilename splits "name-version-build.ext"; names may contain
// dashes, version and build may not.
func splitPackageFilename(filename string) (string, string, string, bool) {
	stem := ""
	for _, suffix := range packageSuffixes {
		if strings.HasSuffix(filename, suffix) {
			stem = strings.TrimSuffix(filename, suffix)
			break
		}
	}
	if stem == "" {
		return "", "", "", false
	}
	buildSep := strings.LastIndex(stem, "-")
	if buildSep <= 0 {
		return "", "", "", false
	}
	versionSep := strings.LastIndex(stem[:buildSep], "-")
	if versionSep <= 0 {
		return "", "", "", false
	}
	return stem[:versionSep], stem[versionSep+1 : buildSep], stem[buildSep+1:], true
}

var _ ports.ExplicitPlannerPort = ExplicitSpecAdapter{}
