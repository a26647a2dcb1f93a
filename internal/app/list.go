package app

import (
	"context"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	if err := requirePrefix(req.Prefix); err != nil {
		return ListResult{}, err
	}
	if s.Installed == nil {
		return ListResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no installed package enumerator configured")
	}
	records, err := s.Installed.InstalledRecords(ctx, req.Prefix)
	if err != nil {
		return ListResult{}, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return ListResult{Records: records}, nil
}
