package service

import (
	"context"
	"strings"

	"focus/internal/modules/blocker/domain"
	blockerout "focus/internal/modules/blocker/port/out"
)

type SearchService struct {
	catalog blockerout.AppCatalog
}

func NewSearchService(catalog blockerout.AppCatalog) *SearchService {
	return &SearchService{catalog: catalog}
}

func (s *SearchService) Search(ctx context.Context, query string) ([]domain.InstalledApp, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.InstalledApp{}, nil
	}
	all, err := s.catalog.Scan(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.InstalledApp, 0, len(all))
	for _, app := range all {
		if domain.MatchApp(app, query) {
			matched = append(matched, app)
		}
	}
	return domain.RankApps(matched, query), nil
}
