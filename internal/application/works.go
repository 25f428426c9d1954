package application

import (
	"fmt"
	"sort"

	"kashbill/internal/domain"
	"kashbill/internal/domain/entities"
	"kashbill/internal/ports/input"
)

var _ input.WorksUseCase = (*WorksService)(nil)

// CategoryAll lists every project.
const CategoryAll = "All"

// DefaultCategories is used when the site content declares none.
var DefaultCategories = []string{CategoryAll, "Sound Design", "Composition", "UI SFX", "Foley"}

type WorksService struct {
	projects   []entities.Project
	categories []string
}

func NewWorksService(site *entities.Site) *WorksService {
	categories := site.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if categories[0] != CategoryAll {
		categories = append([]string{CategoryAll}, categories...)
	}
	projects := append([]entities.Project(nil), site.Projects...)
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Featured && !projects[j].Featured
	})
	return &WorksService{projects: projects, categories: categories}
}

func (s *WorksService) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Filter returns the projects of a category, featured first.
func (s *WorksService) Filter(category string) ([]entities.Project, error) {
	if category == CategoryAll {
		return append([]entities.Project(nil), s.projects...), nil
	}
	known := false
	for _, c := range s.categories {
		if c == category {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("filter %q: %w", category, domain.ErrUnknownCategory)
	}
	var out []entities.Project
	for _, p := range s.projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
