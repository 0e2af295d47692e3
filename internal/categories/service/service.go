package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"orderflow_backend/internal/categories/repository"
	"orderflow_backend/internal/categories/transport"
	"orderflow_backend/internal/ledger"
	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/metrics"
)

// Service provides business logic for the category registry.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new category service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Classify maps each name to its sub-ledger item type. Unknown names, and
// every name when the registry cannot be read, default to internal.
func (s *Service) Classify(ctx context.Context, names []string) map[string]ledger.ItemType {
	result := make(map[string]ledger.ItemType, len(names))
	unique := ledger.Unique(names)

	types, err := s.repo.TypesByName(ctx, unique)
	if err != nil {
		s.log.WithContext(ctx).Warn("category registry unavailable, defaulting to internal", "error", err)
		types = nil
	}

	for _, name := range unique {
		categoryType, ok := types[name]
		switch {
		case ok && categoryType == repository.TypeExternalPurchase:
			result[name] = ledger.External
		case ok:
			result[name] = ledger.Internal
		default:
			reason := "unregistered"
			if err != nil {
				reason = "registry unavailable"
			}
			s.log.WithContext(ctx).CategoryDefaulted(name, reason)
			metrics.CategoryDefaultedTotal.Inc()
			result[name] = ledger.Internal
		}
	}
	return result
}

// Create registers a category.
func (s *Service) Create(ctx context.Context, req transport.CreateCategoryRequest) (transport.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.CategoryResponse{}, apperr.Validation("category name is required")
	}

	c, err := s.repo.Create(ctx, name, req.Type)
	if err != nil {
		return transport.CategoryResponse{}, err
	}

	s.log.Info("category created", "id", c.ID, "name", c.Name, "type", c.Type)
	return toResponse(c), nil
}

// GetByID retrieves a category.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.CategoryResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CategoryResponse{}, err
	}
	return toResponse(c), nil
}

// List retrieves categories matching the request filters.
func (s *Service) List(ctx context.Context, req transport.ListCategoriesRequest) (transport.CategoryListResponse, error) {
	params := repository.ListParams{}
	if name := strings.TrimSpace(req.Name); name != "" {
		params.Name = &name
	}
	if req.Type != "" {
		params.Type = &req.Type
	}

	items, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.CategoryListResponse{}, err
	}

	resp := transport.CategoryListResponse{Items: make([]transport.CategoryResponse, 0, len(items)), Total: len(items)}
	for _, c := range items {
		resp.Items = append(resp.Items, toResponse(c))
	}
	return resp, nil
}

// Update renames or reclassifies a category.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateCategoryRequest) (transport.CategoryResponse, error) {
	params := repository.UpdateParams{Type: req.Type}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return transport.CategoryResponse{}, apperr.Validation("category name is required")
		}
		params.Name = &name
	}

	c, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return transport.CategoryResponse{}, err
	}

	s.log.Info("category updated", "id", c.ID, "name", c.Name, "type", c.Type)
	return toResponse(c), nil
}

// Delete removes a category.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("category deleted", "id", id)
	return nil
}

type seedFile struct {
	Categories []repository.SeedEntry `yaml:"categories"`
}

// SeedFromFile registers the categories listed in a YAML file, e.g.
//
//	categories:
//	  - name: Cabinet
//	    type: internal-production
//	  - name: Stone
//	    type: external-purchase
func (s *Service) SeedFromFile(ctx context.Context, path string) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read category seed file: %w", err)
	}
	return s.Seed(ctx, raw)
}

// Seed registers the categories in a YAML document.
func (s *Service) Seed(ctx context.Context, raw []byte) (int, error) {
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("parse category seed: %w", err)
	}

	entries := make([]repository.SeedEntry, 0, len(doc.Categories))
	for i, entry := range doc.Categories {
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Name == "" {
			return 0, fmt.Errorf("category seed entry %d: name is required", i)
		}
		if entry.Type == "" {
			entry.Type = repository.TypeInternalProduction
		}
		if entry.Type != repository.TypeInternalProduction && entry.Type != repository.TypeExternalPurchase {
			return 0, fmt.Errorf("category seed entry %q: unknown type %q", entry.Name, entry.Type)
		}
		entries = append(entries, entry)
	}

	inserted, err := s.repo.InsertMissing(ctx, entries)
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		s.log.Info("categories seeded", "inserted", inserted)
	}
	return inserted, nil
}

func toResponse(c repository.Category) transport.CategoryResponse {
	return transport.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
