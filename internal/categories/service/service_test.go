package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow_backend/internal/categories/repository"
	"orderflow_backend/internal/categories/transport"
	"orderflow_backend/internal/ledger"
	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/logger"
)

type fakeRepo struct {
	byName    map[string]repository.Category
	nextID    int64
	lookupErr error
	seeded    []repository.SeedEntry
}

func newFakeRepo(entries map[string]string) *fakeRepo {
	r := &fakeRepo{byName: map[string]repository.Category{}}
	for name, typ := range entries {
		r.nextID++
		r.byName[name] = repository.Category{ID: r.nextID, Name: name, Type: typ}
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, name, categoryType string) (repository.Category, error) {
	if _, ok := r.byName[name]; ok {
		return repository.Category{}, apperr.Conflict("category name already exists")
	}
	r.nextID++
	c := repository.Category{ID: r.nextID, Name: name, Type: categoryType}
	r.byName[name] = c
	return c, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (repository.Category, error) {
	for _, c := range r.byName {
		if c.ID == id {
			return c, nil
		}
	}
	return repository.Category{}, apperr.NotFound("category not found")
}

func (r *fakeRepo) List(ctx context.Context, params repository.ListParams) ([]repository.Category, error) {
	out := make([]repository.Category, 0, len(r.byName))
	for _, c := range r.byName {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, params repository.UpdateParams) (repository.Category, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return c, err
	}
	if params.Type != nil {
		c.Type = *params.Type
	}
	r.byName[c.Name] = c
	return c, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	delete(r.byName, c.Name)
	return nil
}

func (r *fakeRepo) TypesByName(ctx context.Context, names []string) (map[string]string, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	out := map[string]string{}
	for _, name := range names {
		if c, ok := r.byName[name]; ok {
			out[name] = c.Type
		}
	}
	return out, nil
}

func (r *fakeRepo) InsertMissing(ctx context.Context, entries []repository.SeedEntry) (int, error) {
	inserted := 0
	for _, e := range entries {
		if _, ok := r.byName[e.Name]; ok {
			continue
		}
		r.seeded = append(r.seeded, e)
		_, _ = r.Create(ctx, e.Name, e.Type)
		inserted++
	}
	return inserted, nil
}

func TestClassify(t *testing.T) {
	repo := newFakeRepo(map[string]string{
		"Cabinet": repository.TypeInternalProduction,
		"Stone":   repository.TypeExternalPurchase,
	})
	svc := New(repo, logger.Nop())

	got := svc.Classify(context.Background(), []string{"Cabinet", "Stone", "Mystery", "Cabinet"})
	assert.Equal(t, map[string]ledger.ItemType{
		"Cabinet": ledger.Internal,
		"Stone":   ledger.External,
		"Mystery": ledger.Internal,
	}, got)
}

func TestClassifyRegistryUnavailableDefaultsToInternal(t *testing.T) {
	repo := newFakeRepo(map[string]string{"Stone": repository.TypeExternalPurchase})
	repo.lookupErr = errors.New("connection refused")
	svc := New(repo, logger.Nop())

	got := svc.Classify(context.Background(), []string{"Stone", "Door"})
	assert.Equal(t, ledger.Internal, got["Stone"])
	assert.Equal(t, ledger.Internal, got["Door"])
}

func TestCreateRejectsDuplicate(t *testing.T) {
	svc := New(newFakeRepo(nil), logger.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, transport.CreateCategoryRequest{Name: " Cabinet ", Type: repository.TypeInternalProduction})
	require.NoError(t, err)

	_, err = svc.Create(ctx, transport.CreateCategoryRequest{Name: "Cabinet", Type: repository.TypeExternalPurchase})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	svc := New(newFakeRepo(nil), logger.Nop())
	err := svc.Delete(context.Background(), 42)
	assert.True(t, apperr.IsNotFound(err))
}

func TestSeed(t *testing.T) {
	repo := newFakeRepo(map[string]string{"Cabinet": repository.TypeInternalProduction})
	svc := New(repo, logger.Nop())

	doc := []byte(`
categories:
  - name: Cabinet
    type: external-purchase
  - name: Stone
    type: external-purchase
  - name: Door
`)
	inserted, err := svc.Seed(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, repository.TypeInternalProduction, repo.byName["Cabinet"].Type)
	assert.Equal(t, repository.TypeInternalProduction, repo.byName["Door"].Type)
	assert.Equal(t, repository.TypeExternalPurchase, repo.byName["Stone"].Type)

	_, err = svc.Seed(context.Background(), []byte("categories:\n  - name: X\n    type: bogus\n"))
	assert.Error(t, err)
}
