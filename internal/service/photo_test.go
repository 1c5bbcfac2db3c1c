package service

import (
	"PlanPhotos/internal/model"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	added   []string
	deleted []string
	sorted  []model.SortEntry
}

func (r *fakeRepo) ListPhotos(context.Context, string, string, model.Kind) ([]model.PhotoRecord, error) {
	return []model.PhotoRecord{{Reference: "a.jpg", SortIndex: 1}}, nil
}

func (r *fakeRepo) AddPhoto(_ context.Context, _, _ string, _ model.Kind, src string) (model.PhotoRecord, error) {
	r.added = append(r.added, src)
	return model.PhotoRecord{Reference: src, SortIndex: len(r.added)}, nil
}

func (r *fakeRepo) DeletePhoto(_ context.Context, _, _ string, _ model.Kind, src string, _ int) error {
	r.deleted = append(r.deleted, src)
	return nil
}

func (r *fakeRepo) UpdateSortOrder(_ context.Context, _, _ string, _ model.Kind, order []model.SortEntry) error {
	r.sorted = order
	return nil
}

func newTestService() (PhotoService, *fakeRepo) {
	logger, _ := test.NewNullLogger()
	repo := &fakeRepo{}
	return NewPhotoService(repo, logrus.NewEntry(logger)), repo
}

func TestPhotoService_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ListPhotos(ctx, "", "42", model.Exterior)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListPhotos(ctx, "acme", "42", model.Kind("attic"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, svc.AddPhoto(ctx, "acme", "42", "https://cdn/x/", model.Exterior), ErrInvalidInput)
	assert.ErrorIs(t, svc.DeletePhoto(ctx, "acme", "42", "a.jpg", 0, model.Exterior), ErrInvalidInput)
}

func TestPhotoService_NormalizesSrc(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddPhoto(ctx, "acme", "42", "https://cdn/acme/images/new.jpg", model.Interior))
	require.NoError(t, svc.DeletePhoto(ctx, "acme", "42", "https://cdn/x/images/plan42/photo9.jpg", 1, model.Exterior))

	assert.Equal(t, []string{"new.jpg"}, repo.added)
	assert.Equal(t, []string{"photo9.jpg"}, repo.deleted)
}

func TestPhotoService_UpdateSortOrder(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	order := []model.SortEntry{{Reference: "B", SortIndex: 1}, {Reference: "C", SortIndex: 2}, {Reference: "A", SortIndex: 3}}
	require.NoError(t, svc.UpdateSortOrder(ctx, "acme", "42", order, model.Exterior))
	assert.Equal(t, order, repo.sorted)

	for name, bad := range map[string][]model.SortEntry{
		"gap":       {{Reference: "A", SortIndex: 1}, {Reference: "B", SortIndex: 3}},
		"duplicate": {{Reference: "A", SortIndex: 1}, {Reference: "A", SortIndex: 2}},
		"zero":      {{Reference: "A", SortIndex: 0}},
		"repeat":    {{Reference: "A", SortIndex: 1}, {Reference: "B", SortIndex: 1}},
		"empty src": {{Reference: "", SortIndex: 1}},
	} {
		t.Run(name, func(t *testing.T) {
			err := svc.UpdateSortOrder(ctx, "acme", "42", bad, model.Exterior)
			assert.ErrorIs(t, err, ErrInvalidSortOrder)
		})
	}
}
