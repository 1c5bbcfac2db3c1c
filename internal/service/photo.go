package service

import (
	"PlanPhotos/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

type PhotoRepository interface {
	ListPhotos(ctx context.Context, owner, planID string, kind model.Kind) ([]model.PhotoRecord, error)
	AddPhoto(ctx context.Context, owner, planID string, kind model.Kind, src string) (model.PhotoRecord, error)
	DeletePhoto(ctx context.Context, owner, planID string, kind model.Kind, src string, sortIndex int) error
	UpdateSortOrder(ctx context.Context, owner, planID string, kind model.Kind, order []model.SortEntry) error
}

type PhotoService interface {
	ListPhotos(ctx context.Context, owner, planID string, kind model.Kind) ([]model.PhotoRecord, error)
	AddPhoto(ctx context.Context, owner, planID, src string, kind model.Kind) error
	DeletePhoto(ctx context.Context, owner, planID, src string, sortIndex int, kind model.Kind) error
	UpdateSortOrder(ctx context.Context, owner, planID string, order []model.SortEntry, kind model.Kind) error
}

type photoServiceImpl struct {
	repo PhotoRepository
	log  *logrus.Entry
}

func NewPhotoService(repo PhotoRepository, log *logrus.Entry) PhotoService {
	return &photoServiceImpl{repo: repo, log: log}
}

func validatePlan(owner, planID string, kind model.Kind) error {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(planID) == "" {
		return fmt.Errorf("%w: clientName and planId are required", ErrInvalidInput)
	}
	if _, err := model.ParseKind(string(kind)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// normalizeSrc keeps the storage key only, in case a full URL was sent.
func normalizeSrc(src string) (string, error) {
	ref := model.ReferenceFromSrc(strings.TrimSpace(src))
	if ref == "" {
		return "", fmt.Errorf("%w: src is required", ErrInvalidInput)
	}
	return ref, nil
}

func (s *photoServiceImpl) ListPhotos(ctx context.Context, owner, planID string, kind model.Kind) ([]model.PhotoRecord, error) {
	if err := validatePlan(owner, planID, kind); err != nil {
		return nil, err
	}

	photos, err := s.repo.ListPhotos(ctx, owner, planID, kind)
	if err != nil {
		s.log.Errorf("photos: listing %s photos of %s/%s: %v", kind, owner, planID, err)
		return nil, err
	}
	return photos, nil
}

func (s *photoServiceImpl) AddPhoto(ctx context.Context, owner, planID, src string, kind model.Kind) error {
	if err := validatePlan(owner, planID, kind); err != nil {
		return err
	}
	ref, err := normalizeSrc(src)
	if err != nil {
		return err
	}

	photo, err := s.repo.AddPhoto(ctx, owner, planID, kind, ref)
	if err != nil {
		s.log.Errorf("photos: adding %s to %s/%s: %v", ref, owner, planID, err)
		return err
	}

	s.log.Infof("photos: added %s photo %s to %s/%s at #%d", kind, ref, owner, planID, photo.SortIndex)
	return nil
}

func (s *photoServiceImpl) DeletePhoto(ctx context.Context, owner, planID, src string, sortIndex int, kind model.Kind) error {
	if err := validatePlan(owner, planID, kind); err != nil {
		return err
	}
	ref, err := normalizeSrc(src)
	if err != nil {
		return err
	}
	if sortIndex < 1 {
		return fmt.Errorf("%w: sortIndex must be at least 1", ErrInvalidInput)
	}

	if err := s.repo.DeletePhoto(ctx, owner, planID, kind, ref, sortIndex); err != nil {
		s.log.Errorf("photos: deleting %s from %s/%s: %v", ref, owner, planID, err)
		return err
	}

	s.log.Infof("photos: deleted %s photo %s from %s/%s", kind, ref, owner, planID)
	return nil
}

func (s *photoServiceImpl) UpdateSortOrder(ctx context.Context, owner, planID string, order []model.SortEntry, kind model.Kind) error {
	if err := validatePlan(owner, planID, kind); err != nil {
		return err
	}

	normalized, err := validateSortOrder(order)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateSortOrder(ctx, owner, planID, kind, normalized); err != nil {
		s.log.Errorf("photos: sorting %s photos of %s/%s: %v", kind, owner, planID, err)
		return err
	}

	s.log.Infof("photos: sorted %d %s photos of %s/%s", len(normalized), kind, owner, planID)
	return nil
}

// validateSortOrder requires unique sources ranked exactly 1..N.
func validateSortOrder(order []model.SortEntry) ([]model.SortEntry, error) {
	n := len(order)
	ranks := make([]bool, n+1)
	srcs := make(map[string]struct{}, n)
	out := make([]model.SortEntry, n)

	for i, e := range order {
		ref, err := normalizeSrc(e.Reference)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d has no src", ErrInvalidSortOrder, i)
		}
		if _, dup := srcs[ref]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidSortOrder, ref)
		}
		if e.SortIndex < 1 || e.SortIndex > n || ranks[e.SortIndex] {
			return nil, fmt.Errorf("%w: sortIndex %d is not a free rank in 1..%d", ErrInvalidSortOrder, e.SortIndex, n)
		}
		srcs[ref] = struct{}{}
		ranks[e.SortIndex] = true
		out[i] = model.SortEntry{Reference: ref, SortIndex: e.SortIndex}
	}
	return out, nil
}
