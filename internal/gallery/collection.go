package gallery

import (
	"PlanPhotos/internal/model"
	"errors"
	"fmt"
	"slices"
)

var ErrIndexOutOfRange = errors.New("photo index out of range")

// Move returns a copy of photos with the item at oldIndex moved to newIndex.
// The relative order of the other items is preserved.
func Move(photos []model.Photo, oldIndex, newIndex int) ([]model.Photo, error) {
	n := len(photos)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return nil, fmt.Errorf("%w: move %d to %d in %d photos", ErrIndexOutOfRange, oldIndex, newIndex, n)
	}

	moved := photos[oldIndex]
	out := make([]model.Photo, 0, n)
	out = append(out, photos[:oldIndex]...)
	out = append(out, photos[oldIndex+1:]...)

	return slices.Insert(out, newIndex, moved), nil
}

// Renumber sets every SortIndex to its 1-based position.
func Renumber(photos []model.Photo) {
	for i := range photos {
		photos[i].SortIndex = i + 1
	}
}

// SortPayload lists (reference, sortIndex) for each photo in order.
func SortPayload(photos []model.Photo) []model.SortEntry {
	out := make([]model.SortEntry, len(photos))
	for i, p := range photos {
		out[i] = model.SortEntry{Reference: reference(p), SortIndex: p.SortIndex}
	}
	return out
}
