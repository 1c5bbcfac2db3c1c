package gallery

import (
	"PlanPhotos/internal/model"
	"net/url"
	"strings"
)

// GenerateURL returns the prefix a photo reference is appended to for display:
//
//	{base}/{owner}/{planExtPhotos|planIntPhotos}/{planID}/
func GenerateURL(base, owner string, kind model.Kind, planID string) string {
	return strings.TrimRight(base, "/") + "/" +
		url.PathEscape(owner) + "/" +
		kind.CollectionSegment() + "/" +
		url.PathEscape(planID) + "/"
}

// reference resolves the storage key of a photo, falling back to its display URL.
func reference(p model.Photo) string {
	if p.Reference != "" {
		return model.ReferenceFromSrc(p.Reference)
	}
	return model.ReferenceFromSrc(p.DisplaySrc)
}
