package model

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names one of the two photo collections a plan owns.
type Kind string

const (
	Exterior Kind = "exterior"
	Interior Kind = "interior"
)

// Kinds lists every collection in display order.
var Kinds = []Kind{Exterior, Interior}

var ErrUnknownKind = errors.New("unknown photo collection")

// ParseKind accepts "exterior"/"interior" in any case.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Exterior:
		return Exterior, nil
	case Interior:
		return Interior, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// CollectionSegment is the URL segment media of this kind is served under.
func (k Kind) CollectionSegment() string {
	if k == Interior {
		return "planIntPhotos"
	}
	return "planExtPhotos"
}

// PhotoRecord is a photo as stored and transferred: a reference and its rank.
type PhotoRecord struct {
	Reference string `json:"src"`
	SortIndex int    `json:"sortIndex"`
}

// Photo is a PhotoRecord with a URL the view can render.
type Photo struct {
	Reference  string `json:"src"`
	SortIndex  int    `json:"sortIndex"`
	DisplaySrc string `json:"displaySrc"`
}

// SortEntry is one item of a sort-order update.
type SortEntry struct {
	Reference string `json:"src"`
	SortIndex int    `json:"sortIndex"`
}

// ImageDirectory is the directory uploads are stored in below the owner directory.
const ImageDirectory = "images/"

type UploadMeta struct {
	TargetDirectory    string `json:"tgtDir"`
	OwnerDirectoryName string `json:"clientDirName"`
}

type UploadResult struct {
	FileName string `json:"fileName"`
}

// ReferenceFromSrc drops everything up to the last "/" of a URL or path.
func ReferenceFromSrc(src string) string {
	return src[strings.LastIndex(src, "/")+1:]
}
