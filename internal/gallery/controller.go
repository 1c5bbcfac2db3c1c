package gallery

import (
	"PlanPhotos/internal/model"
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Owner        string
	PlanID       string
	MediaBaseURL string

	Gateway  Gateway
	Uploader Uploader
	Notifier Notifier
	Log      *logrus.Entry
}

// Controller keeps the exterior and interior photo lists of one plan.
//
// The lists are derived from the last fetch of each collection. Local
// reorders are applied immediately and stay provisional until the next
// fetch replaces them; a failed sort update is reported, not reverted.
type Controller struct {
	owner     string
	planID    string
	mediaBase string

	gateway  Gateway
	uploader Uploader
	notifier Notifier
	log      *logrus.Entry

	mu          sync.Mutex
	collections map[model.Kind][]model.Photo
}

func NewController(opts Options) *Controller {
	c := &Controller{
		owner:       opts.Owner,
		planID:      opts.PlanID,
		mediaBase:   opts.MediaBaseURL,
		gateway:     opts.Gateway,
		uploader:    opts.Uploader,
		notifier:    opts.Notifier,
		log:         opts.Log,
		collections: make(map[model.Kind][]model.Photo, len(model.Kinds)),
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = logrus.NewEntry(l)
	}
	return c
}

// Load fetches both collections and replaces the local lists.
func (c *Controller) Load(ctx context.Context) error {
	for _, kind := range model.Kinds {
		records, err := c.gateway.FetchPhotos(ctx, kind)
		if err != nil {
			return fmt.Errorf("fetch %s photos: %w", kind, err)
		}
		c.Reconcile(kind, records)
	}
	return nil
}

// Reconcile replaces the list of kind with freshly fetched records.
func (c *Controller) Reconcile(kind model.Kind, records []model.PhotoRecord) {
	sorted := slices.Clone(records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SortIndex < sorted[j].SortIndex })

	prefix := GenerateURL(c.mediaBase, c.owner, kind, c.planID)
	photos := make([]model.Photo, len(sorted))
	for i, r := range sorted {
		photos[i] = model.Photo{
			Reference:  r.Reference,
			SortIndex:  r.SortIndex,
			DisplaySrc: prefix + r.Reference,
		}
	}

	c.mu.Lock()
	c.collections[kind] = photos
	c.mu.Unlock()

	c.log.Debugf("gallery: %d %s photos", len(photos), kind)
}

// Photos returns a copy of the current list of kind.
func (c *Controller) Photos(kind model.Kind) []model.Photo {
	if k, err := model.ParseKind(string(kind)); err == nil {
		kind = k
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Photo(nil), c.collections[kind]...)
}

// Reorder moves a photo within its collection, renumbers the collection and
// submits the complete new order.
func (c *Controller) Reorder(ctx context.Context, kind model.Kind, oldIndex, newIndex int) error {
	kind, err := model.ParseKind(string(kind))
	if err != nil {
		return err
	}

	c.mu.Lock()
	moved, err := Move(c.collections[kind], oldIndex, newIndex)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	Renumber(moved)
	c.collections[kind] = moved
	payload := SortPayload(moved)
	c.mu.Unlock()

	if err := c.gateway.UpdateSortOrder(ctx, payload, kind); err != nil {
		c.log.WithError(err).Warnf("gallery: saving %s photo order failed", kind)
		c.notifier.Error("ERROR! Plan photo order not saved!")
		return fmt.Errorf("update %s sort order: %w", kind, err)
	}
	return nil
}

// Delete removes a photo remotely. The local list is left alone until the
// gateway refetch replaces it.
func (c *Controller) Delete(ctx context.Context, photo model.Photo, kind model.Kind) error {
	kind, err := model.ParseKind(string(kind))
	if err != nil {
		return err
	}

	ref := reference(photo)
	if err := c.gateway.DeletePhoto(ctx, ref, photo.SortIndex, kind); err != nil {
		c.log.WithError(err).Warnf("gallery: deleting %s photo %s failed", kind, ref)
		c.notifier.Error("ERROR! Plan photo not deleted!")
		return fmt.Errorf("delete %s photo %s: %w", kind, ref, err)
	}
	c.notifier.Success("Plan photo deleted!")
	return nil
}

// AddFromUpload registers the first uploaded file with the collection.
// Results without a file name are ignored.
func (c *Controller) AddFromUpload(ctx context.Context, results []model.UploadResult, kind model.Kind) error {
	if len(results) == 0 || results[0].FileName == "" {
		return nil
	}

	kind, err := model.ParseKind(string(kind))
	if err != nil {
		return err
	}

	name := results[0].FileName
	if err := c.gateway.AddPhoto(ctx, name, kind); err != nil {
		c.log.WithError(err).Errorf("gallery: failed to add photo %s", name)
		c.notifier.Error(fmt.Sprintf("Failed to add photo %s.", name))
		return fmt.Errorf("add %s photo %s: %w", kind, name, err)
	}
	c.notifier.Success(fmt.Sprintf("Added photo %s", name))
	return nil
}

// Upload sends a file through the uploader into the owner's image directory
// and adds the result to the collection.
func (c *Controller) Upload(ctx context.Context, kind model.Kind, fileName string, body io.Reader) error {
	kind, err := model.ParseKind(string(kind))
	if err != nil {
		return err
	}
	if c.uploader == nil {
		return fmt.Errorf("upload %s: no uploader configured", fileName)
	}

	meta := model.UploadMeta{TargetDirectory: model.ImageDirectory, OwnerDirectoryName: c.owner}
	results, err := c.uploader.Upload(ctx, meta, fileName, body)
	if err != nil {
		c.log.WithError(err).Errorf("gallery: upload of %s failed", fileName)
		c.notifier.Error(fmt.Sprintf("Failed to upload photo %s.", fileName))
		return fmt.Errorf("upload %s: %w", fileName, err)
	}
	return c.AddFromUpload(ctx, results, kind)
}
