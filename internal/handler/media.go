package handler

import (
	"PlanPhotos/internal/model"
	"PlanPhotos/internal/storage"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Media streams an uploaded photo. The collection and plan segments of the
// URL only partition caches; every photo of an owner lives in one directory.
func Media(store storage.Store, log *logrus.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		owner := vars["owner"]
		file := vars["file"]

		key, err := storage.ObjectKey(owner, model.ImageDirectory, file)
		if err != nil {
			http.Error(w, "Invalid photo path", http.StatusBadRequest)
			return
		}

		rc, err := store.Open(r.Context(), key)
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			log.Errorf("media: failed to open %s: %v", key, err)
			http.Error(w, "Failed to read photo", http.StatusInternalServerError)
			return
		}
		defer rc.Close()

		if ctype := mime.TypeByExtension(path.Ext(file)); ctype != "" {
			w.Header().Set("Content-Type", ctype)
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if _, err := io.Copy(w, rc); err != nil {
			log.Debugf("media: copy of %s interrupted: %v", key, err)
		}
	}
}
