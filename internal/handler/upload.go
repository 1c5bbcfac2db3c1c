package handler

import (
	"PlanPhotos/internal/metrics"
	"PlanPhotos/internal/model"
	"PlanPhotos/internal/storage"
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"
)

const MaxUploadSize = 32 << 20

// Upload stores one image posted as multipart field "file" under
// {clientDirName}/{tgtDir} and answers with the generated file name.
func Upload(store storage.Store, m *metrics.Metrics, log *logrus.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fail := func(msg string, code int) {
			m.Uploads.WithLabelValues("error").Inc()
			http.Error(w, msg, code)
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			log.Warnf("upload: error parsing form: %v", err)
			fail("Invalid multipart form", http.StatusBadRequest)
			return
		}

		meta := model.UploadMeta{
			TargetDirectory:    r.FormValue("tgtDir"),
			OwnerDirectoryName: r.FormValue("clientDirName"),
		}
		if meta.OwnerDirectoryName == "" {
			fail("clientDirName is required", http.StatusBadRequest)
			return
		}
		if meta.TargetDirectory == "" {
			meta.TargetDirectory = model.ImageDirectory
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			fail("file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			log.Warnf("upload: error reading %s: %v", header.Filename, err)
			fail("Error reading file", http.StatusBadRequest)
			return
		}

		kind, err := filetype.Match(data)
		if err != nil || !filetype.IsImage(data) {
			log.Infof("upload: rejected %s (%s)", header.Filename, kind.MIME.Value)
			fail("Only image files can be uploaded", http.StatusUnsupportedMediaType)
			return
		}

		name := uuid.NewString() + "." + kind.Extension
		key, err := storage.ObjectKey(meta.OwnerDirectoryName, meta.TargetDirectory, name)
		if err != nil {
			fail(err.Error(), http.StatusBadRequest)
			return
		}

		n, err := store.Save(r.Context(), key, bytes.NewReader(data), kind.MIME.Value)
		if err != nil {
			log.Errorf("upload: failed to store %s: %v", key, err)
			fail("Failed to store file", http.StatusInternalServerError)
			return
		}

		if thumb, err := storage.Thumbnail(bytes.NewReader(data), storage.ThumbWidth); err != nil {
			log.Debugf("upload: no thumbnail for %s: %v", key, err)
		} else if _, err := store.Save(r.Context(), storage.ThumbKey(key), bytes.NewReader(thumb), kind.MIME.Value); err != nil {
			log.Warnf("upload: failed to store thumbnail of %s: %v", key, err)
		}

		m.Uploads.WithLabelValues("ok").Inc()
		m.UploadBytes.Add(float64(n))
		log.Infof("upload: stored %s as %s (%s)", header.Filename, key, humanize.Bytes(uint64(n)))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]model.UploadResult{{FileName: name}}); err != nil {
			log.Errorf("upload: failed to encode response: %v", err)
		}
	}
}
