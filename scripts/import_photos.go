package scripts

import (
	"PlanPhotos/internal/model"
	"PlanPhotos/internal/storage"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var importExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ImportPhotosFromFolder loads photos laid out as
//
//	{baseFolder}/{client}/{plan}/{exterior|interior}/{file}
//
// into the store and appends them to their collections in file name order.
// Photos already registered are skipped.
func ImportPhotosFromFolder(ctx context.Context, db *sql.DB, store storage.Store, baseFolder string, log *logrus.Entry) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	clientDirs, err := os.ReadDir(baseFolder)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, clientDir := range clientDirs {
		if !clientDir.IsDir() {
			continue
		}
		clientName := clientDir.Name()

		planDirs, err := os.ReadDir(filepath.Join(baseFolder, clientName))
		if err != nil {
			return imported, err
		}

		for _, planDir := range planDirs {
			if !planDir.IsDir() {
				continue
			}
			planID := planDir.Name()

			for _, kind := range model.Kinds {
				dir := filepath.Join(baseFolder, clientName, planID, string(kind))
				n, err := importCollection(ctx, tx, store, dir, clientName, planID, kind, log)
				if err != nil {
					return imported, err
				}
				imported += n
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return imported, err
	}
	return imported, nil
}

func importCollection(ctx context.Context, tx *sql.Tx, store storage.Store, dir, clientName, planID string, kind model.Kind, log *logrus.Entry) (int, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	imported := 0
	for _, f := range files {
		name := f.Name()
		contentType, ok := importExtensions[strings.ToLower(filepath.Ext(name))]
		if f.IsDir() || !ok || strings.Contains(name, "_thumb") {
			continue
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO plan_photos (client_name, plan_id, kind, src, sort_index)
			SELECT $1, $2, $3, $4, COALESCE(MAX(sort_index), 0) + 1
			FROM plan_photos
			WHERE client_name = $1 AND plan_id = $2 AND kind = $3
			ON CONFLICT (client_name, plan_id, kind, src) DO NOTHING`,
			clientName, planID, string(kind), name)
		if err != nil {
			return imported, fmt.Errorf("import %s: %w", name, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			log.Debugf("import: %s/%s/%s/%s already registered", clientName, planID, kind, name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return imported, err
		}
		key, err := storage.ObjectKey(clientName, model.ImageDirectory, name)
		if err != nil {
			return imported, err
		}
		if _, err := store.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
			return imported, err
		}
		if thumb, err := storage.Thumbnail(bytes.NewReader(data), storage.ThumbWidth); err == nil {
			if _, err := store.Save(ctx, storage.ThumbKey(key), bytes.NewReader(thumb), contentType); err != nil {
				return imported, err
			}
		}

		log.Infof("import: %s %s photo %s of plan %s", clientName, kind, name, planID)
		imported++
	}
	return imported, nil
}
