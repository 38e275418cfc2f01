package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
)

// PullSources downloads the objects under prefix whose base name matches a
// requirement alias into destDir, flattening any sub-directories. Each requirement
// takes the object matching its earliest alias, so two requirements sharing an alias
// set but declaring different file names each get their own file. An object chosen by
// several requirements is downloaded once. It returns the local paths sorted, and
// fails when a requirement has no matching object.
func PullSources(ctx context.Context, store ObjectStorage, prefix, destDir string, reqs []source.Requirement) ([]string, error) {
	objects, err := store.ListObjects(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list objects for prefix %s: %w", prefix, err)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })

	// first object key per base name
	byName := make(map[string]string, len(objects))
	for _, obj := range objects {
		name := path.Base(obj.Key)
		if _, ok := byName[name]; !ok {
			byName[name] = obj.Key
		}
	}

	var missing []string
	selected := make(map[string]string, len(reqs))
	for _, req := range reqs {
		key, ok := "", false
		for _, alias := range req.Aliases {
			if key, ok = byName[alias]; ok {
				break
			}
		}
		if !ok {
			missing = append(missing, req.Name)
			continue
		}
		selected[key] = path.Base(key)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("no object under prefix %q matches %s", prefix, strings.Join(missing, ", "))
	}

	localPaths := make([]string, 0, len(selected))
	for key, name := range selected {
		localPath := filepath.Join(destDir, name)
		if err := store.DownloadObject(ctx, key, localPath); err != nil {
			return nil, err
		}
		localPaths = append(localPaths, localPath)
	}

	sort.Strings(localPaths)
	return localPaths, nil
}
