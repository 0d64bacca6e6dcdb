package source

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"github.com/pricelens/backend/internal/domain"
	"github.com/rotisserie/eris"
)

// FileSource serves a fixed snapshot of one platform's listings
type FileSource struct {
	platform domain.Platform
	records  []domain.RawRecord
}

// NewFileSource creates a source that always returns records
func NewFileSource(platform domain.Platform, records []domain.RawRecord) *FileSource {
	return &FileSource{platform: platform, records: records}
}

// Platform returns the platform this snapshot belongs to
func (f *FileSource) Platform() domain.Platform {
	return f.platform
}

// Search returns a copy of the snapshot; the query is not used
func (f *FileSource) Search(ctx context.Context, query string) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.RawRecord, len(f.records))
	for i, r := range f.records {
		if r.Platform == "" {
			r.Platform = f.platform
		}
		out[i] = r
	}
	return out, nil
}

// LoadCatalog reads a JSON catalog of the form {"<platform>": [records...]}
// and returns one FileSource per platform, known platforms first in their
// canonical order, then any others alphabetically
func LoadCatalog(path string) ([]domain.SourceAdapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var catalog map[string][]domain.RawRecord
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, eris.Wrapf(err, "catalog: decode %s", path)
	}

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := platformRank(names[i]), platformRank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	adapters := make([]domain.SourceAdapter, 0, len(names))
	for _, name := range names {
		adapters = append(adapters, NewFileSource(domain.Platform(name), catalog[name]))
	}
	return adapters, nil
}

func platformRank(name string) int {
	for i, p := range domain.KnownPlatforms {
		if string(p) == name {
			return i
		}
	}
	return len(domain.KnownPlatforms)
}
