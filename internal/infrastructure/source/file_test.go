package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pricelens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	content := `{
		"zepto": [{"title": "Dove Soap 100g", "price": "₹52", "link": "https://zepto.example/p/1"}],
		"localstore": [{"title": "Dove Soap 100g", "price": "₹49", "link": "https://local.example/p/1"}],
		"amazon": [{"platform": "amazon", "title": "Dove Soap 100g", "price": "₹50", "link": "https://amazon.example/p/1"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	adapters, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, adapters, 3)

	assert.Equal(t, domain.PlatformAmazon, adapters[0].Platform())
	assert.Equal(t, domain.PlatformZepto, adapters[1].Platform())
	assert.Equal(t, domain.Platform("localstore"), adapters[2].Platform())

	records, err := adapters[1].Search(context.Background(), "dove")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.PlatformZepto, records[0].Platform, "platform filled from catalog key")
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2]`), 0o644))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}

func TestFileSource_Search(t *testing.T) {
	original := []domain.RawRecord{{Title: "Amul Butter 100g", Price: "₹56", Link: "https://x.in/b"}}
	src := NewFileSource(domain.PlatformBlinkit, original)

	records, err := src.Search(context.Background(), "butter")
	require.NoError(t, err)
	records[0].Title = "changed"
	assert.Equal(t, "Amul Butter 100g", original[0].Title, "search returns a copy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Search(ctx, "butter")
	assert.ErrorIs(t, err, context.Canceled)
}
