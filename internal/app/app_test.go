package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(root string) *config.Config {
	return &config.Config{
		Data:      config.DataConfig{ProjectRoot: root, BaseDir: "data"},
		Inventory: config.InventoryConfig{Delimiter: ',', ProductsFile: "FCD_PRODUTOS.csv", StockFile: "FCD_ESTOQUE.csv"},
		Sales:     config.SalesConfig{Delimiter: ';', SalesFile: "FCD_vendas.csv", ProductsFile: "FCD_produtos.csv"},
	}
}

func TestNewWiresServices(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "FCD_PRODUTOS.csv"), []byte("produto_id,produto_nome,categoria,preco_unitario\nP1,A,B,2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "FCD_ESTOQUE.csv"), []byte("produto_id,quantidade_estoque,estoque_minimo\nP1,1,3\n"), 0o644))

	a, err := New(testConfig(root))
	require.NoError(t, err)
	assert.Nil(t, a.Storage)
	assert.Len(t, a.Requirements(), 4)
	assert.Equal(t, dataDir, a.Resolver.Dirs()[0])

	summary, err := a.Inventory.Summary(context.Background(), domain.InventoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BelowMinimum)
}

type bucket map[string]string

func (b bucket) ListObjects(context.Context, string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for key, body := range b {
		out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(body))})
	}
	return out, nil
}

func (b bucket) DownloadObject(_ context.Context, key, dest string) error {
	return os.WriteFile(dest, []byte(b[key]), 0o644)
}

func (b bucket) UploadObject(context.Context, string, []byte, string) error { return nil }

func (b bucket) URL(key string) string { return key }

func TestPulledSourcesLoadBothDashboards(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	a, err := New(testConfig(root))
	require.NoError(t, err)

	store := bucket{
		"sources/FCD_PRODUTOS.csv": "produto_id,produto_nome,categoria,preco_unitario\nP1,A,B,2\n",
		"sources/FCD_ESTOQUE.csv":  "produto_id,quantidade_estoque,estoque_minimo\nP1,1,3\n",
		"sources/FCD_produtos.csv": "produto_id;produto_nome;categoria\nP1;Arroz;Mercearia\n",
		"sources/FCD_vendas.csv":   "venda_id;data_venda;loja_id;produto_id;quantidade_vendida;valor_total\nV1;15/01/2024;L1;P1;2;24,50\n",
	}
	paths, err := storage.PullSources(context.Background(), store, "sources/", dataDir, a.Requirements())
	require.NoError(t, err)
	assert.Len(t, paths, 4)

	summary, err := a.Sales.Summary(context.Background(), domain.SalesFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Arroz", summary.TopProducts[0].ProductName)
}

func TestNewRejectsInvalidStorage(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Storage = config.StorageConfig{Enabled: true}

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestSyncDriveRequiresCredentials(t *testing.T) {
	a, err := New(testConfig(t.TempDir()))
	require.NoError(t, err)

	_, err = a.SyncDrive(context.Background(), t.TempDir())
	assert.Error(t, err)
}
