package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644))
}

func inventoryRequirements() []Requirement {
	return []Requirement{
		NewRequirement("products", "FCD_PRODUTOS.csv", ".csv"),
		NewRequirement("stock", "FCD_ESTOQUE.csv", ".csv"),
	}
}

func TestResolveSkipsPartialDirectory(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	touch(t, a, "FCD_PRODUTOS.csv")
	touch(t, b, "FCD_PRODUTOS.csv")
	touch(t, b, "FCD_ESTOQUE.csv")

	res, err := NewResolverWithDirs(a, b).Resolve(inventoryRequirements()...)
	require.NoError(t, err)
	assert.Equal(t, b, res.Dir)
	assert.Equal(t, filepath.Join(b, "FCD_PRODUTOS.csv"), res.Path("products"))
	assert.Equal(t, filepath.Join(b, "FCD_ESTOQUE.csv"), res.Path("stock"))

	var sawPartial bool
	for _, at := range res.Attempts {
		if at.Dir == a && at.Requirement == "products" && at.Found {
			sawPartial = true
		}
	}
	assert.True(t, sawPartial, "attempts should record the partial match in the first directory")
}

func TestResolveCaseVariants(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{"as given", []string{"FCD_PRODUTOS.csv", "FCD_ESTOQUE.csv"}, "FCD_PRODUTOS.csv"},
		{"prefix upper", []string{"FCD_produtos.csv", "FCD_estoque.csv"}, "FCD_produtos.csv"},
		{"lower", []string{"fcd_produtos.csv", "fcd_estoque.csv"}, "fcd_produtos.csv"},
		{"folded", []string{"Fcd_Produtos.csv", "fcd_estoque.csv"}, "Fcd_Produtos.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, dir, f)
			}
			res, err := NewResolverWithDirs(dir).Resolve(inventoryRequirements()...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filepath.Base(res.Path("products")))
		})
	}
}

func TestResolveNotFoundDiagnostics(t *testing.T) {
	a := t.TempDir()
	touch(t, a, "FCD_PRODUTOS.csv")
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := NewResolverWithDirs(a, missing).Resolve(inventoryRequirements()...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFileNotFound))

	var nf *domain.FileNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{a, missing}, nf.Searched)
	assert.Equal(t, []string{"FCD_PRODUTOS.csv"}, nf.Listing[a])
	assert.Contains(t, nf.Aliases["stock"], "fcd_estoque.csv")
	assert.NotEmpty(t, nf.WorkingDir)
	assert.Contains(t, err.Error(), "FCD_ESTOQUE.csv")
}

func TestResolveMissingFirstDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := NewResolverWithDirs(missing).Resolve(inventoryRequirements()...)
	var nf *domain.FileNotFoundError
	require.True(t, errors.As(err, &nf))
	entries, ok := nf.Listing[missing]
	assert.True(t, ok)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestCandidateDirs(t *testing.T) {
	dirs := CandidateDirs(Options{ProjectRoot: "/srv/app", BaseDir: "data", ExtraDirs: []string{"/mnt/share", "data"}}, "/srv/app")
	assert.Equal(t, []string{"/srv/app/data", "/mnt/share"}, dirs)

	dirs = CandidateDirs(Options{BaseDir: "fixtures"}, "/work")
	assert.Equal(t, []string{"fixtures", "data"}, dirs)
}

func TestCaseVariants(t *testing.T) {
	assert.Equal(t,
		[]string{"FCD_vendas.csv", "FCD_VENDAS.csv", "fcd_vendas.csv", "FCD_vendas.xlsx", "FCD_VENDAS.xlsx", "fcd_vendas.xlsx"},
		CaseVariants("FCD_vendas.csv", ".csv", "xlsx"),
	)
}
