package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"FCD_PRODUTOS.csv": "produto_id,produto_nome,categoria,marca,preco_unitario\nP1,Parafuso,Ferragens,Acme,1234.50\nP2,Martelo,Ferramentas,Bosch,10\n",
		"FCD_ESTOQUE.csv":  "produto_id,quantidade_estoque,estoque_minimo,data_referencia\nP1,2,5,2024-02-01\nP2,7,1,2024-02-01\n",
		"FCD_vendas.csv":   "venda_id;data_venda;loja_id;produto_id;quantidade_vendida;valor_total\nV1;15/01/2024;L1;P1;2;2469,00\n",
		"FCD_produtos.csv": "produto_id;produto_nome;categoria\nP1;Parafuso;Ferragens\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp()
	a.Writer = &out
	a.ErrWriter = &errOut
	err := a.Run(append([]string{"dashctl"}, args...))
	return out.String(), err
}

func TestInventoryCommand(t *testing.T) {
	dir := writeSources(t)

	out, err := run(t, "--data-dir", dir, "inventory")
	require.NoError(t, err)
	assert.Contains(t, out, "Reference date:       2024-02-01")
	assert.Contains(t, out, "Total value:          R$ 2.539,00")
	assert.Contains(t, out, "Replenishment cost:   R$ 3.703,50")

	out, err = run(t, "--data-dir", dir, "--json", "inventory", "--category", "Ferramentas")
	require.NoError(t, err)
	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, float64(1), body["summary"]["total_rows"])
	assert.Equal(t, float64(0), body["summary"]["below_minimum"])
}

func TestInventoryCommandRejectsBadDate(t *testing.T) {
	dir := writeSources(t)

	_, err := run(t, "--data-dir", dir, "inventory", "--date", "yesterday")
	assert.Error(t, err)
}

func TestSalesCommand(t *testing.T) {
	dir := writeSources(t)

	out, err := run(t, "--data-dir", dir, "sales")
	require.NoError(t, err)
	assert.Contains(t, out, "Revenue:       R$ 2.469,00")
	assert.Contains(t, out, "Parafuso")
	assert.Contains(t, out, "2024-01 2")
}

func TestResolveCommand(t *testing.T) {
	dir := writeSources(t)

	out, err := run(t, "--data-dir", dir, "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "1. "+dir)
	assert.Contains(t, out, "inventory: "+dir)
	assert.Contains(t, out, "sales: "+dir)
}

func TestPullRequiresStorage(t *testing.T) {
	dir := writeSources(t)

	_, err := run(t, "--data-dir", dir, "pull")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_ENABLED")
}
