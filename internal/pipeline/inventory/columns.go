package inventory

// Header aliases accepted for each field. Lookup goes through source.NormalizeColumnName,
// so case, spaces, dots and underscores do not matter.
var (
	colProductID     = []string{"produto_id", "product_id", "id_produto"}
	colProductName   = []string{"produto_nome", "nome_produto", "product_name", "nome"}
	colCategory      = []string{"categoria", "category"}
	colBrand         = []string{"marca", "brand"}
	colUnitPrice     = []string{"preco_unitario", "unit_price", "preco"}
	colLocation      = []string{"localizacao", "location", "local"}
	colQuantity      = []string{"quantidade_estoque", "quantidade", "stock"}
	colMinimum       = []string{"estoque_minimo", "minimo", "min_stock"}
	colReferenceDate = []string{"data_referencia", "reference_date"}
)

// ExportHeader is the column order of an exported inventory view
var ExportHeader = []string{
	"produto_id",
	"produto_nome",
	"categoria",
	"marca",
	"quantidade_estoque",
	"estoque_minimo",
	"preco_unitario",
	"localizacao",
	"data_referencia",
	"status",
	"diferenca",
}
