package sales

import "time"

var (
	colSaleID        = []string{"venda_id", "sale_id", "id_venda"}
	colProductID     = []string{"produto_id", "product_id", "id_produto"}
	colStoreID       = []string{"loja_id", "store_id", "id_loja"}
	colSaleDate      = []string{"data_venda", "sale_date", "data"}
	colQuantity      = []string{"quantidade_vendida", "quantity_sold", "quantidade"}
	colUnitValue     = []string{"valor_unitario", "unit_value"}
	colTotalValue    = []string{"valor_total", "total_value"}
	colPaymentMethod = []string{"forma_pagamento", "payment_method"}
	colChannel       = []string{"canal_venda", "channel", "canal"}

	// product attributes carried by an exported view
	colProductName = []string{"produto_nome", "nome_produto", "product_name"}
	colCategory    = []string{"categoria", "category"}
	colBrand       = []string{"marca", "brand"}
)

// ExportHeader is the column order of an exported sales view
var ExportHeader = []string{
	"venda_id",
	"data_venda",
	"loja_id",
	"produto_id",
	"produto_nome",
	"categoria",
	"marca",
	"quantidade_vendida",
	"valor_unitario",
	"valor_total",
	"forma_pagamento",
	"canal_venda",
	"ano",
	"mes",
	"ano_mes",
}

// DateLayouts lists the accepted data_venda formats, day-first
var DateLayouts = []string{
	"2/1/2006",
	"2006-01-02",
	"2/1/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2/1/2006 15:04",
	time.RFC3339,
}
