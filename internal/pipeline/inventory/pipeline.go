package inventory

import (
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
)

const (
	// Name is the pipeline identifier
	Name = "inventory"

	SourceProducts = "products"
	SourceStock    = "stock"
)

var DefaultExtensions = []string{".csv", ".xlsx"}

// Config configures the inventory pipeline
type Config struct {
	ProductsFile string
	StockFile    string
	Delimiter    rune
	DateLayouts  []string
	Extensions   []string
}

// Pipeline joins the products file with the stock file
type Pipeline struct {
	cfg Config
}

var _ pipeline.Pipeline[domain.InventoryRow] = (*Pipeline)(nil)

// NewPipeline creates a new inventory pipeline, filling unset fields with defaults
func NewPipeline(cfg Config) *Pipeline {
	if cfg.ProductsFile == "" {
		cfg.ProductsFile = "FCD_PRODUTOS.csv"
	}
	if cfg.StockFile == "" {
		cfg.StockFile = "FCD_ESTOQUE.csv"
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if len(cfg.DateLayouts) == 0 {
		cfg.DateLayouts = source.DefaultDateLayouts
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	return &Pipeline{cfg: cfg}
}

func (p *Pipeline) Name() string {
	return Name
}

func (p *Pipeline) Requirements() []source.Requirement {
	return []source.Requirement{
		source.NewRequirement(SourceProducts, p.cfg.ProductsFile, p.cfg.Extensions...),
		source.NewRequirement(SourceStock, p.cfg.StockFile, p.cfg.Extensions...),
	}
}

func (p *Pipeline) ReadOptions() source.ReadOptions {
	return source.ReadOptions{Delimiter: p.cfg.Delimiter}
}

// DateLayouts returns the layouts used for data_referencia
func (p *Pipeline) DateLayouts() []string {
	return p.cfg.DateLayouts
}

// Transform parses both tables and left-joins them. Any missing required column
// fails the whole load.
func (p *Pipeline) Transform(tables map[string]*source.Table) ([]domain.InventoryRow, []domain.ValidationWarning, error) {
	products, warnings, err := ParseProducts(tables[SourceProducts], true)
	if err != nil {
		return nil, nil, err
	}

	stock, stockWarnings, err := ParseStock(tables[SourceStock], p.cfg.DateLayouts)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, stockWarnings...)

	rows, joinWarnings := Join(products, stock)
	warnings = append(warnings, joinWarnings...)

	return rows, warnings, nil
}
