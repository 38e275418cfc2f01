package sales

import (
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline/inventory"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
)

const (
	// Name is the pipeline identifier
	Name = "sales"

	SourceSales    = "sales"
	SourceProducts = "products"
)

// Config configures the sales pipeline
type Config struct {
	SalesFile    string
	ProductsFile string
	Delimiter    rune
	DateLayouts  []string
	Extensions   []string
}

// Pipeline joins the sales file with its products file
type Pipeline struct {
	cfg Config
}

var _ pipeline.Pipeline[domain.SalesRow] = (*Pipeline)(nil)

// NewPipeline creates a new sales pipeline, filling unset fields with defaults
func NewPipeline(cfg Config) *Pipeline {
	if cfg.SalesFile == "" {
		cfg.SalesFile = "FCD_vendas.csv"
	}
	if cfg.ProductsFile == "" {
		cfg.ProductsFile = "FCD_produtos.csv"
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ';'
	}
	if len(cfg.DateLayouts) == 0 {
		cfg.DateLayouts = DateLayouts
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = inventory.DefaultExtensions
	}
	return &Pipeline{cfg: cfg}
}

func (p *Pipeline) Name() string {
	return Name
}

func (p *Pipeline) Requirements() []source.Requirement {
	return []source.Requirement{
		source.NewRequirement(SourceSales, p.cfg.SalesFile, p.cfg.Extensions...),
		source.NewRequirement(SourceProducts, p.cfg.ProductsFile, p.cfg.Extensions...),
	}
}

func (p *Pipeline) ReadOptions() source.ReadOptions {
	return source.ReadOptions{Delimiter: p.cfg.Delimiter}
}

// Transform parses sales and products and left-joins them on produto_id.
// The products table of this dataset has no mandatory price column.
func (p *Pipeline) Transform(tables map[string]*source.Table) ([]domain.SalesRow, []domain.ValidationWarning, error) {
	sales, warnings, err := ParseSales(tables[SourceSales], p.cfg.DateLayouts)
	if err != nil {
		return nil, nil, err
	}

	products, productWarnings, err := inventory.ParseProducts(tables[SourceProducts], false)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, productWarnings...)

	return JoinSales(sales, products), warnings, nil
}
