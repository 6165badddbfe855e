package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/region-atlas/pkg/adapters"
	"github.com/de-tools/region-atlas/pkg/models/domain"
)

type Format string

const (
	FormatTableView Format = "table"
	FormatText      Format = "text"
	FormatJSON      Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTableView, FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected table, text or json)", s)
	}
}

var SummaryHeaders = []string{
	"Region",
	"Total costs",
	"Monthly revenue",
	"Profit",
	"Profitability",
	"Profitability tier",
	"Break-even customers",
	"Competition density",
	"Competition tier",
	"Payback, months",
}

// Total costs, monthly revenue and profit.
var summaryCurrencyColumns = []int{1, 2, 3}

const textTemplate = `{{range .}}
=== {{.Region}} ===
Total costs:          {{money .TotalCosts}}
Monthly revenue:      {{money .MonthlyRevenue}}
Profit:               {{money .Profit}}
Profitability:        {{printf "%.1f" .ProfitabilityPercent}}% ({{.ProfitabilityTier}})
Break-even customers: {{.BreakEvenCustomerCount}}
Competition density:  {{printf "%.1f" .CompetitionDensity}} per 1000 ({{.CompetitionTier}})
Payback, months:      {{.PaybackPeriod}}
{{end}}`

// Reporter outputs summary batches in the selected format
type Reporter struct {
	writer   io.Writer
	currency string
	format   Format
}

func NewReporter(writer io.Writer, currency string, format Format) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if format == "" {
		format = FormatTableView
	}
	return &Reporter{
		writer:   writer,
		currency: currency,
		format:   format,
	}
}

// SummaryTable lays a batch out as rows in batch order.
func SummaryTable(batch *domain.SummaryBatch, currency string) domain.Table {
	t := domain.Table{
		Headers:         SummaryHeaders,
		CurrencyColumns: summaryCurrencyColumns,
		Currency:        currency,
	}
	for _, s := range batch.All() {
		t.Rows = append(t.Rows, []interface{}{
			s.Region,
			s.TotalCosts,
			s.MonthlyRevenue,
			s.Profit,
			fmt.Sprintf("%.1f%%", s.ProfitabilityPercent),
			string(s.ProfitabilityTier),
			s.BreakEvenCustomerCount,
			fmt.Sprintf("%.1f", s.CompetitionDensity),
			string(s.CompetitionTier),
			s.PaybackPeriod,
		})
	}
	return t
}

func (c *Reporter) Handle(batch *domain.SummaryBatch) error {
	if batch == nil {
		batch = domain.NewSummaryBatch()
	}

	switch c.format {
	case FormatJSON:
		enc := json.NewEncoder(c.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(adapters.MapSummaryBatchDomainToApi(batch))
	case FormatText:
		funcMap := template.FuncMap{
			"money": func(v float64) string { return FormatMoney(v, c.currency) },
		}
		t, err := template.New("summary").Funcs(funcMap).Parse(textTemplate)
		if err != nil {
			return fmt.Errorf("failed to parse template: %w", err)
		}
		return t.Execute(c.writer, batch.All())
	default:
		return RenderTable(c.writer, SummaryTable(batch, c.currency))
	}
}
