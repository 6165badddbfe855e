package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kazan() domain.FinancialSummary {
	return domain.FinancialSummary{
		Region:                 "Kazan",
		TotalCosts:             127000,
		MonthlyRevenue:         90000,
		Profit:                 -37000,
		ProfitabilityPercent:   -41.1,
		ProfitabilityTier:      domain.ProfitabilityLow,
		BreakEvenCustomerCount: 85,
		CompetitionDensity:     9.0,
		CompetitionTier:        domain.CompetitionMedium,
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "text", "json"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestSummaryTable(t *testing.T) {
	table := SummaryTable(domain.NewSummaryBatch(kazan()), "₽")

	require.Len(t, table.Rows, 1)
	assert.Equal(t, SummaryHeaders, table.Headers)
	assert.Equal(t, []interface{}{
		"Kazan", 127000.0, 90000.0, -37000.0, "-41.1%", "low", 85, "9.0", "medium", domain.Payback{},
	}, table.Rows[0])
	assert.True(t, table.IsCurrencyColumn(3))
	assert.False(t, table.IsCurrencyColumn(4))
}

func TestReporter_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "₽", FormatTableView)

	require.NoError(t, r.Handle(domain.NewSummaryBatch(kazan())))

	out := buf.String()
	assert.Contains(t, out, "127 000 ₽")
	assert.Contains(t, out, "-37 000 ₽")
	assert.Contains(t, out, "no payback")
	assert.Contains(t, out, "-41.1%")
}

func TestReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "₽", FormatText)

	require.NoError(t, r.Handle(domain.NewSummaryBatch(kazan())))

	out := buf.String()
	assert.Contains(t, out, "=== Kazan ===")
	assert.Contains(t, out, "Profitability:        -41.1% (low)")
	assert.Contains(t, out, "Payback, months:      no payback")
}

func TestReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "₽", FormatJSON)

	require.NoError(t, r.Handle(domain.NewSummaryBatch(kazan())))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Kazan", decoded[0]["region"])
	assert.Equal(t, "no payback", decoded[0]["payback_period_months"])
}

func TestReporter_NilBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, "₽", FormatJSON).Handle(nil))
	assert.JSONEq(t, "[]", buf.String())
}
