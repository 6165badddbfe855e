package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/region-atlas/pkg/models/domain"
)

const thousandsSeparator = " "

type frame struct {
	left, mid, right, fill string
}

var (
	topFrame    = frame{"┌", "┬", "┐", "─"}
	middleFrame = frame{"├", "┼", "┤", "─"}
	bottomFrame = frame{"└", "┴", "┘", "─"}
)

// FormatMoney groups the integer part in thousands with spaces and appends
// the currency marker.
func FormatMoney(v float64, currency string) string {
	s := GroupThousands(v)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// GroupThousands renders integers without a fractional part and keeps the
// shortest exact fraction otherwise.
func GroupThousands(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	digits, frac, hasFrac := strings.Cut(strconv.FormatFloat(v, 'f', -1, 64), ".")
	grouped := groupDigits(digits)
	if hasFrac {
		return sign + grouped + "." + frac
	}
	return sign + grouped
}

func groupDigits(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.WriteString(digits[:min(head, len(digits))])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(thousandsSeparator)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func cellText(cell interface{}, currency string, money bool) string {
	if money {
		switch v := cell.(type) {
		case int:
			return FormatMoney(float64(v), currency)
		case int64:
			return FormatMoney(float64(v), currency)
		case float64:
			return FormatMoney(v, currency)
		}
	}
	if s, ok := cell.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(cell)
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(0, w-width(s)))
}

func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(0, w-width(s))) + s
}

// FormatTable renders t inside a box-drawing frame. Money columns are
// right-aligned, everything else left-aligned.
func FormatTable(t domain.Table) string {
	cells := make([][]string, len(t.Rows))
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = width(h)
	}

	for r, row := range t.Rows {
		cells[r] = make([]string, len(t.Headers))
		for i := range t.Headers {
			if i >= len(row) {
				continue
			}
			text := cellText(row[i], t.Currency, t.IsCurrencyColumn(i))
			cells[r][i] = text
			widths[i] = max(widths[i], width(text))
		}
	}

	line := func(f frame) string {
		segments := make([]string, len(widths))
		for i, w := range widths {
			segments[i] = strings.Repeat(f.fill, w+2)
		}
		return f.left + strings.Join(segments, f.mid) + f.right
	}

	formatRow := func(values []string, header bool) string {
		items := make([]string, len(values))
		for i, v := range values {
			if !header && t.IsCurrencyColumn(i) {
				items[i] = padLeft(v, widths[i])
			} else {
				items[i] = padRight(v, widths[i])
			}
		}
		return "│ " + strings.Join(items, " │ ") + " │"
	}

	lines := make([]string, 0, len(cells)+4)
	lines = append(lines, line(topFrame))
	lines = append(lines, formatRow(t.Headers, true))
	lines = append(lines, line(middleFrame))
	for _, row := range cells {
		lines = append(lines, formatRow(row, false))
	}
	lines = append(lines, line(bottomFrame))

	return strings.Join(lines, "\n")
}

func RenderTable(w io.Writer, t domain.Table) error {
	_, err := fmt.Fprintln(w, FormatTable(t))
	return err
}
