package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"bankist/internal/bank"
)

// styles 為終端機畫面的樣式。
type styles struct {
	Deposit    lipgloss.Style
	Withdrawal lipgloss.Style
	Label      lipgloss.Style
	Balance    lipgloss.Style
	Summary    lipgloss.Style
	Error      lipgloss.Style
	OK         lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Deposit:    lipgloss.NewStyle().Foreground(lipgloss.Color("#39b385")).Width(12),
		Withdrawal: lipgloss.NewStyle().Foreground(lipgloss.Color("#e52a5a")).Width(12),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		Balance:    lipgloss.NewStyle().Bold(true),
		Summary:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		OK:         lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + "€"
}

// renderView 輸出帳戶畫面：餘額、異動列（最新在上）與摘要框。
func (st styles) renderView(v bank.View) string {
	var b strings.Builder

	order := "insertion order"
	if v.Sorted {
		order = "sorted ascending"
	}
	fmt.Fprintf(&b, "%s %s\n", st.Label.Render("Current balance"), st.Balance.Render(money(v.Summary.Balance)))
	fmt.Fprintf(&b, "%s\n", st.Label.Render("Movements ("+order+")"))

	for i := len(v.Movements) - 1; i >= 0; i-- {
		r := v.Movements[i]
		kind := st.Withdrawal
		if r.Kind == bank.KindDeposit {
			kind = st.Deposit
		}
		fmt.Fprintf(&b, "  %3d %s %12s\n", r.Index+1, kind.Render(string(r.Kind)), money(r.Amount))
	}

	sum := fmt.Sprintf("In %s   Out %s   Interest %s",
		money(v.Summary.TotalDeposits), money(v.Summary.TotalWithdrawals), money(v.Summary.TotalInterest))
	b.WriteString(st.Summary.Render(sum))
	b.WriteString("\n")
	return b.String()
}

// writeAccountsTable 以表格列出帳戶。
func writeAccountsTable(w io.Writer, accts []*bank.Account) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("OWNER", "USERNAME", "BALANCE", "RATE %", "MOVEMENTS")
	for _, a := range accts {
		t.Row(a.Owner, a.Username, money(a.Balance()), a.InterestRate.String(), fmt.Sprint(len(a.Movements)))
	}
	fmt.Fprintln(w, t.String())
}
