package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/ledger"
	"loan-ledger/pkg/mask"
)

func (s *Shell) render(rows []loan.Record, page int) {
	visible, pages := ledger.Page(rows, page)
	if page > pages {
		page = pages
	}
	if len(visible) == 0 {
		s.printf("No clients found.\n")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCPF\tVALUE\tRATE\tMONTHLY\tPAID\tLATE\tNEXT PAYMENT\tSTATUS")
	for _, r := range visible {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\t%s\t%d/%d\t%d\t%s\t%s\n",
			r.ClientID, r.Name, mask.FormatCPF(r.CPF),
			mask.BRL(r.Value), r.LoanInterest.String(), mask.BRL(r.MonthlyPaid),
			r.InstallmentsPaid, r.Installments, r.LateInstallments,
			mask.Date(r.NextPaymentDate), r.Status().Label())
	}
	_ = w.Flush()
	s.printf("page %d/%d, %d of %d clients\n", page, pages, len(visible), len(rows))
}

func (s *Shell) detail(r loan.Record) {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"ID", r.ClientID},
		{"Name", r.Name},
		{"E-mail", r.Email},
		{"CPF", mask.FormatCPF(r.CPF)},
		{"Phone", mask.FormatPhone(r.Phone)},
		{"Address", r.Address},
		{"Value", mask.BRL(r.Value)},
		{"Interest", r.LoanInterest.String() + "%"},
		{"Monthly", mask.BRL(r.MonthlyPaid)},
		{"Installments", strconv.Itoa(r.InstallmentsPaid) + "/" + strconv.Itoa(r.Installments)},
		{"Late", strconv.Itoa(r.LateInstallments)},
		{"Received", mask.BRL(r.ValuePaid)},
		{"Loan date", mask.Date(&r.LoanDate)},
		{"Next payment", mask.Date(r.NextPaymentDate)},
		{"Last payment", mask.Date(r.LastPaymentDate)},
		{"Monthly fee paid", yesNo(r.MonthlyFeePaid)},
		{"Debt paid off", yesNo(r.TotalDebtPaid)},
		{"Status", r.Status().Label()},
		{"Observations", r.Observations},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// splitArgs splits on spaces and keeps double-quoted runs together, so
// name="Maria Silva" is one argument.
func splitArgs(line string) ([]string, error) {
	var (
		out    []string
		cur    strings.Builder
		quoted bool
		inArg  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			inArg = true
		case (r == ' ' || r == '\t') && !quoted:
			if inArg {
				out = append(out, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if inArg {
		out = append(out, cur.String())
	}
	return out, nil
}
