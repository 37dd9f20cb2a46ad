// Package console is the line-oriented operator shell over the ledger.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/ledger"
	"loan-ledger/pkg/mask"
)

var errUsage = errors.New("usage")

// Shell reads one command per line from in and writes results to out.
type Shell struct {
	in      *bufio.Scanner
	out     io.Writer
	session *ledger.Session
	auth    ledger.AuthGateway
	gw      ledger.Gateway
	view    *ledger.ClientsView
	timeout time.Duration
}

// DefaultTimeout bounds one remote call when New is given no timeout.
const DefaultTimeout = 15 * time.Second

// New builds a shell whose remote calls each get timeout. A non-positive
// timeout means DefaultTimeout.
func New(in io.Reader, out io.Writer, session *ledger.Session, auth ledger.AuthGateway, gw ledger.Gateway, timeout time.Duration) *Shell {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Shell{
		in:      bufio.NewScanner(in),
		out:     out,
		session: session,
		auth:    auth,
		gw:      gw,
		view:    ledger.NewClientsView(gw),
		timeout: timeout,
	}
}

type command struct {
	usage string
	auth  bool
	// prompts commands read operator input and start their own deadline
	// once it is in.
	prompts bool
	run     func(s *Shell, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"login":    {usage: "login <email> <password>", run: (*Shell).login},
		"logout":   {usage: "logout", run: (*Shell).logout},
		"register": {usage: "register <name> <email> <password>", run: (*Shell).register},
		"forgot":   {usage: "forgot <email>", run: (*Shell).forgot},
		"reset":    {usage: "reset <token> <password>", run: (*Shell).reset},
		"list":     {usage: "list [page]", auth: true, run: (*Shell).list},
		"filter":   {usage: "filter [name=..] [status=all|debtor|paid] [date=YYYY-MM-DD]", auth: true, run: (*Shell).filter},
		"clear":    {usage: "clear", auth: true, run: (*Shell).clear},
		"show":     {usage: "show <id>", auth: true, run: (*Shell).show},
		"create":   {usage: "create field=value ...", auth: true, run: (*Shell).create},
		"update":   {usage: "update <id> field=value ...", auth: true, run: (*Shell).update},
		"delete":   {usage: "delete <id>", auth: true, prompts: true, run: (*Shell).delete},
		"summary":  {usage: "summary", auth: true, run: (*Shell).summary},
		"help":     {usage: "help", run: (*Shell).help},
	}
}

// Run processes lines until quit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("loan ledger console. Type help for commands.\n")
	for {
		s.prompt()
		if !s.in.Scan() {
			return s.in.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := s.Exec(ctx, s.in.Text()); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the shell should stop.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	args, err := splitArgs(line)
	if err != nil {
		s.printf("error: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	name := strings.ToLower(args[0])
	if name == "quit" || name == "exit" {
		return true
	}
	cmd, ok := commands[name]
	if !ok {
		s.printf("unknown command %q. Type help for commands.\n", args[0])
		return false
	}
	if cmd.auth && !s.session.Authenticated() {
		s.printf("Please log in first.\n")
		return false
	}

	if !cmd.prompts {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := cmd.run(s, ctx, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			s.printf("usage: %s\n", cmd.usage)
		} else {
			s.printf("%s\n", ledger.Message(err))
		}
	}
	return false
}

func (s *Shell) prompt() {
	if op, ok := s.session.Operator(); ok {
		s.printf("%s> ", op.Email)
		return
	}
	s.printf("> ")
}

func (s *Shell) printf(format string, a ...any) { fmt.Fprintf(s.out, format, a...) }

func (s *Shell) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	op, err := s.session.SignIn(ctx, s.auth, args[0], args[1])
	if err != nil {
		return err
	}
	s.printf("Welcome, %s.\n", op.Name)
	return s.view.Refresh(ctx)
}

func (s *Shell) logout(context.Context, []string) error {
	s.session.Logout()
	s.view = ledger.NewClientsView(s.gw)
	s.printf("Logged out.\n")
	return nil
}

func (s *Shell) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	op, err := s.auth.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	s.printf("Account created for %s. You can log in now.\n", op.Email)
	return nil
}

func (s *Shell) forgot(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := s.auth.ForgotPassword(ctx, args[0]); err != nil {
		return err
	}
	s.printf("If the e-mail is registered, a reset token was sent.\n")
	return nil
}

func (s *Shell) reset(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := s.auth.ResetPassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	s.printf("Password changed.\n")
	return nil
}

func (s *Shell) list(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 1 {
		return errUsage
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errUsage
		}
		page = n
	}
	if err := s.view.Refresh(ctx); err != nil {
		return err
	}
	s.render(s.view.Visible(), page)
	return nil
}

func (s *Shell) filter(_ context.Context, args []string) error {
	c := s.view.Criteria()
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return errUsage
		}
		switch strings.ToLower(k) {
		case "name":
			c.Name = v
		case "date":
			c.Date = v
		case "status":
			st, err := loan.ParseFilterStatus(v)
			if err != nil {
				s.printf("%v\n", err)
				return nil
			}
			c.Status = st
		default:
			return errUsage
		}
	}
	s.render(s.view.SetCriteria(c), 1)
	return nil
}

func (s *Shell) clear(context.Context, []string) error {
	s.render(s.view.SetCriteria(loan.NoFilter()), 1)
	return nil
}

func (s *Shell) show(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	r, ok := s.view.Find(args[0])
	if !ok {
		return ledger.ErrNotFound
	}
	s.detail(r)
	return nil
}

func (s *Shell) create(ctx context.Context, args []string) error {
	f := ledger.NewForm()
	if err := fill(f, args); err != nil {
		return err
	}
	saved, err := s.view.Create(ctx, f)
	if saved.ClientID != "" {
		s.printf("Created %s (monthly %s).\n", saved.ClientID, mask.BRL(saved.MonthlyPaid))
	}
	return err
}

func (s *Shell) update(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	cur, ok := s.view.Find(args[0])
	if !ok {
		return ledger.ErrNotFound
	}
	f := ledger.FormFromRecord(cur)
	if err := fill(f, args[1:]); err != nil {
		return err
	}
	saved, err := s.view.Update(ctx, args[0], f)
	if saved.ClientID != "" {
		s.printf("Updated %s.\n", saved.ClientID)
	}
	return err
}

func (s *Shell) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	r, ok := s.view.Find(args[0])
	if !ok {
		return ledger.ErrNotFound
	}
	s.printf("Delete %s (%s)? Type \"yes\" to confirm: ", r.Name, mask.FormatCPF(r.CPF))
	confirmed := s.in.Scan() && strings.TrimSpace(s.in.Text()) == "yes"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.view.Delete(ctx, r.ClientID, confirmed); err != nil {
		return err
	}
	s.printf("Deleted %s.\n", r.ClientID)
	return nil
}

func (s *Shell) summary(ctx context.Context, _ []string) error {
	if err := s.view.Refresh(ctx); err != nil {
		return err
	}
	sum := ledger.Summarize(s.view.Records())
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Clients\t%d\n", sum.Clients)
	fmt.Fprintf(w, "Debtors\t%d\n", sum.Debtors)
	fmt.Fprintf(w, "Total lent\t%s\n", mask.BRL(sum.TotalLent))
	fmt.Fprintf(w, "Total received\t%s\n", mask.BRL(sum.TotalReceived))
	fmt.Fprintf(w, "Expected monthly\t%s\n", mask.BRL(sum.ExpectedMonthly))
	return w.Flush()
}

func (s *Shell) help(context.Context, []string) error {
	names := []string{"login", "logout", "register", "forgot", "reset", "list", "filter", "clear",
		"show", "create", "update", "delete", "summary", "help"}
	for _, n := range names {
		s.printf("  %s\n", commands[n].usage)
	}
	s.printf("  quit\n")
	s.printf("fields: %s\n", strings.Join(ledger.Fields, ", "))
	return nil
}

// fill feeds assignments through the form one at a time, in argument order.
func fill(f *ledger.Form, args []string) error {
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return errUsage
		}
		if _, err := f.Set(k, v); err != nil {
			return fmt.Errorf("%w %q", err, k)
		}
	}
	return nil
}
