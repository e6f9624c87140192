package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bankist/internal/bank"
	"bankist/internal/metrics"
	"bankist/internal/session"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive terminal banking session",
	Long: `Start an interactive session against an in-memory ledger seeded from the
configured seed file. Type 'help' for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := buildLedger(cfg)
		if err != nil {
			return err
		}
		sh := NewShell(l, session.NewManager(cfg.SessionTTL()), cmd.OutOrStdout())
		return sh.Run(os.Stdin)
	},
}

const shellHelp = `Commands:
  login USERNAME PIN       log in
  show                     show balance, movements and summary
  sort                     toggle sorting of movements
  transfer TO AMOUNT       transfer money to another user
  loan AMOUNT              request a loan
  close USERNAME PIN       close the current account
  logout                   end the session
  help                     show this help
  quit                     leave the shell`

// Shell 是 Ledger 的終端機 adapter。current 為 nil 代表尚未登入。
type Shell struct {
	ledger   *bank.Ledger
	sessions *session.Manager
	out      io.Writer
	st       styles
	current  *session.Session
}

// NewShell 建立終端機 adapter。
func NewShell(l *bank.Ledger, sm *session.Manager, out io.Writer) *Shell {
	return &Shell{ledger: l, sessions: sm, out: out, st: defaultStyles()}
}

// Run 逐行讀取指令直到 quit 或輸入結束。
func (sh *Shell) Run(in io.Reader) error {
	fmt.Fprintln(sh.out, "Bankist shell. Type 'help' for commands.")
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, sh.prompt())
		if !sc.Scan() {
			fmt.Fprintln(sh.out)
			return sc.Err()
		}
		if quit := sh.Exec(sc.Text()); quit {
			return nil
		}
	}
}

func (sh *Shell) prompt() string {
	if sh.current == nil {
		return "bankist> "
	}
	return sh.current.Username + "@bankist> "
}

// Exec 執行單行指令；回傳 true 表示結束 shell。
func (sh *Shell) Exec(line string) bool {
	f := strings.Fields(line)
	if len(f) == 0 {
		return false
	}
	cmd, args := strings.ToLower(f[0]), f[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
	case "login":
		sh.login(args)
	case "show", "sort", "transfer", "loan", "close", "logout":
		sess, ok := sh.active()
		if !ok {
			return false
		}
		sh.dispatch(cmd, sess, args)
	default:
		sh.fail(fmt.Errorf("unknown command %q (try 'help')", cmd))
	}
	return false
}

// active 回傳目前仍有效的 session；過期時自動登出。
func (sh *Shell) active() (session.Session, bool) {
	if sh.current == nil {
		sh.fail(session.ErrNoSession)
		return session.Session{}, false
	}
	sess, err := sh.sessions.Get(sh.current.ID)
	if err != nil {
		sh.current = nil
		sh.fail(fmt.Errorf("%w, please log in again", err))
		return session.Session{}, false
	}
	return sess, true
}

func (sh *Shell) dispatch(cmd string, sess session.Session, args []string) {
	switch cmd {
	case "show":
		sh.show(sess.Username, sess.Sorted)

	case "sort":
		sorted, err := sh.sessions.ToggleSort(sess.ID)
		if err != nil {
			sh.fail(err)
			return
		}
		sh.show(sess.Username, sorted)

	case "transfer":
		if len(args) != 2 {
			sh.fail(errors.New("usage: transfer TO AMOUNT"))
			return
		}
		amt, err := parseAmount(args[1])
		if err == nil {
			err = sh.ledger.Transfer(sess.Username, args[0], amt)
		}
		if metrics.Observe("transfer", err) != nil {
			sh.fail(err)
			return
		}
		sh.ok(fmt.Sprintf("Transferred %s to %s", money(amt), args[0]))
		sh.show(sess.Username, sess.Sorted)

	case "loan":
		if len(args) != 1 {
			sh.fail(errors.New("usage: loan AMOUNT"))
			return
		}
		amt, err := parseAmount(args[0])
		if err == nil {
			err = sh.ledger.RequestLoan(sess.Username, amt)
		}
		if metrics.Observe("loan", err) != nil {
			sh.fail(err)
			return
		}
		sh.ok(fmt.Sprintf("Loan of %s approved", money(amt)))
		sh.show(sess.Username, sess.Sorted)

	case "close":
		if len(args) != 2 {
			sh.fail(errors.New("usage: close USERNAME PIN"))
			return
		}
		pin, err := strconv.Atoi(args[1])
		if err == nil {
			err = sh.ledger.CloseAccount(sess.Username, args[0], pin)
		} else {
			err = bank.ErrAuthMismatch
		}
		if metrics.Observe("close", err) != nil {
			sh.fail(err)
			return
		}
		sh.sessions.EndAll(sess.Username)
		sh.current = nil
		sh.ok(fmt.Sprintf("Account %s closed", sess.Username))

	case "logout":
		sh.sessions.End(sess.ID)
		sh.current = nil
		sh.ok("Logged out")
	}
}

func (sh *Shell) login(args []string) {
	if len(args) != 2 {
		sh.fail(errors.New("usage: login USERNAME PIN"))
		return
	}
	pin, err := strconv.Atoi(args[1])
	var acc *bank.Account
	if err == nil {
		acc, err = sh.ledger.Authenticate(args[0], pin)
	}
	if metrics.Observe("login", err) != nil {
		sh.fail(errors.New("incorrect username or pin"))
		return
	}
	if sh.current != nil {
		sh.sessions.End(sh.current.ID)
	}
	sess := sh.sessions.Begin(acc.Username)
	sh.current = &sess
	sh.ok(fmt.Sprintf("Welcome back, %s", acc.FirstName()))
	sh.show(acc.Username, sess.Sorted)
}

func (sh *Shell) show(username string, sorted bool) {
	v, err := sh.ledger.View(username, sorted)
	if err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprint(sh.out, sh.st.renderView(v))
}

func (sh *Shell) ok(msg string) {
	fmt.Fprintln(sh.out, sh.st.OK.Render(msg))
}

func (sh *Shell) fail(err error) {
	fmt.Fprintln(sh.out, sh.st.Error.Render("rejected: "+err.Error()))
}

// parseAmount 將輸入轉成金額；非數字一律視為 ErrInvalidAmount。
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, bank.ErrInvalidAmount
	}
	return d, nil
}
