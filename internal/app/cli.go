package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/you/wifiattend/domain"
	"github.com/you/wifiattend/internal/infrastructure/auth"
)

// QRRenderer draws QR payloads for the teacher
type QRRenderer interface {
	Terminal(text string) (string, error)
	WriteFile(text, path string) error
}

// CLI runs one command line against the services
type CLI struct {
	auth       domain.AuthService
	otp        domain.OTPSessionService
	attendance domain.AttendanceService
	schedule   domain.ScheduleService
	policy     domain.PolicyService
	scanner    domain.QRScanner
	renderer   QRRenderer
	out        io.Writer
}

// NewCLI creates a CLI over the container's services
func NewCLI(c *Container, out io.Writer) *CLI {
	return &CLI{
		auth:       c.AuthSvc,
		otp:        c.OTPSvc,
		attendance: c.AttendanceSvc,
		schedule:   c.ScheduleSvc,
		policy:     c.PolicySvc,
		scanner:    c.Scanner,
		renderer:   c.Renderer,
		out:        out,
	}
}

type command struct {
	resource string
	action   string
	usage    string
	run      func(ctx context.Context, args []string) error
}

func (c *CLI) commands() map[string]command {
	return map[string]command{
		"login": {
			resource: auth.ResourceSession, action: auth.ActionLogin,
			usage: "login teacher -email E -password P | login student -roll R -password P",
			run:   c.login,
		},
		"logout": {resource: auth.ResourceSession, action: auth.ActionLogout, usage: "logout", run: c.logout},
		"whoami": {resource: auth.ResourceSession, action: auth.ActionWhoami, usage: "whoami", run: c.whoami},
		"otp": {
			resource: auth.ResourceOTP,
			usage:    "otp generate [-png FILE] | otp show [-png FILE] | otp end",
			run:      c.otpCommand,
		},
		"attend": {
			resource: auth.ResourceAttendance, action: auth.ActionMark,
			usage: "attend CODE | attend -code CODE | attend -qr PAYLOAD | attend -scan",
			run:   c.attend,
		},
		"schedule": {resource: auth.ResourceSchedule, action: auth.ActionRead, usage: "schedule", run: c.showSchedule},
		"history":  {resource: auth.ResourceAttendance, action: auth.ActionHistory, usage: "history", run: c.history},
	}
}

// Run executes args and prints the outcome. The returned error is the
// command's failure, already reported to the user.
func (c *CLI) Run(ctx context.Context, args []string) error {
	role, err := c.execute(ctx, args)
	if err != nil {
		fmt.Fprintln(c.out, UserMessage(err, role))
	}
	return err
}

// execute returns the role to name in a failure message with the error
func (c *CLI) execute(ctx context.Context, args []string) (domain.Role, error) {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		c.printHelp()
		return "", nil
	}

	cmds := c.commands()
	cmd, ok := cmds[args[0]]
	if !ok {
		return "", fmt.Errorf("%w: unknown command %q, try help", ErrUsage, args[0])
	}

	role := c.currentRole(ctx)
	action := cmd.action
	if args[0] == "otp" {
		if len(args) < 2 {
			return role, fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
		}
		action = args[1]
		if action != auth.ActionGenerate && action != auth.ActionShow && action != auth.ActionEnd {
			return role, fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
		}
	}

	allowed, err := c.policy.CheckPermission(string(role), cmd.resource, action)
	if err != nil {
		return role, err
	}
	if !allowed {
		if args[0] == "login" {
			return role, ErrAlreadySignedIn
		}
		if role == "" {
			return role, domain.ErrNotSignedIn
		}
		return role, fmt.Errorf("%w: %s %s", ErrNotPermitted, cmd.resource, action)
	}

	if args[0] == "login" && len(args) > 1 {
		role = domain.Role(args[1])
	}
	return role, cmd.run(ctx, args[1:])
}

func (c *CLI) currentRole(ctx context.Context) domain.Role {
	id, err := c.auth.Current(ctx)
	if err != nil || id == nil {
		return ""
	}
	return id.Role
}

func (c *CLI) printHelp() {
	cmds := c.commands()
	fmt.Fprintln(c.out, "commands:")
	for _, name := range []string{"login", "logout", "whoami", "otp", "attend", "schedule", "history"} {
		fmt.Fprintf(c.out, "  %s\n", cmds[name].usage)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func usageError(usage string, err error) error {
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		return fmt.Errorf("%w: %s (%v)", ErrUsage, usage, err)
	}
	return fmt.Errorf("%w: %s", ErrUsage, usage)
}

func (c *CLI) login(ctx context.Context, args []string) error {
	const usage = "login teacher -email E -password P | login student -roll R -password P"
	if len(args) == 0 {
		return usageError(usage, nil)
	}

	fs := newFlagSet("login")
	email := fs.String("email", "", "teacher email")
	roll := fs.String("roll", "", "student roll number")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args[1:]); err != nil {
		return usageError(usage, err)
	}

	var (
		id  *domain.Identity
		err error
	)
	switch domain.Role(args[0]) {
	case domain.RoleTeacher:
		id, err = c.auth.LoginTeacher(ctx, *email, *password)
	case domain.RoleStudent:
		id, err = c.auth.LoginStudent(ctx, *roll, *password)
	default:
		return usageError(usage, nil)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Signed in as %s\n", describeIdentity(id))
	return nil
}

func (c *CLI) logout(ctx context.Context, args []string) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Signed out")
	return nil
}

func (c *CLI) whoami(ctx context.Context, args []string) error {
	id, err := c.auth.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, describeIdentity(id))
	return nil
}

func describeIdentity(id *domain.Identity) string {
	contact := id.Profile.Email
	if id.Role == domain.RoleStudent {
		contact = id.Profile.RollNo
	}
	return fmt.Sprintf("%s %s (%s)", id.Role, id.Profile.Name, contact)
}

func (c *CLI) otpCommand(ctx context.Context, args []string) error {
	const usage = "otp generate [-png FILE] | otp show [-png FILE] | otp end"
	if len(args) == 0 {
		return usageError(usage, nil)
	}

	fs := newFlagSet("otp")
	png := fs.String("png", "", "also write the QR code to this PNG file")
	if err := fs.Parse(args[1:]); err != nil {
		return usageError(usage, err)
	}

	switch args[0] {
	case auth.ActionGenerate:
		if _, err := c.otp.Generate(ctx); err != nil {
			return err
		}
		return c.showOTP(ctx, *png)
	case auth.ActionShow:
		return c.showOTP(ctx, *png)
	case auth.ActionEnd:
		if err := c.otp.End(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "OTP session ended")
		return nil
	}
	return usageError(usage, nil)
}

func (c *CLI) showOTP(ctx context.Context, pngPath string) error {
	session, err := c.otp.Active(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrNoActiveSession
	}
	payload, err := c.otp.QRPayload(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "OTP: %s\nWiFi: %s\n", session.OTP, session.SSID)
	code, err := c.renderer.Terminal(payload)
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, code)

	if pngPath != "" {
		if err := c.renderer.WriteFile(payload, pngPath); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "QR code written to %s\n", pngPath)
	}
	return nil
}

func (c *CLI) attend(ctx context.Context, args []string) error {
	const usage = "attend CODE | attend -code CODE | attend -qr PAYLOAD | attend -scan"

	fs := newFlagSet("attend")
	code := fs.String("code", "", "OTP shown by the teacher")
	payload := fs.String("qr", "", "scanned QR payload text")
	scan := fs.Bool("scan", false, "read the QR payload from the scanner")
	if err := fs.Parse(args); err != nil {
		return usageError(usage, err)
	}
	if *code == "" && fs.NArg() == 1 {
		*code = fs.Arg(0)
	}

	var chosen int
	for _, set := range []bool{*code != "", *payload != "", *scan} {
		if set {
			chosen++
		}
	}
	if chosen != 1 || fs.NArg() > 1 {
		return usageError(usage, nil)
	}

	var (
		record *domain.AttendanceRecord
		err    error
	)
	switch {
	case *scan:
		fmt.Fprintln(c.out, "Scan the QR code...")
		text, scanErr := c.scanner.Scan(ctx)
		if scanErr != nil {
			return scanErr
		}
		record, err = c.attendance.MarkFromQR(ctx, text)
	case *payload != "":
		record, err = c.attendance.MarkFromQR(ctx, *payload)
	default:
		record, err = c.attendance.Mark(ctx, strings.TrimSpace(*code))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Attendance marked: %s on %s\n", record.Status, record.SSID)
	return nil
}

func (c *CLI) showSchedule(ctx context.Context, args []string) error {
	entries, err := c.schedule.Today(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, domain.NextClassSummary(entries))
	for _, e := range entries {
		fmt.Fprintf(c.out, "  %-13s %-20s %s\n", e.Time, e.Subject, e.Room)
	}
	return nil
}

func (c *CLI) history(ctx context.Context, args []string) error {
	records, err := c.attendance.History(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(c.out, "No attendance records")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(c.out, "%s  student %-6s %-8s %s\n", r.Date.Display("2006-01-02 15:04"), r.StudentID, r.Status, r.SSID)
	}
	return nil
}
