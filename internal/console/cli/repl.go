package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/fundry/console/internal/console/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	currentRole() session.Role
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	Goto(ctx context.Context, path string)
	Funds(ctx context.Context) error
	CreateFund(ctx context.Context) error
	Pledges(ctx context.Context) error
	CreatePledge(ctx context.Context) error
	AcceptPledge(ctx context.Context) error
	Handshakes(ctx context.Context) error
	Documents(ctx context.Context) error
	Notifications(ctx context.Context) error
	Chat(ctx context.Context) error
}

// commandAllowed is the role gate over the signed-in command set. The
// signed-out surface (help/register/login/goto/exit) is handled in the loop.
func commandAllowed(role session.Role, cmd string) bool {
	switch cmd {
	case "home", "funds", "pledges", "handshakes", "docs", "notifications", "chat", "logout":
		return role != session.RoleUnknown
	case "newfund":
		return role == session.RoleBusiness
	case "pledge":
		return role == session.RoleInvestor
	case "accept":
		return role == session.RoleAdmin || role == session.RoleBusiness
	default:
		return false
	}
}

func helpText(a execIface) string {
	if !a.isLoggedIn() {
		return "Available commands: register, login, goto <path>, exit"
	}
	cmds := []string{"home", "funds"}
	switch a.currentRole() {
	case session.RoleBusiness:
		cmds = append(cmds, "newfund", "pledges", "accept")
	case session.RoleInvestor:
		cmds = append(cmds, "pledge", "pledges")
	default:
		cmds = append(cmds, "pledges", "accept")
	}
	cmds = append(cmds, "handshakes", "docs", "notifications", "chat", "goto <path>", "logout", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}

// runREPL starts the console read–eval–print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown or role-blocked
// commands are reported back to the user. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fundry %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a))
			continue
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "goto":
			if len(args) == 0 {
				printlnFn("Usage: goto <path>")
				continue
			}
			a.Goto(ctx, args[0])
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !commandAllowed(a.currentRole(), cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}

		switch cmd {
		case "home":
			_ = a.Home(ctx)
		case "funds":
			_ = a.Funds(ctx)
		case "newfund":
			_ = a.CreateFund(ctx)
		case "pledges":
			_ = a.Pledges(ctx)
		case "pledge":
			_ = a.CreatePledge(ctx)
		case "accept":
			_ = a.AcceptPledge(ctx)
		case "handshakes":
			_ = a.Handshakes(ctx)
		case "docs":
			_ = a.Documents(ctx)
		case "notifications":
			_ = a.Notifications(ctx)
		case "chat":
			_ = a.Chat(ctx)
		case "logout":
			_ = a.Logout(ctx)
		}
	}
}
