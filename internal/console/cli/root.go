package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/fundry/console/internal/console/chat"
)

func (a *App) getStatus() string {
	s := ""
	if a.profile.Email != "" {
		s = a.profile.Email + " "
	}
	if role := a.currentRole(); role != "" {
		s += string(role)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run starts the interactive console. A background feed watches the
// notification endpoint and announces unread items between commands; it
// only polls while a session exists.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to the Fundry console (type 'help' for commands)")

	feed := chat.NewFeed(a.client, a.config.PollInterval, a.isLoggedIn, func(unread int) {
		if unread > 0 {
			fmt.Printf("(%d unread notifications — see 'notifications')\n", unread)
		}
	}, a.log)
	// the initial fetch runs signed out and fails; background ticks pick
	// up once a login succeeds
	_ = feed.Open(ctx)
	defer feed.Close()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
