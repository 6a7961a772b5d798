package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fundry/console/internal/console/chat"
)

// Chat lists conversations, opens the chosen one, and runs the message
// loop. Plain input sends a message; slash commands control the view:
//
//	/up /down  — scroll through history
//	/read      — jump to the new-messages affordance target
//	/retry     — retry after a failed initial load
//	/back      — leave the conversation
func (a *App) Chat(ctx context.Context) error {
	convs, err := a.client.ListConversations(ctx)
	if err != nil {
		a.log.Warn(ctx, "listing conversations failed", "err", err)
		fmt.Println("Could not load conversations.")
		return err
	}
	if len(convs) == 0 {
		fmt.Println("No conversations.")
		return nil
	}

	fmt.Println("Conversations:")
	for _, c := range convs {
		fmt.Printf("  %-12s %-24s with %s\n", c.ID, c.Subject, c.PeerName)
	}

	id, err := getSimpleText(a.reader, "Conversation id", os.Stdout)
	if err != nil {
		return err
	}

	vp := newTermViewport(os.Stdout, a.profile.ID, 20, a.config.ScrollTolerance)

	// the conversation counts as visible only while this loop owns the
	// terminal; background ticks elsewhere are dropped
	var visible atomic.Bool
	visible.Store(true)
	defer visible.Store(false)

	view := chat.NewView(a.client, vp, chat.ViewConfig{
		ConversationID: id,
		PollInterval:   a.config.PollInterval,
		Visible:        visible.Load,
		SelfID:         a.profile.ID,
		SelfType:       strings.ToLower(string(a.currentRole())),
	}, a.log)
	defer view.Close()

	if err := view.Open(ctx); err != nil {
		fmt.Println("Could not load messages. Use /retry or /back.")
	}

	for {
		line, err := getSimpleText(a.reader, "", os.Stdout)
		if err != nil {
			return nil
		}

		switch {
		case line == "":
			continue
		case line == "/back":
			return nil
		case line == "/up":
			vp.ScrollUp()
		case line == "/down":
			vp.ScrollDown()
			if vp.AtBottom() {
				view.AcknowledgeNewMessages()
			}
		case line == "/read":
			view.AcknowledgeNewMessages()
		case line == "/retry":
			view.Resume()
		case strings.HasPrefix(line, "/"):
			fmt.Println("Commands: /up /down /read /retry /back")
		default:
			if view.LoadError() != nil {
				fmt.Println("Conversation not loaded yet. Use /retry first.")
				continue
			}
			if err := view.Send(ctx, line); err != nil {
				// the composed text stays on screen for resubmission
				fmt.Printf("Not sent (try again): %s\n", line)
			}
		}
	}
}
