package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fundry/console/internal/console/auth"
	"github.com/fundry/console/internal/console/models"
)

// Goto resolves a navigation through the guard and route table and renders
// the resulting page. Unauthenticated navigations remember the requested
// path so a successful login can land there.
func (a *App) Goto(ctx context.Context, path string) {
	d := a.resolver.Resolve(path)
	switch d.Outcome {
	case auth.OutcomeRedirectSignIn:
		a.pendingPath = d.RequestedPath
		fmt.Println("Please sign in first (command: login).")
	default:
		a.renderPage(ctx, d.Path)
	}
}

// Home is "navigate nowhere in particular": the resolver falls back to the
// role default.
func (a *App) Home(ctx context.Context) error {
	a.Goto(ctx, "/")
	return nil
}

func (a *App) renderPage(ctx context.Context, path string) {
	switch path {
	case auth.PathSignIn:
		fmt.Println("Use 'login' to sign in or 'register' to create an account.")
	case auth.PathAdminInvestments:
		fmt.Println("== Investments overview ==")
		a.listFunds(ctx)
		a.listHandshakes(ctx)
	case auth.PathBusinessDashboard:
		fmt.Println("== Business dashboard ==")
		a.listFunds(ctx)
		a.listPledges(ctx)
	case auth.PathInvestorDashboard:
		fmt.Println("== Investor dashboard ==")
		a.listFunds(ctx)
		a.listPledges(ctx)
	case "/funds":
		a.listFunds(ctx)
	case "/pledges":
		a.listPledges(ctx)
	case "/handshakes":
		a.listHandshakes(ctx)
	case "/documents":
		a.listDocuments(ctx)
	case "/notifications":
		a.listNotifications(ctx)
	case "/chat":
		_ = a.Chat(ctx)
	default:
		fmt.Println("Nothing to show at", path)
	}
}

func (a *App) Funds(ctx context.Context) error {
	a.listFunds(ctx)
	return nil
}

func (a *App) listFunds(ctx context.Context) {
	funds, err := a.client.ListFunds(ctx)
	if err != nil {
		a.log.Warn(ctx, "listing funds failed", "err", err)
		fmt.Println("Could not load funds.")
		return
	}
	if len(funds) == 0 {
		fmt.Println("No funds.")
		return
	}
	fmt.Println("Funds:")
	for _, f := range funds {
		fmt.Printf("  %-12s %-28s %10s / %-10s %s\n",
			f.ID, f.Title, cents(f.RaisedCents), cents(f.TargetCents), f.Status)
	}
}

// CreateFund interactively creates a fundraising campaign (business role).
func (a *App) CreateFund(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Fund title", os.Stdout)
	if err != nil {
		return err
	}
	targetStr, err := getSimpleText(a.reader, "Target amount (whole currency units)", os.Stdout)
	if err != nil {
		return err
	}
	target, err := strconv.ParseInt(targetStr, 10, 64)
	if err != nil || target <= 0 {
		fmt.Println("Target must be a positive number.")
		return nil
	}

	created, err := a.client.CreateFund(ctx, models.Fund{Title: title, TargetCents: target * 100})
	if err != nil {
		a.log.Warn(ctx, "fund creation failed", "err", err)
		fmt.Println("Could not create fund.")
		return err
	}
	fmt.Printf("Created fund %s.\n", created.ID)
	return nil
}

func (a *App) Pledges(ctx context.Context) error {
	a.listPledges(ctx)
	return nil
}

func (a *App) listPledges(ctx context.Context) {
	pledges, err := a.client.ListPledges(ctx)
	if err != nil {
		a.log.Warn(ctx, "listing pledges failed", "err", err)
		fmt.Println("Could not load pledges.")
		return
	}
	if len(pledges) == 0 {
		fmt.Println("No pledges.")
		return
	}
	fmt.Println("Pledges:")
	for _, p := range pledges {
		fmt.Printf("  %-12s fund=%-12s %10s %s\n", p.ID, p.FundID, cents(p.AmountCents), p.Status)
	}
}

// CreatePledge interactively pledges against a fund (investor role).
func (a *App) CreatePledge(ctx context.Context) error {
	fundID, err := getSimpleText(a.reader, "Fund id", os.Stdout)
	if err != nil {
		return err
	}
	amountStr, err := getSimpleText(a.reader, "Amount (whole currency units)", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil || amount <= 0 {
		fmt.Println("Amount must be a positive number.")
		return nil
	}

	created, err := a.client.CreatePledge(ctx, models.Pledge{FundID: fundID, AmountCents: amount * 100})
	if err != nil {
		a.log.Warn(ctx, "pledge creation failed", "err", err)
		fmt.Println("Could not create pledge.")
		return err
	}
	fmt.Printf("Pledged %s against fund %s (pledge %s).\n", cents(created.AmountCents), fundID, created.ID)
	return nil
}

// AcceptPledge confirms a pledge, producing a handshake.
func (a *App) AcceptPledge(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Pledge id", os.Stdout)
	if err != nil {
		return err
	}
	hs, err := a.client.AcceptPledge(ctx, id)
	if err != nil {
		a.log.Warn(ctx, "pledge accept failed", "pledge", id, "err", err)
		fmt.Println("Could not accept pledge.")
		return err
	}
	fmt.Printf("Handshake %s signed for %s.\n", hs.ID, cents(hs.AmountCents))
	return nil
}

func (a *App) Handshakes(ctx context.Context) error {
	a.listHandshakes(ctx)
	return nil
}

func (a *App) listHandshakes(ctx context.Context) {
	hss, err := a.client.ListHandshakes(ctx)
	if err != nil {
		a.log.Warn(ctx, "listing handshakes failed", "err", err)
		fmt.Println("Could not load handshakes.")
		return
	}
	if len(hss) == 0 {
		fmt.Println("No handshakes.")
		return
	}
	fmt.Println("Handshakes:")
	for _, h := range hss {
		fmt.Printf("  %-12s fund=%-12s %10s signed %s\n",
			h.ID, h.FundID, cents(h.AmountCents), h.SignedAt.Format("2006-01-02"))
	}
}

func (a *App) Documents(ctx context.Context) error {
	a.listDocuments(ctx)
	return nil
}

func (a *App) listDocuments(ctx context.Context) {
	docs, err := a.client.ListDocuments(ctx)
	if err != nil {
		a.log.Warn(ctx, "listing documents failed", "err", err)
		fmt.Println("Could not load documents.")
		return
	}
	if len(docs) == 0 {
		fmt.Println("No documents.")
		return
	}
	fmt.Println("Owner documents:")
	for _, d := range docs {
		fmt.Printf("  %-12s %-10s %-24s %s\n", d.ID, d.Kind, d.FileName, d.Status)
	}
}

func (a *App) Notifications(ctx context.Context) error {
	a.listNotifications(ctx)
	return nil
}

func (a *App) listNotifications(ctx context.Context) {
	items, err := a.client.ListNotifications(ctx)
	if err != nil {
		a.log.Warn(ctx, "listing notifications failed", "err", err)
		fmt.Println("Could not load notifications.")
		return
	}
	if len(items) == 0 {
		fmt.Println("No notifications.")
		return
	}
	for _, n := range items {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("  %s %-24s %s\n", marker, n.Subject, n.Body)
	}
}

func cents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}
