package cli

import (
	"bufio"
	"os"

	"github.com/fundry/console/internal/console/api"
	"github.com/fundry/console/internal/console/auth"
	"github.com/fundry/console/internal/console/config"
	"github.com/fundry/console/internal/console/models"
	"github.com/fundry/console/internal/console/session"
	"github.com/fundry/console/internal/logging"
)

// App wires the console together: session store, REST client, auth
// service, routing, and the interactive command surface.
type App struct {
	config   *config.Config
	store    session.Store
	client   api.Client
	authSvc  *auth.Service
	resolver *auth.Resolver
	log      logging.Logger
	reader   *bufio.Reader

	profile models.Profile
	// pendingPath remembers where an unauthenticated navigation wanted to
	// go, for a best-effort restore after sign-in.
	pendingPath string
}

// routeTable lists every page the console can render. Anything else falls
// back to the role default.
var routeTable = []string{
	auth.PathAdminInvestments,
	auth.PathBusinessDashboard,
	auth.PathInvestorDashboard,
	"/funds",
	"/pledges",
	"/handshakes",
	"/documents",
	"/notifications",
	"/chat",
}

func NewApp(c *config.Config, log logging.Logger) *App {
	store := session.NewMemoryStore()
	client := api.NewRESTClient(c.APIBaseURL, c.RequestTimeout, store)
	guard := auth.NewGuard(store, nil)

	return &App{
		config:   c,
		store:    store,
		client:   client,
		authSvc:  auth.NewService(client, store),
		resolver: auth.NewResolver(guard, store, routeTable),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Get().Token != ""
}

func (a *App) currentRole() session.Role {
	return a.store.Get().Role
}
