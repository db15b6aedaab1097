package app

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/localguide/internal/common"
	"github.com/ternarybob/localguide/internal/handlers"
	"github.com/ternarybob/localguide/internal/interfaces"
	"github.com/ternarybob/localguide/internal/services/auth"
	"github.com/ternarybob/localguide/internal/services/guide"
	"github.com/ternarybob/localguide/internal/services/mcp"
	"github.com/ternarybob/localguide/internal/services/places"
)

// ServerName is the MCP implementation name reported on initialize
const ServerName = "localguide"

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Upstream client
	PlacesService interfaces.PlacesClient

	// Tool orchestration
	GuideService *guide.Service
	ToolRouter   *mcp.ToolRouter
	MCPServer    *mcpserver.MCPServer

	// Bearer token gate
	AuthService *auth.Service

	// HTTP handlers
	MCPHandler *handlers.MCPHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.initServices(places.NewService(&cfg.PlacesAPI, logger))
	app.initHandlers()

	app.Logger.Info().
		Int("tools", len(mcp.Tools())).
		Str("places_base_url", cfg.PlacesAPI.BaseURL).
		Msg("Application initialized")

	return app, nil
}

// NewWithClient initializes the application around an existing places client
func NewWithClient(cfg *common.Config, client interfaces.PlacesClient, logger arbor.ILogger) *App {
	app := &App{
		Config: cfg,
		Logger: logger,
	}
	app.initServices(client)
	app.initHandlers()
	return app
}

func (a *App) initServices(client interfaces.PlacesClient) {
	a.PlacesService = client
	a.GuideService = guide.NewService(client, a.Logger)
	a.AuthService = auth.NewService(a.Config.Auth.Token, a.Logger)

	a.ToolRouter = mcp.NewToolRouter(a.GuideService, a.Logger)
	a.MCPServer = mcpserver.NewMCPServer(
		ServerName,
		common.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	a.ToolRouter.Register(a.MCPServer)
}

func (a *App) initHandlers() {
	a.MCPHandler = handlers.NewMCPHandler(a.ToolRouter, a.MCPServer, a.Logger)
}

// Close releases application resources
func (a *App) Close() error {
	a.Logger.Info().Msg("Application closed")
	return nil
}
