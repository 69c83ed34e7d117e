package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/lookup"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/placement"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToursURI is the resource listing every tour definition.
const ToursURI = "waypoint://tours"

// PlacementArgs are the arguments of compute_placement.
type PlacementArgs struct {
	TargetTop      float64  `json:"target_top"`
	TargetLeft     float64  `json:"target_left"`
	TargetWidth    float64  `json:"target_width"`
	TargetHeight   float64  `json:"target_height"`
	CalloutWidth   float64  `json:"callout_width"`
	CalloutHeight  float64  `json:"callout_height"`
	ViewportWidth  float64  `json:"viewport_width"`
	ViewportHeight float64  `json:"viewport_height"`
	Offset         *float64 `json:"offset,omitempty"`
	Margin         *float64 `json:"margin,omitempty"`
}

// TourArgs identify a tour.
type TourArgs struct {
	ID string `json:"id"`
}

// TourList is the result of list_tours.
type TourList struct {
	Tours []string `json:"tours" jsonschema_description:"Known tour IDs, sorted"`
}

// Completion is the result of tour_status and reset_tour.
type Completion struct {
	TourID    string `json:"tour_id"`
	Completed bool   `json:"completed" jsonschema_description:"Whether the tour was finished before"`
}

// Server exposes tours and the placement computation as MCP tools.
type Server struct {
	loader    ports.TourLoader
	store     ports.CompletionStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil store keeps completion
// flags in memory.
func NewServer(loader ports.TourLoader, store ports.CompletionStore) *Server {
	if store == nil {
		store = memory.NewStore()
	}
	s := &Server{
		loader: loader,
		store:  store,
		mcpServer: server.NewMCPServer("waypoint-mcp", strings.TrimSpace(waypoint.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("compute_placement",
		mcp.WithDescription("Compute where a callout goes next to its target element. All values are CSS pixels in viewport coordinates."),
		mcp.WithNumber("target_top", mcp.Required(), mcp.Description("Top edge of the target")),
		mcp.WithNumber("target_left", mcp.Required(), mcp.Description("Left edge of the target")),
		mcp.WithNumber("target_width", mcp.Required(), mcp.Description("Width of the target")),
		mcp.WithNumber("target_height", mcp.Required(), mcp.Description("Height of the target")),
		mcp.WithNumber("callout_width", mcp.Required(), mcp.Description("Natural width of the callout")),
		mcp.WithNumber("callout_height", mcp.Required(), mcp.Description("Natural height of the callout")),
		mcp.WithNumber("viewport_width", mcp.Required(), mcp.Description("Viewport width")),
		mcp.WithNumber("viewport_height", mcp.Required(), mcp.Description("Viewport height")),
		mcp.WithNumber("offset", mcp.Description("Gap between target and callout (default 8)")),
		mcp.WithNumber("margin", mcp.Description("Minimum distance to the viewport edges (default 8)")),
		mcp.WithOutputSchema[domain.Placement](),
	), mcp.NewStructuredToolHandler(s.handleComputePlacement))

	s.mcpServer.AddTool(mcp.NewTool("list_tours",
		mcp.WithDescription("List the IDs of all available tours."),
		mcp.WithOutputSchema[TourList](),
	), mcp.NewStructuredToolHandler(s.handleListTours))

	s.mcpServer.AddTool(mcp.NewTool("get_tour",
		mcp.WithDescription("Get a tour definition: its steps (selector and text), theme and auto-scroll setting."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Tour ID")),
		mcp.WithOutputSchema[domain.Tour](),
	), mcp.NewStructuredToolHandler(s.handleGetTour))

	s.mcpServer.AddTool(mcp.NewTool("tour_status",
		mcp.WithDescription("Report whether a tour was completed."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Tour ID")),
		mcp.WithOutputSchema[Completion](),
	), mcp.NewStructuredToolHandler(s.handleTourStatus))

	s.mcpServer.AddTool(mcp.NewTool("reset_tour",
		mcp.WithDescription("Clear a tour's completion flag so it starts again."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Tour ID")),
		mcp.WithOutputSchema[Completion](),
	), mcp.NewStructuredToolHandler(s.handleResetTour))
}

func (s *Server) handleComputePlacement(ctx context.Context, request mcp.CallToolRequest, args PlacementArgs) (domain.Placement, error) {
	if args.ViewportWidth <= 0 || args.ViewportHeight <= 0 {
		return domain.Placement{}, errors.New("viewport must have positive width and height")
	}
	in := placement.DefaultInput(
		domain.Rect{Top: args.TargetTop, Left: args.TargetLeft, Width: args.TargetWidth, Height: args.TargetHeight},
		domain.Size{Width: args.CalloutWidth, Height: args.CalloutHeight},
		domain.Viewport{Width: args.ViewportWidth, Height: args.ViewportHeight},
	)
	if args.Offset != nil {
		in.Offset = *args.Offset
	}
	if args.Margin != nil {
		in.Margin = *args.Margin
	}
	return placement.Compute(in), nil
}

func (s *Server) handleListTours(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (TourList, error) {
	if s.loader == nil {
		return TourList{Tours: []string{}}, nil
	}
	ids, err := s.loader.ListTours()
	if err != nil {
		return TourList{}, fmt.Errorf("list tours: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return TourList{Tours: ids}, nil
}

func (s *Server) handleGetTour(ctx context.Context, request mcp.CallToolRequest, args TourArgs) (domain.Tour, error) {
	if s.loader == nil {
		return domain.Tour{}, fmt.Errorf("%w: %q", domain.ErrTourNotFound, args.ID)
	}
	return lookup.Tour(s.loader, args.ID)
}

func (s *Server) handleTourStatus(ctx context.Context, request mcp.CallToolRequest, args TourArgs) (Completion, error) {
	if args.ID == "" {
		return Completion{}, errors.New("id is required")
	}
	v, ok, err := s.store.Get(ctx, domain.CompletionKey(args.ID))
	if err != nil {
		return Completion{}, fmt.Errorf("read completion: %w", err)
	}
	return Completion{TourID: args.ID, Completed: ok && v == domain.CompletionValue}, nil
}

func (s *Server) handleResetTour(ctx context.Context, request mcp.CallToolRequest, args TourArgs) (Completion, error) {
	if args.ID == "" {
		return Completion{}, errors.New("id is required")
	}
	if err := s.store.Set(ctx, domain.CompletionKey(args.ID), ""); err != nil {
		return Completion{}, fmt.Errorf("reset completion: %w", err)
	}
	slog.Info("MCP: tour reset", "tour", args.ID)
	return Completion{TourID: args.ID}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ToursURI, "Tour Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tours, err := s.allTours()
		if err != nil {
			return nil, err
		}
		jsonBytes, _ := json.Marshal(tours)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ToursURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) allTours() ([]domain.Tour, error) {
	tours := []domain.Tour{}
	if s.loader == nil {
		return tours, nil
	}
	ids, err := s.loader.ListTours()
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	for _, id := range ids {
		t, err := s.loader.GetTour(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load tour %q: %w", id, err)
		}
		tours = append(tours, t)
	}
	return tours, nil
}
