package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/dsl"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	b := dsl.New()
	b.Add("onboarding").Step("#a", "First").Step("#b", "Second")
	b.Add("billing").Light().Step("#pay", "Pay")
	loader, err := b.Build()
	require.NoError(t, err)

	store := memory.NewStore()
	return NewServer(loader, store), store
}

func rpc(t *testing.T, s *Server, method string, params any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	resp := s.MCPServer().HandleMessage(context.Background(), raw)
	out, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	return decoded
}

func TestToolsRegistered(t *testing.T) {
	s, _ := newTestServer(t)
	resp := rpc(t, s, "tools/list", map[string]any{})

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response: %v", resp)

	var names []string
	for _, tool := range result["tools"].([]any) {
		names = append(names, tool.(map[string]any)["name"].(string))
	}
	assert.ElementsMatch(t, []string{"compute_placement", "list_tours", "get_tour", "tour_status", "reset_tour"}, names)
}

func TestComputePlacement(t *testing.T) {
	s, _ := newTestServer(t)

	p, err := s.handleComputePlacement(context.Background(), mcp.CallToolRequest{}, PlacementArgs{
		TargetTop: 100, TargetLeft: 100, TargetWidth: 100, TargetHeight: 30,
		CalloutWidth: 200, CalloutHeight: 80,
		ViewportWidth: 1024, ViewportHeight: 768,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Placement{Side: domain.SideBottom, Top: 138, Left: 50, ArrowOffset: 100}, p)

	_, err = s.handleComputePlacement(context.Background(), mcp.CallToolRequest{}, PlacementArgs{})
	assert.Error(t, err)
}

func TestComputePlacement_OverRPC(t *testing.T) {
	s, _ := newTestServer(t)
	resp := rpc(t, s, "tools/call", map[string]any{
		"name": "compute_placement",
		"arguments": map[string]any{
			"target_top": 700, "target_left": 100, "target_width": 100, "target_height": 30,
			"callout_width": 200, "callout_height": 80,
			"viewport_width": 1024, "viewport_height": 768,
		},
	})

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response: %v", resp)
	structured, ok := result["structuredContent"].(map[string]any)
	require.True(t, ok, "missing structured content: %v", result)
	assert.Equal(t, "top", structured["position"])
	assert.Equal(t, 612.0, structured["top"])
}

func TestTours(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	list, err := s.handleListTours(ctx, mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "onboarding"}, list.Tours)

	tour, err := s.handleGetTour(ctx, mcp.CallToolRequest{}, TourArgs{ID: "billing"})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, tour.Theme)

	_, err = s.handleGetTour(ctx, mcp.CallToolRequest{}, TourArgs{ID: "biling"})
	require.ErrorIs(t, err, domain.ErrTourNotFound)
	assert.Contains(t, err.Error(), "did you mean billing")
}

func TestStatusAndReset(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	st, err := s.handleTourStatus(ctx, mcp.CallToolRequest{}, TourArgs{ID: "onboarding"})
	require.NoError(t, err)
	assert.False(t, st.Completed)

	require.NoError(t, store.Set(ctx, domain.CompletionKey("onboarding"), domain.CompletionValue))
	st, err = s.handleTourStatus(ctx, mcp.CallToolRequest{}, TourArgs{ID: "onboarding"})
	require.NoError(t, err)
	assert.True(t, st.Completed)

	st, err = s.handleResetTour(ctx, mcp.CallToolRequest{}, TourArgs{ID: "onboarding"})
	require.NoError(t, err)
	assert.False(t, st.Completed)

	v, _, err := store.Get(ctx, domain.CompletionKey("onboarding"))
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = s.handleTourStatus(ctx, mcp.CallToolRequest{}, TourArgs{})
	assert.Error(t, err)
}

func TestToursResource(t *testing.T) {
	s, _ := newTestServer(t)
	resp := rpc(t, s, "resources/read", map[string]any{"uri": ToursURI})

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response: %v", resp)
	contents := result["contents"].([]any)
	require.Len(t, contents, 1)

	var tours []domain.Tour
	require.NoError(t, json.Unmarshal([]byte(contents[0].(map[string]any)["text"].(string)), &tours))
	require.Len(t, tours, 2)
	assert.Equal(t, "billing", tours[0].ID)
}
