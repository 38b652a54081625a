package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"donordrive-tracker/internal/format"
	"donordrive-tracker/internal/model"
	"donordrive-tracker/internal/rank"
	"donordrive-tracker/internal/tracker"
)

// snapshotSource hands the latest poll-cycle snapshots to tool handlers.
// The poll loop and the MCP handlers run on different goroutines, so the
// swap is guarded; the snapshots themselves are immutable.
type snapshotSource struct {
	mu             sync.RWMutex
	currencySymbol string
	participant    tracker.ParticipantState
	team           *tracker.TeamState
}

func (s *snapshotSource) update(p tracker.ParticipantState, t *tracker.TeamState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participant = p
	s.team = t
}

func (s *snapshotSource) snapshot() (tracker.ParticipantState, *tracker.TeamState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.participant, s.team
}

type CountArgs struct {
	Count int `json:"count" jsonschema:"How many records to return (default 5)"`
}

type NoArgs struct{}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type donationView struct {
	Name           string `json:"name"`
	Amount         string `json:"amount,omitempty"`
	Message        string `json:"message,omitempty"`
	CreatedDateUTC string `json:"created_date_utc"`
	Display        string `json:"display"`
}

type donorView struct {
	Name    string `json:"name"`
	Amount  string `json:"amount,omitempty"`
	Display string `json:"display"`
}

func serveTools(logger *zap.Logger, src *snapshotSource, addr, mcpPath string) {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "donordrive-tracker",
			Version: "1.0.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "participant_summary",
		Description: "Current fundraising totals, goal, and average donation for the tracked participant",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		p, _ := src.snapshot()
		return toolJSON(map[string]any{
			"display_name":     p.Info.DisplayName,
			"event_name":       p.Info.EventName,
			"total_raised":     format.Money(src.currencySymbol, p.Info.TotalRaised),
			"goal":             format.Money(src.currencySymbol, p.Info.Goal),
			"average_donation": format.Money(src.currencySymbol, p.AverageDonation),
			"num_donations":    p.Info.NumDonations,
			"stream_is_live":   p.Info.StreamIsLive,
			"new_donation":     p.NewDonation,
		})
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "recent_donations",
		Description: "Most recent donations to the tracked participant",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CountArgs) (*mcp.CallToolResult, any, error) {
		p, _ := src.snapshot()
		out := make([]donationView, 0, args.Count)
		for _, d := range rank.Window(p.Donations, countOrDefault(args.Count)) {
			out = append(out, newDonationView(d, src.currencySymbol))
		}
		return toolJSON(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "top_donors",
		Description: "Donors ranked by cumulative amount",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CountArgs) (*mcp.CallToolResult, any, error) {
		p, _ := src.snapshot()
		out := make([]donorView, 0, args.Count)
		for _, d := range rank.TopN(p.Donors, countOrDefault(args.Count)) {
			view := donorView{Name: d.Name, Display: format.Single(d, src.currencySymbol)}
			if amt, ok := d.EntryAmount(); ok {
				view.Amount = amt.StringFixed(2)
			}
			out = append(out, view)
		}
		return toolJSON(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "activity_feed",
		Description: "Recent activity feed entries (donations, badges, incentives)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CountArgs) (*mcp.CallToolResult, any, error) {
		p, _ := src.snapshot()
		out := make([]string, 0, args.Count)
		for _, a := range rank.Window(p.Activities, countOrDefault(args.Count)) {
			out = append(out, a.String())
		}
		return toolJSON(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "team_summary",
		Description: "Current totals and top participants for the tracked team",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		_, t := src.snapshot()
		if t == nil {
			return toolError(fmt.Errorf("no team configured")), nil, nil
		}
		top := make([]string, 0, len(t.TopParticipants))
		for _, tp := range t.TopParticipants {
			top = append(top, format.Single(tp, src.currencySymbol))
		}
		return toolJSON(map[string]any{
			"captain":          t.Info.CaptainName,
			"total_raised":     format.Money(src.currencySymbol, t.Info.TotalRaised),
			"goal":             format.Money(src.currencySymbol, t.Info.Goal),
			"num_donations":    t.Info.NumDonations,
			"top_participants": top,
		})
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("DONORDRIVE_MCP_API_KEY"))

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get("X-API-Key"))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	mux.HandleFunc(mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	logger.Info("MCP HTTP server listening", zap.String("addr", addr), zap.String("path", mcpPath))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("MCP HTTP server failed", zap.Error(err))
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func newDonationView(d model.Donation, symbol string) donationView {
	view := donationView{
		Name:           d.Name,
		Message:        d.Message,
		CreatedDateUTC: d.CreatedDateUTC,
		Display:        format.Single(d, symbol),
	}
	if amt, ok := d.EntryAmount(); ok {
		view.Amount = amt.StringFixed(2)
	}
	return view
}

func countOrDefault(n int) int {
	if n <= 0 {
		return 5
	}
	return n
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
