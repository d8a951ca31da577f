package tools

import (
	"encoding/json"
	"fmt"

	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/pkg/protocol"
	"github.com/richard-senior/livexg/pkg/util/livexg"
)

// Handler executes one tool call with the raw arguments map
type Handler func(params any) (any, error)

// ProjectionResponse carries the rounded report and the full precision output
type ProjectionResponse struct {
	Report *livexg.Report `json:"report"`
	Raw    *livexg.Output `json:"raw"`
}

// ProjectionTool returns the live_goals_projection tool definition
func ProjectionTool() protocol.Tool {
	number := func(desc string) protocol.ToolProperty {
		return protocol.ToolProperty{Type: "number", Description: desc}
	}
	integer := func(desc string) protocol.ToolProperty {
		return protocol.ToolProperty{Type: "integer", Description: desc}
	}
	return protocol.Tool{
		Name: "live_goals_projection",
		Description: `
		Projects the goals still to come in a live football match.
		Give the match snapshot (minute, score, xG), pre-match team averages and the
		pre-match and in-play over/under prices. Returns, for every strength scenario,
		the expected remaining goals (lambda), P(no more goals), P(at least one more),
		fair odds and expected value against the in-play prices.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"league":               {Type: "string", Description: "Optional league preset name, see league_presets"},
				"minutes_played":       integer("Minutes played so far, must be greater than zero"),
				"match_duration":       integer("Regulation length plus expected stoppage time (default 90)"),
				"home_score":           integer("Current home goals"),
				"away_score":           integer("Current away goals"),
				"home_xg":              number("Home expected goals accumulated so far"),
				"away_xg":              number("Away expected goals accumulated so far"),
				"league_average_goals": number("League average goals per match (default from config)"),
				"home_goals_scored":    number("Home pre-match goals scored per match"),
				"home_goals_conceded":  number("Home pre-match goals conceded per match"),
				"home_conversion":      number("Home shot conversion rate, e.g. 0.11"),
				"away_goals_scored":    number("Away pre-match goals scored per match"),
				"away_goals_conceded":  number("Away pre-match goals conceded per match"),
				"away_conversion":      number("Away shot conversion rate, e.g. 0.09"),
				"pre_over25_odds":      number("Pre-match over 2.5 decimal odds"),
				"pre_under25_odds":     number("Pre-match under 2.5 decimal odds"),
				"pre_over15_odds":      number("Pre-match over 1.5 decimal odds (display only)"),
				"pre_under15_odds":     number("Pre-match under 1.5 decimal odds (display only)"),
				"pre_home_odds":        number("Pre-match home win decimal odds (display only)"),
				"pre_draw_odds":        number("Pre-match draw decimal odds (display only)"),
				"pre_away_odds":        number("Pre-match away win decimal odds (display only)"),
				"live_over_odds":       number("In-play decimal odds for at least one more goal"),
				"live_under_odds":      number("In-play decimal odds for no more goals"),
				"scenarios": {
					Type:        "array",
					Description: "Strength scenarios to evaluate (baseline, direct, market). When omitted the configured default policy applies, baseline and market out of the box",
					Items:       &protocol.ToolProperty{Type: "string", Enum: []string{"baseline", "direct", "market"}},
				},
				"scoreline_tier": {Type: "string", Enum: []string{"hard", "soft", "none"}, Description: "How strongly the scoreline bends each side's rate"},
				"momentum":       {Type: "boolean", Description: "Apply the momentum adjuster"},
				"luck":           {Type: "boolean", Description: "Apply the goals over xG luck adjuster"},
				"home_advantage": number("Home rate multiplier (default 1.1)"),
				"outcome_model":  {Type: "string", Enum: []string{"none", "heuristic", "poisson"}, Description: "Optional final result estimate"},
			},
			Required: []string{
				"minutes_played", "home_score", "away_score", "home_xg", "away_xg",
				"home_goals_scored", "home_goals_conceded", "home_conversion",
				"away_goals_scored", "away_goals_conceded", "away_conversion",
				"pre_over25_odds", "pre_under25_odds", "live_over_odds", "live_under_odds",
			},
		},
	}
}

// NewProjectionHandler binds the projection tool to a service
func NewProjectionHandler(svc *livexg.Service) Handler {
	return func(params any) (any, error) {
		logger.Info("Handling live_goals_projection tool invocation")

		paramsMap, ok := params.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid parameters format")
		}
		flat, err := livexg.ParseFlatInput(paramsMap)
		if err != nil {
			return nil, err
		}

		out, err := svc.Project(flat)
		if err != nil {
			return nil, err
		}
		return textResult(ProjectionResponse{Report: livexg.NewReport(out), Raw: out})
	}
}

// textResult wraps a value as both text and structured tool content
func textResult(v any) (*protocol.ToolResult, error) {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return &protocol.ToolResult{
		Content:           []protocol.ToolContent{{Type: "text", Text: string(text)}},
		StructuredContent: v,
	}, nil
}
