package tools

import (
	"errors"
	"fmt"

	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/pkg/protocol"
	"github.com/richard-senior/livexg/pkg/util"
	"github.com/richard-senior/livexg/pkg/util/livexg"
)

func PresetsTool() protocol.Tool {
	return protocol.Tool{
		Name: "league_presets",
		Description: `
		Manages per-league calibration presets used by live_goals_projection.
		A preset sets the league average goals and optionally the neutral conversion rate,
		home advantage and scoreline tier. Pass its name as 'league' to a projection.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"command": {
					Type: "string",
					Enum: []string{"list", "get", "save", "delete"},
					Description: `
					The command you want to run:
					- list: every stored preset
					- get: one preset by name
					- save: create or replace a preset
					- delete: remove a preset by name
					`,
				},
				"name":               {Type: "string", Description: "Preset name, case insensitive"},
				"average_goals":      {Type: "number", Description: "League average goals per match (required for save)"},
				"neutral_conversion": {Type: "number", Description: "League average shot conversion rate"},
				"home_advantage":     {Type: "number", Description: "Home rate multiplier"},
				"scoreline_tier":     {Type: "string", Enum: []string{"hard", "soft", "none"}},
			},
			Required: []string{"command"},
		},
	}
}

// NewPresetsHandler binds the presets tool to a preset store
func NewPresetsHandler(store *livexg.PresetStore) Handler {
	return func(params any) (any, error) {
		logger.Info("Handling league_presets tool invocation")
		if store == nil {
			return nil, fmt.Errorf("no preset store is configured")
		}

		paramsMap, ok := params.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid parameters format")
		}
		command, err := util.GetAsString(paramsMap["command"])
		if err != nil {
			return nil, fmt.Errorf("command is required: %w", err)
		}
		name, _ := util.GetAsString(paramsMap["name"])

		switch command {
		case "list":
			presets, err := store.List()
			if err != nil {
				return nil, err
			}
			if presets == nil {
				presets = []*livexg.LeaguePreset{}
			}
			return textResult(map[string]any{"presets": presets})
		case "get":
			preset, err := store.Get(name)
			if err != nil {
				return nil, suggestPreset(store, name, err)
			}
			return textResult(preset)
		case "save":
			preset := &livexg.LeaguePreset{Name: name}
			for key, dst := range map[string]*float64{
				"average_goals":      &preset.AverageGoalsPerMatch,
				"neutral_conversion": &preset.NeutralConversion,
				"home_advantage":     &preset.HomeAdvantage,
			} {
				if v, ok := paramsMap[key]; ok {
					f, err := util.GetAsFloat(v)
					if err != nil {
						return nil, fmt.Errorf("%s: %w", key, err)
					}
					*dst = f
				}
			}
			if tier, ok := paramsMap["scoreline_tier"]; ok {
				s, _ := util.GetAsString(tier)
				preset.ScorelineTier = livexg.ScorelineTier(s)
			}
			if err := store.Save(preset); err != nil {
				return nil, err
			}
			saved, err := store.Get(name)
			if err != nil {
				return nil, err
			}
			return textResult(saved)
		case "delete":
			if err := store.Delete(name); err != nil {
				return nil, suggestPreset(store, name, err)
			}
			return textResult(map[string]any{"deleted": name})
		default:
			return nil, fmt.Errorf("unknown command: %q", command)
		}
	}
}

// suggestPreset names the closest stored preset when a lookup misses
func suggestPreset(store *livexg.PresetStore, name string, err error) error {
	if !errors.Is(err, livexg.ErrPresetNotFound) {
		return err
	}
	presets, listErr := store.List()
	if listErr != nil {
		return err
	}
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	if closest, ok := util.ClosestName(name, names, 2); ok {
		return fmt.Errorf("%w (did you mean %q?)", err, closest)
	}
	return err
}
