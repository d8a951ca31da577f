package livexg

import (
	"fmt"

	"github.com/richard-senior/livexg/internal/logger"
)

// Service answers projection requests from the MCP, HTTP and CLI boundaries.
// Store may be nil, presets are then unavailable.
type Service struct {
	engine *Engine
	Store  *PresetStore
}

// NewService builds a service around a validated configuration
func NewService(config *LivexgConfig, store *PresetStore) (*Service, error) {
	engine, err := NewEngine(config)
	if err != nil {
		return nil, err
	}
	return &Service{engine: engine, Store: store}, nil
}

// Config returns a copy of the configuration the service evaluates with
func (s *Service) Config() *LivexgConfig {
	return s.engine.Config()
}

// Project evaluates a flat request. A named league preset is applied first,
// fields given explicitly in the request override it.
func (s *Service) Project(flat *FlatInput) (*Output, error) {
	config := s.engine.config
	in := flat.ToInput(config)
	engine := s.engine

	if flat.League != "" {
		if s.Store == nil {
			return nil, fmt.Errorf("league %q requested but no preset store is configured", flat.League)
		}
		preset, err := s.Store.Get(flat.League)
		if err != nil {
			return nil, err
		}
		cfg := ApplyPreset(&in, config, preset)
		flat.ApplyOverrides(&in)
		if engine, err = NewEngine(cfg); err != nil {
			return nil, err
		}
		logger.Debug("Applied league preset", preset.Name)
	}

	out, err := engine.Evaluate(in)
	if err != nil {
		logger.Warn("Projection refused:", err)
		return nil, err
	}
	for _, sc := range out.Scenarios {
		logger.Debug("Projected", string(sc), out.Results[sc].Lambda)
	}
	return out, nil
}
