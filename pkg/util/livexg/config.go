package livexg

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario names one way of deriving pre-match strength factors
type Scenario string

const (
	ScenarioBaseline Scenario = "baseline" // league-normalised offense x defense
	ScenarioDirect   Scenario = "direct"   // scored / opponent conceded, no league normalisation
	ScenarioMarket   Scenario = "market"   // pre-match over/under 2.5 implied total
)

// AllScenarios is the evaluation order used when a policy names no scenario
var AllScenarios = []Scenario{ScenarioBaseline, ScenarioDirect, ScenarioMarket}

// ScorelineTier selects how strongly the scoreline bends each side's rate
type ScorelineTier string

const (
	TierHard ScorelineTier = "hard"
	TierSoft ScorelineTier = "soft"
	TierNone ScorelineTier = "none"
)

// OutcomeModel selects the 1X2 estimator, if any
type OutcomeModel string

const (
	OutcomeNone      OutcomeModel = "none"
	OutcomeHeuristic OutcomeModel = "heuristic"
	OutcomePoisson   OutcomeModel = "poisson"
)

var (
	ErrUnknownScenario     = errors.New("unknown strength scenario")
	ErrUnknownTier         = errors.New("unknown scoreline tier")
	ErrUnknownOutcomeModel = errors.New("unknown outcome model")
)

// TierFactors holds the multipliers for the leading and trailing side
type TierFactors struct {
	Leading  float64 `yaml:"leading" json:"leading"`
	Trailing float64 `yaml:"trailing" json:"trailing"`
}

// LivexgConfig contains every constant that influences a projection.
// Nothing in the engine uses a literal that is not listed here.
type LivexgConfig struct {
	// === NUMERIC GUARDS ===

	// Epsilon floors every team supplied denominator (default: 1e-3)
	Epsilon float64 `yaml:"epsilon"`

	// === PRE-MATCH STRENGTH ===

	// League average goals per match when the input omits it (default: 2.5)
	LeagueAverageGoals float64 `yaml:"league_average_goals"`
	// League average shot conversion rate (default: 0.10).
	// Set to 1.0 when conversion inputs are already relative factors (1.05 = 5% above average)
	NeutralConversion float64 `yaml:"neutral_conversion"`

	// === IN-MATCH RATE ===

	// Momentum window in minutes, clipped to minutes played (default: 10)
	MomentumWindow int `yaml:"momentum_window"`

	// === CONTEXT ADJUSTERS ===

	// Scoreline multipliers per tier (defaults: hard 0.7/1.4, soft 0.85/1.15)
	HardTier TierFactors `yaml:"hard_tier"`
	SoftTier TierFactors `yaml:"soft_tier"`
	// Maximum luck multiplier, goals / xG (default: 1.5)
	LuckCap float64 `yaml:"luck_cap"`

	// === POISSON OUTPUT ===

	// Goal counts 0..N-1 reported in the remaining goals distribution (default: 9)
	GoalRange int `yaml:"goal_range"`
	// Final total goal lines reported per scenario (default: 0.5, 1.5, 2.5, 3.5)
	TotalLines []float64 `yaml:"total_lines"`
	// Dixon-Coles correlation for the poisson outcome model (default: -0.03)
	DixonColesRho float64 `yaml:"dixon_coles_rho"`

	// === DEFAULT POLICY ===

	// Policy used by boundaries when a request does not override it
	Policy PolicyConfig `yaml:"policy"`
}

// PolicyConfig is the yaml shape of the default Policy
type PolicyConfig struct {
	Scenarios     []Scenario    `yaml:"scenarios"`
	ScorelineTier ScorelineTier `yaml:"scoreline_tier"`
	Momentum      bool          `yaml:"momentum"`
	Luck          bool          `yaml:"luck"`
	HomeAdvantage float64       `yaml:"home_advantage"`
	Outcome       OutcomeModel  `yaml:"outcome"`
}

// DefaultLivexgConfig returns the configuration the tool ships with
func DefaultLivexgConfig() *LivexgConfig {
	return &LivexgConfig{
		Epsilon: 1e-3,

		LeagueAverageGoals: 2.5,
		NeutralConversion:  0.10,

		MomentumWindow: 10,

		HardTier: TierFactors{Leading: 0.7, Trailing: 1.4},
		SoftTier: TierFactors{Leading: 0.85, Trailing: 1.15},
		LuckCap:  1.5,

		GoalRange:     9,
		TotalLines:    []float64{0.5, 1.5, 2.5, 3.5},
		DixonColesRho: -0.03,

		Policy: PolicyConfig{
			Scenarios:     []Scenario{ScenarioBaseline, ScenarioMarket},
			ScorelineTier: TierHard,
			Momentum:      true,
			Luck:          false,
			HomeAdvantage: 1.1,
			Outcome:       OutcomeNone,
		},
	}
}

// DefaultPolicy returns the policy configured as the default
func (c *LivexgConfig) DefaultPolicy() Policy {
	return Policy{
		Scenarios:     append([]Scenario(nil), c.Policy.Scenarios...),
		ScorelineTier: c.Policy.ScorelineTier,
		Momentum:      c.Policy.Momentum,
		Luck:          c.Policy.Luck,
		HomeAdvantage: c.Policy.HomeAdvantage,
		Outcome:       c.Policy.Outcome,
	}
}

// Tier returns the multipliers for the given scoreline tier
func (c *LivexgConfig) Tier(tier ScorelineTier) (TierFactors, error) {
	switch tier {
	case TierHard:
		return c.HardTier, nil
	case TierSoft:
		return c.SoftTier, nil
	case TierNone, "":
		return TierFactors{Leading: 1.0, Trailing: 1.0}, nil
	default:
		return TierFactors{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
}

// clone returns a deep copy so an Engine never shares slices with its caller
func (c *LivexgConfig) clone() *LivexgConfig {
	cp := *c
	cp.TotalLines = append([]float64(nil), c.TotalLines...)
	cp.Policy.Scenarios = append([]Scenario(nil), c.Policy.Scenarios...)
	return &cp
}

// LoadConfigFile reads a yaml file over the defaults and validates the result.
// Fields missing from the file keep their default value.
func LoadConfigFile(path string) (*LivexgConfig, error) {
	config := DefaultLivexgConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// === CONFIGURATION VALIDATION ===

// ValidateConfig ensures all configuration values are usable by the engine
func ValidateConfig(config *LivexgConfig) error {
	if config == nil {
		return fmt.Errorf("config must not be nil")
	}
	if config.Epsilon <= 0 || config.Epsilon > 0.1 {
		return fmt.Errorf("Epsilon must be in (0, 0.1], got: %g", config.Epsilon)
	}
	if config.LeagueAverageGoals <= 0 {
		return fmt.Errorf("LeagueAverageGoals must be positive, got: %f", config.LeagueAverageGoals)
	}
	if config.NeutralConversion <= 0 {
		return fmt.Errorf("NeutralConversion must be positive, got: %f", config.NeutralConversion)
	}
	if config.MomentumWindow < 1 {
		return fmt.Errorf("MomentumWindow must be at least 1 minute, got: %d", config.MomentumWindow)
	}
	for name, tier := range map[string]TierFactors{"HardTier": config.HardTier, "SoftTier": config.SoftTier} {
		if tier.Leading <= 0 || tier.Trailing <= 0 {
			return fmt.Errorf("%s factors must be positive, got: %+v", name, tier)
		}
	}
	if config.LuckCap <= 0 {
		return fmt.Errorf("LuckCap must be positive, got: %f", config.LuckCap)
	}
	if config.GoalRange < 3 {
		return fmt.Errorf("GoalRange should be at least 3 to capture realistic scores, got: %d", config.GoalRange)
	}
	for _, line := range config.TotalLines {
		if line < 0 {
			return fmt.Errorf("TotalLines must not be negative, got: %f", line)
		}
	}
	if config.DixonColesRho > 0 || config.DixonColesRho < -0.1 {
		return fmt.Errorf("DixonColesRho should be between -0.1 and 0, got: %f", config.DixonColesRho)
	}
	return config.DefaultPolicy().Validate()
}
