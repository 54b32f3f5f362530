// Command suggest loads a game-state fixture, builds one suggestion
// through the Suggest Service, and prints the resulting JSON. It is a
// demo harness for the service, not a substitute for the HTTP surface
// a hand engine would actually call.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/lox/huengine/internal/observation"
	"github.com/lox/huengine/internal/randutil"
	"github.com/lox/huengine/internal/suggest"
	"github.com/lox/huengine/internal/suggestcfg"
	"github.com/lox/huengine/internal/tables"
	"github.com/lox/huengine/poker"

	"github.com/coder/quartz"
)

type CLI struct {
	ConfigRoot    string `kong:"default='configs',help='Root directory holding preflop/ and postflop/ table JSON'"`
	Override      string `kong:"default='suggest.hcl',help='Optional HCL override of policy thresholds'"`
	Fixture       string `kong:"help='Path to a JSON-encoded game-state fixture; a synthetic RFI fixture is used when empty'"`
	Random        bool   `kong:"help='Deal a random flop-street hand instead of the fixed RFI fixture or --fixture file'"`
	Seed          int64  `kong:"help='Seed for --random; defaults to the current time'"`
	PolicyVersion string `kong:"default='v1',help='v0 | v1 | v1_preflop | auto'"`
	RolloutPct    int    `kong:"default='0',help='Percent of hands rolled into v1 when policy-version=auto'"`
	Strategy      string `kong:"default='medium',help='loose | medium | tight flop rule set'"`
	Debug         bool   `kong:"help='Attach the debug block to the printed suggestion'"`
	Enable4Bet    bool   `kong:"name='enable-4bet',help='Enable the preflop 4-bet branch'"`
	FlopValueRaise bool  `kong:"default='true',name='flop-value-raise',help='Enable the JSON-driven flop value-raise shortcut'"`
}

// fixture mirrors observation.GameState plus the acting seat and legal
// actions, the shape a hand engine would hand the service.
type fixture struct {
	GameState observation.GameState      `json:"game_state"`
	Actor     int                        `json:"actor"`
	Acts      []observation.LegalAction  `json:"legal_actions"`
}

type staticEngine struct {
	toAct int
	acts  []observation.LegalAction
}

func (e staticEngine) ToActIndex(observation.GameState) int { return e.toAct }
func (e staticEngine) LegalActions(observation.GameState, int) []observation.LegalAction {
	return e.acts
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("suggest"),
		kong.Description("Prints one HU NLHE suggestion for a fixture hand state"),
		kong.UsageOnError(),
	)

	// cliLog carries the command's own human-facing status lines; the
	// service's suggest_v1 decision event is logged separately below
	// through zerolog, the library that internal/suggest is built on.
	cliLog := log.New(os.Stderr)
	cliLog.SetColorProfile(termenv.TrueColor)
	if cli.Debug {
		cliLog.SetLevel(log.DebugLevel)
	}

	svcLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	var fx fixture
	var err error
	switch {
	case cli.Random:
		seed := cli.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		fx = randomFixture(seed)
	default:
		fx, err = loadFixture(cli.Fixture)
	}
	if err != nil {
		cliLog.Error("failed to load fixture", "error", err)
		ctx.Exit(1)
	}

	policyCfg, err := suggestcfg.Load(cli.Override)
	if err != nil {
		cliLog.Warn("override load failed, using defaults", "error", err)
	}

	clock := quartz.NewReal()
	cache := tables.NewCache(cli.ConfigRoot, clock)

	cfg := suggest.DefaultConfig()
	cfg.PolicyVersion = cli.PolicyVersion
	cfg.RolloutPct = cli.RolloutPct
	cfg.Strategy = cli.Strategy
	cfg.Debug = cli.Debug
	cfg.Enable4Bet = cli.Enable4Bet
	cfg.FlopValueRaise = cli.FlopValueRaise

	cliLog.Info("suggesting", "hand_id", fx.GameState.HandID, "street", fx.GameState.Street, "policy_version", cfg.PolicyVersion)

	svc := suggest.New(cache, cfg, policyCfg, svcLogger)
	engine := staticEngine{toAct: fx.Actor, acts: fx.Acts}

	result, err := svc.Suggest(fx.GameState, fx.Actor, engine)
	if err != nil {
		if se, ok := err.(*suggest.Error); ok {
			cliLog.Error(se.Error(), "kind", se.Kind, "status", se.HTTPStatus())
			ctx.Exit(1)
		}
		cliLog.Error("suggest failed", "error", err)
		ctx.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		cliLog.Error("failed to encode suggestion", "error", err)
		ctx.Exit(1)
	}
	fmt.Println(string(out))
}

// loadFixture reads a fixture file, or synthesizes a default SB
// raise-first-in spot with a freshly generated hand_id when path is
// empty, so the command runs out of the box with no arguments.
func loadFixture(path string) (fixture, error) {
	if path == "" {
		return fixture{
			GameState: observation.GameState{
				HandID: uuid.NewString(),
				Street: "preflop",
				BB:     2,
				Button: 0,
				Players: [2]observation.Player{
					{Stack: 200, InvestedStreet: 1},
					{Stack: 198, InvestedStreet: 2},
				},
			},
			Actor: 0,
			Acts: []observation.LegalAction{
				{Action: "fold"},
				{Action: "call", ToCall: intPtr(1)},
				{Action: "raise", Min: intPtr(4), Max: intPtr(200)},
			},
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if fx.GameState.HandID == "" {
		fx.GameState.HandID = uuid.NewString()
	}
	return fx, nil
}

// randomFixture deals a deterministic-from-seed flop-street hand: a
// freshly shuffled 52-card deck split into two hole pairs and a
// 3-card board, the actor out of position facing a half-pot bet.
func randomFixture(seed int64) fixture {
	rng := randutil.New(seed)
	deck := poker.NewDeck(rng)

	hole0 := deck.Deal(2)
	hole1 := deck.Deal(2)
	board := deck.Deal(3)

	button := rng.IntN(2)
	return fixture{
		GameState: observation.GameState{
			HandID: uuid.NewString(),
			Street: "flop",
			BB:     2,
			Pot:    6,
			Button: button,
			Players: [2]observation.Player{
				{Hole: hole0, Stack: 100},
				{Hole: hole1, Stack: 100},
			},
			Board: board,
			Events: []observation.Event{
				{Street: "preflop", Actor: button, Action: "raise"},
			},
		},
		Actor: 1 - button,
		Acts: []observation.LegalAction{
			{Action: "fold"},
			{Action: "call", ToCall: intPtr(3)},
			{Action: "raise", Min: intPtr(12), Max: intPtr(100)},
		},
	}
}

func intPtr(v int) *int { return &v }
