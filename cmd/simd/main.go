// Package main provides the simulation daemon that runs the agent and combat
// core as a fixed-step tick loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/duskfall/duskfall/internal/config"
	"github.com/duskfall/duskfall/internal/game/agent"
	"github.com/duskfall/duskfall/internal/game/combat"
	"github.com/duskfall/duskfall/internal/game/geom"
	"github.com/duskfall/duskfall/internal/game/grid"
	"github.com/duskfall/duskfall/internal/game/rng"
	"github.com/duskfall/duskfall/internal/game/sim"
	"github.com/duskfall/duskfall/internal/observability"
	"github.com/duskfall/duskfall/internal/scripting"
	"github.com/duskfall/duskfall/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rng.NewSource(seed)

	logger.Info("starting simulation daemon",
		zap.Int("tick_rate", cfg.Simulation.TickRate),
		zap.Int64("seed", seed),
	)

	// Load content.
	contentStart := time.Now()
	weapons, err := combat.LoadWeaponDefinitions(cfg.Content.WeaponsPath)
	if err != nil {
		logger.Fatal("loading weapon definitions", zap.Error(err))
	}
	defs, err := agent.LoadDefinitions(cfg.Content.AgentsPath)
	if err != nil {
		logger.Fatal("loading agent definitions", zap.Error(err))
	}
	mapFile, err := grid.LoadMapFile(cfg.Content.MapPath)
	if err != nil {
		logger.Fatal("loading map", zap.Error(err))
	}
	level := mapFile.Build()
	logger.Info("content loaded",
		zap.Int("weapons", len(weapons)),
		zap.Int("agent_types", len(defs)),
		zap.Int("map_width", level.Width),
		zap.Int("map_height", level.Height),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	weapon, ok := weapons[cfg.Content.DefaultWeapon]
	if !ok {
		logger.Fatal("default weapon not defined",
			zap.String("weapon", cfg.Content.DefaultWeapon))
	}

	// Build the world.
	world := sim.NewWorld(level, defs, src)
	world.Player = &sim.Player{
		Position:  geom.Vec2{X: cfg.Player.StartX, Y: cfg.Player.StartY},
		Facing:    geom.Vec2{X: 1, Y: 0},
		Health:    cfg.Player.MaxHealth,
		MaxHealth: cfg.Player.MaxHealth,
		Swing:     combat.NewSwing(weapon),
	}
	if err := world.PopulateFromMap(mapFile); err != nil {
		logger.Fatal("populating world", zap.Error(err))
	}
	logger.Info("world populated", zap.Int("agents", world.Agents.Len()))

	// Initialise scripting engine.
	var scriptMgr *scripting.Manager
	if cfg.Content.ScriptsDir != "" {
		if info, statErr := os.Stat(cfg.Content.ScriptsDir); statErr == nil && info.IsDir() {
			scriptStart := time.Now()
			scriptMgr = scripting.NewManager(logger)
			if err := scriptMgr.Load(cfg.Content.ScriptsDir, 0); err != nil {
				logger.Fatal("loading scripts",
					zap.String("dir", cfg.Content.ScriptsDir), zap.Error(err))
			}
			logger.Info("scripting engine initialized",
				zap.String("dir", cfg.Content.ScriptsDir),
				zap.Duration("elapsed", time.Since(scriptStart)))

			// Wire SpawnAgent callback. The spawn is applied between ticks,
			// which is safe because hooks only run from within Tick's sweep.
			scriptMgr.SpawnAgent = func(typeName string, x, y float64) error {
				_, err := world.Agents.Spawn(typeName, geom.Vec2{X: x, Y: y}, 0)
				return err
			}

			// Wire GetAgent callback.
			scriptMgr.GetAgent = func(id string) *scripting.AgentInfo {
				a, ok := world.Agents.Get(id)
				if !ok {
					return nil
				}
				info := snapshotAgent(a)
				return &info
			}

			// Wire HealAgent callback.
			scriptMgr.HealAgent = func(id string, amount float64) error {
				a, ok := world.Agents.Get(id)
				if !ok {
					return fmt.Errorf("no agent %q", id)
				}
				a.Health += amount
				if a.Health > a.MaxHealth {
					a.Health = a.MaxHealth
				}
				return nil
			}

			world.OnHit = func(hook string, a *agent.Agent) {
				scriptMgr.CallHook(hook, snapshotAgent(a)) //nolint:errcheck
			}
			world.OnDeath = func(hook string, a *agent.Agent) {
				scriptMgr.CallHook(hook, snapshotAgent(a)) //nolint:errcheck
			}
		} else {
			logger.Warn("scripts_dir not found, scripting disabled",
				zap.String("dir", cfg.Content.ScriptsDir))
		}
	}

	// Wire lifecycle.
	lifecycle := server.NewLifecycle(logger)

	loop := newTickLoop(world, cfg.Simulation.TickInterval(), logger)
	lifecycle.Add("simulation", loop)

	if scriptMgr != nil {
		lifecycle.Add("scripting", &server.FuncService{
			StartFn: func() error {
				<-ctx.Done()
				return nil
			},
			StopFn: func() {
				scriptMgr.Close()
			},
		})
	}

	logger.Info("simulation daemon initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("daemon error", zap.Error(err))
	}
}

func snapshotAgent(a *agent.Agent) scripting.AgentInfo {
	return scripting.AgentInfo{
		ID:        a.ID,
		Type:      a.Type,
		X:         a.Position.X,
		Y:         a.Position.Y,
		Health:    a.Health,
		MaxHealth: a.MaxHealth,
	}
}
