package main

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/duskfall/duskfall/internal/game/sim"
)

// tickLoop drives the world at a fixed step and logs every tick event. It
// implements server.Service so the lifecycle manager owns its shutdown.
type tickLoop struct {
	world    *sim.World
	interval time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	input sim.Input

	stop chan struct{}
	once sync.Once
}

func newTickLoop(world *sim.World, intervalSeconds float64, logger *zap.Logger) *tickLoop {
	return &tickLoop{
		world:    world,
		interval: time.Duration(intervalSeconds * float64(time.Second)),
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// SetInput replaces the player input applied on the next tick. Safe to call
// from any goroutine.
func (l *tickLoop) SetInput(in sim.Input) {
	l.mu.Lock()
	l.input = in
	l.mu.Unlock()
}

// Start runs the fixed-step loop until Stop is called. The simulation always
// advances by the configured interval; wall-clock jitter affects scheduling,
// never the step size.
func (l *tickLoop) Start() error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	dt := l.interval.Seconds()
	for {
		select {
		case <-l.stop:
			return nil
		case <-ticker.C:
			l.mu.Lock()
			in := l.input
			// Pressed is an edge, consumed by the tick it reaches.
			l.input.AttackPressed = false
			l.mu.Unlock()

			for _, ev := range l.world.Tick(dt, in) {
				l.logEvent(ev)
			}
		}
	}
}

// Stop signals the loop to exit. Idempotent.
func (l *tickLoop) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *tickLoop) logEvent(ev sim.Event) {
	fields := []zap.Field{
		zap.String("event", ev.Kind.String()),
	}
	if ev.AgentID != "" {
		fields = append(fields,
			zap.String("agent", ev.AgentID),
			zap.String("type", ev.AgentType),
		)
	}
	switch ev.Kind {
	case sim.EventAgentHit:
		fields = append(fields,
			zap.Int("damage", ev.Damage),
			zap.Bool("critical", ev.Critical),
			zap.String("damage_type", string(ev.DamageType)),
			zap.Float64("health", ev.Health),
		)
	case sim.EventPlayerHit:
		fields = append(fields,
			zap.Int("damage", ev.Damage),
			zap.Float64("player_health", ev.Health),
		)
	case sim.EventStatusApplied, sim.EventStatusExpired:
		fields = append(fields, zap.String("effect", string(ev.Effect)))
	case sim.EventStatusDamage:
		fields = append(fields,
			zap.String("effect", string(ev.Effect)),
			zap.Int("damage", ev.Damage),
			zap.Float64("health", ev.Health),
		)
	}
	l.logger.Info("tick event", fields...)
}
