// Package engine runs one adventure session. A single command loop owns the
// world; enemy patrols and player input both reach it as commands, and
// observers read immutable snapshots.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-adventure/internal/config"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/levels"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

var (
	ErrNotStarted     = errors.New("engine: session not started")
	ErrAlreadyStarted = errors.New("engine: session already started")
	ErrSessionClosed  = errors.New("engine: session closed")
	ErrGameOver       = errors.New("engine: game over")
	ErrPaused         = errors.New("engine: session paused")
)

const commandBuffer = 64

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg config.AdventureConfig) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithSeed overrides the coin placement seed from the configuration.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = &seed
	}
}

// Session is a running game on one level.
type Session struct {
	level      levels.Level
	cfg        config.AdventureConfig
	seed       *int64
	logger     *log.Logger
	difficulty *config.DifficultyManager

	// Owned by the command loop once started.
	grid     *world.Grid
	fog      *world.Fog
	vitals   *world.Vitals
	resolver *world.Resolver
	player   world.Player
	patrols  []*world.Patrol
	cellSize int
	tick     uint64
	steps    uint64 // Patrol ticks only, drives time progression
	over     bool
	paused   bool
	elements map[rune]world.Descriptor

	cmds     chan command
	halt     chan struct{}
	snap     atomic.Pointer[Snapshot]
	interval atomic.Int64

	subsMu sync.Mutex
	subs   []*Subscriber

	lifeMu   sync.Mutex
	started  bool
	cancel   context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once
	err      error
}

// New builds a session for level. Load errors are returned before any
// goroutine starts.
func New(level levels.Level, opts ...Option) (*Session, error) {
	s := &Session{
		level:  level,
		cfg:    config.DefaultAdventureConfig(),
		logger: log.New(io.Discard),
		cmds:   make(chan command, commandBuffer),
		halt:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("map", level.ID)
	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)

	grid, err := level.Grid()
	if err != nil {
		return nil, err
	}
	s.grid = grid
	s.fog = world.NewFog(grid.Width(), grid.Height())
	s.vitals = world.NewVitals(s.cfg.Gameplay.Lives)
	s.resolver = &world.Resolver{
		Grid:         grid,
		Fog:          s.fog,
		Vitals:       s.vitals,
		RevealRadius: s.cfg.Gameplay.RevealRadius,
	}
	s.cellSize = max(s.cfg.Display.CellSize, 1)

	s.elements = make(map[rune]world.Descriptor)
	reg := grid.Registry()
	for _, id := range reg.IDs() {
		d, _ := reg.Lookup(id)
		s.elements[id] = d
	}

	if _, err := s.resolver.Place(&s.player, level.Spawn); err != nil {
		return nil, fmt.Errorf("level %s: %w", level.ID, err)
	}
	s.player.Facing = world.DirRight

	for _, pos := range grid.Find(world.KindEnemy) {
		s.patrols = append(s.patrols, world.NewPatrol(pos))
	}

	seed := s.cfg.Gameplay.CoinSeed
	if s.seed != nil {
		seed = *s.seed
	}
	rng := rand.New(rand.NewSource(seed))
	placed := world.DistributeCoins(grid, rng, max(s.cfg.Gameplay.CoinAttempts, 0), world.IDCoin, level.Spawn)

	if s.vitals.GameOver() {
		s.over = true
		close(s.halt)
	}
	s.publish()

	s.logger.Debug("session created",
		"size", fmt.Sprintf("%dx%d", grid.Width(), grid.Height()),
		"enemies", len(s.patrols),
		"coins", placed,
	)
	return s, nil
}

// Snapshot returns the latest published state. It never blocks.
func (s *Session) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Subscribe registers a new event subscriber.
func (s *Session) Subscribe(bufferSize int) *Subscriber {
	sub := NewSubscriber(bufferSize)
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	select {
	case <-s.done:
		sub.Close()
	default:
		s.subs = append(s.subs, sub)
	}
	return sub
}

// Unsubscribe removes and closes sub.
func (s *Session) Unsubscribe(sub *Subscriber) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, cur := range s.subs {
		if cur == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
	sub.Close()
}

// Start launches the command loop and one patrol task per enemy.
func (s *Session) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.run(gctx)
	})
	for i := range s.patrols {
		g.Go(func() error {
			return s.runPatrol(gctx, i)
		})
	}

	go func() {
		err := g.Wait()
		s.finish(err)
	}()

	s.logger.Info("session started", "enemies", len(s.patrols))
	return nil
}

// Stop cancels all session tasks and waits for them to exit.
func (s *Session) Stop() error {
	s.lifeMu.Lock()
	if !s.started {
		s.lifeMu.Unlock()
		s.finish(nil)
		return nil
	}
	cancel := s.cancel
	s.lifeMu.Unlock()

	cancel()
	<-s.done
	return s.err
}

// Done returns a channel closed after every session task has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) finish(err error) {
	s.doneOnce.Do(func() {
		if err != nil && !errors.Is(err, context.Canceled) {
			s.err = err
		}
		s.subsMu.Lock()
		for _, sub := range s.subs {
			sub.Close()
		}
		s.subs = nil
		close(s.done)
		s.subsMu.Unlock()
		s.logger.Debug("session stopped")
	})
}

// Move walks the player one cell in dir.
func (s *Session) Move(ctx context.Context, dir world.Direction) (world.MoveOutcome, error) {
	cmd := &moveCmd{dir: dir, reply: make(chan moveReply, 1)}
	if err := s.submit(ctx, cmd); err != nil {
		return world.MoveOutcome{}, err
	}
	select {
	case r := <-cmd.reply:
		return r.outcome, r.err
	case <-ctx.Done():
		return world.MoveOutcome{}, ctx.Err()
	case <-s.done:
		return world.MoveOutcome{}, ErrSessionClosed
	}
}

// Interact inspects the cell the player faces.
func (s *Session) Interact(ctx context.Context) (world.ActionResult, error) {
	return s.action(ctx, false)
}

// Attack strikes the cell the player faces.
func (s *Session) Attack(ctx context.Context) (world.ActionResult, error) {
	return s.action(ctx, true)
}

func (s *Session) action(ctx context.Context, attack bool) (world.ActionResult, error) {
	cmd := &actionCmd{attack: attack, reply: make(chan actionReply, 1)}
	if err := s.submit(ctx, cmd); err != nil {
		return world.ActionResult{}, err
	}
	select {
	case r := <-cmd.reply:
		return r.result, r.err
	case <-ctx.Done():
		return world.ActionResult{}, ctx.Err()
	case <-s.done:
		return world.ActionResult{}, ErrSessionClosed
	}
}

// SetPaused freezes or resumes the session. While paused patrols are
// skipped and player commands fail with ErrPaused.
func (s *Session) SetPaused(ctx context.Context, paused bool) error {
	cmd := &pauseCmd{paused: paused, reply: make(chan struct{}, 1)}
	if err := s.submit(ctx, cmd); err != nil {
		return err
	}
	select {
	case <-cmd.reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

// SetCellSize changes the pixel size of a cell used for proximity checks.
// Values below 1 are raised to 1.
func (s *Session) SetCellSize(ctx context.Context, size int) error {
	cmd := &cellSizeCmd{size: max(size, 1), reply: make(chan struct{}, 1)}
	if err := s.submit(ctx, cmd); err != nil {
		return err
	}
	select {
	case <-cmd.reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

func (s *Session) submit(ctx context.Context, cmd command) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	s.lifeMu.Lock()
	started := s.started
	s.lifeMu.Unlock()
	if !started {
		return ErrNotStarted
	}

	select {
	case s.cmds <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

// run is the only goroutine that mutates the world after Start.
func (s *Session) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-s.cmds:
			cmd.apply(s)
			s.publish()
			cmd.respond()
		}
	}
}

func (s *Session) runPatrol(ctx context.Context, index int) error {
	interval := s.patrolInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.halt:
			return nil
		case <-ticker.C:
		}

		select {
		case s.cmds <- patrolCmd{index: index}:
		case <-ctx.Done():
			return nil
		case <-s.halt:
			return nil
		}

		if next := s.patrolInterval(); next != interval {
			interval = next
			ticker.Reset(interval)
		}
	}
}

func (s *Session) patrolInterval() time.Duration {
	return time.Duration(s.interval.Load())
}

// checkProximity applies contact damage from enemy index to the player.
func (s *Session) checkProximity(index int) {
	if s.over {
		return
	}
	res := world.CheckProximity(s.patrols[index].Pos, s.player.Pos, s.cellSize, s.vitals)
	if !res.Collided {
		return
	}
	s.logger.Info("player hit", "enemy", index, "lives", res.Lives)
	s.emit(world.CollisionEvent{Enemy: index, Lives: res.Lives})
	if res.GameOver {
		s.endGame()
	}
}

func (s *Session) endGame() {
	s.over = true
	close(s.halt)
	coins := s.vitals.Coins()
	s.logger.Info("game over", "coins", coins)
	s.emit(world.GameOverEvent{Coins: coins})
}

func (s *Session) emit(evt world.Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		sub.Send(evt)
	}
}

// publish stores a fresh snapshot and recomputes the patrol interval.
func (s *Session) publish() {
	enemies := make([]EnemyView, len(s.patrols))
	for i, p := range s.patrols {
		enemies[i] = EnemyView{Index: i, Pos: p.Pos}
	}
	coins := s.vitals.Coins()

	s.snap.Store(&Snapshot{
		MapID:         s.level.ID,
		Width:         s.grid.Width(),
		Height:        s.grid.Height(),
		Player:        s.player.Pos,
		Facing:        s.player.Facing,
		Enemies:       enemies,
		Coins:         coins,
		CoinsLeft:     s.grid.Count(world.IDCoin),
		Lives:         s.vitals.Lives(),
		GameOver:      s.over,
		Paused:        s.paused,
		CellSize:      s.cellSize,
		RevealedCount: s.fog.Count(),
		Tick:          s.tick,
		PatrolTicks:   s.steps,
		tiles:         s.grid.Tiles(),
		revealed:      s.fog.Mask(),
		elements:      s.elements,
	})

	interval := s.difficulty.PatrolInterval(
		s.cfg.Enemies.PatrolInterval(),
		s.cfg.Enemies.MinInterval(),
		coins,
		int(s.steps),
	)
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	s.interval.Store(int64(interval))
}
