package engine

import "github.com/vovakirdan/tui-adventure/internal/games/adventure/world"

// command is a unit of work for the session loop. apply runs on the loop,
// respond runs after the resulting snapshot is published.
type command interface {
	apply(s *Session)
	respond()
}

type moveReply struct {
	outcome world.MoveOutcome
	err     error
}

type moveCmd struct {
	dir    world.Direction
	result moveReply
	reply  chan moveReply
}

func (c *moveCmd) apply(s *Session) {
	s.tick++
	if s.over {
		c.result.err = ErrGameOver
		return
	}

	if s.paused {
		c.result.err = ErrPaused
		return
	}

	out := s.resolver.Move(&s.player, c.dir)
	c.result.outcome = out
	if !out.Moved {
		s.logger.Debug("move blocked", "dir", c.dir, "at", out.From)
		return
	}

	s.emit(world.PlayerMovedEvent{From: out.From, To: out.To, Revealed: out.Revealed})
	if out.Collected {
		s.logger.Debug("coin collected", "at", out.To, "coins", out.Coins)
		s.emit(world.CoinCollectedEvent{At: out.To, Coins: out.Coins})
	}
	for i := range s.patrols {
		s.checkProximity(i)
	}
}

func (c *moveCmd) respond() { c.reply <- c.result }

type actionReply struct {
	result world.ActionResult
	err    error
}

type actionCmd struct {
	attack bool
	result actionReply
	reply  chan actionReply
}

func (c *actionCmd) apply(s *Session) {
	s.tick++
	if s.over {
		c.result.err = ErrGameOver
		return
	}
	if s.paused {
		c.result.err = ErrPaused
		return
	}
	if c.attack {
		c.result.result = s.resolver.Attack(&s.player)
	} else {
		c.result.result = s.resolver.Interact(&s.player)
	}
	s.emit(world.ActionEvent{Result: c.result.result})
}

func (c *actionCmd) respond() { c.reply <- c.result }

type cellSizeCmd struct {
	size  int
	reply chan struct{}
}

func (c *cellSizeCmd) apply(s *Session) {
	s.tick++
	s.cellSize = c.size
}

func (c *cellSizeCmd) respond() { c.reply <- struct{}{} }

type pauseCmd struct {
	paused bool
	reply  chan struct{}
}

func (c *pauseCmd) apply(s *Session) {
	s.tick++
	if s.paused != c.paused {
		s.logger.Debug("pause toggled", "paused", c.paused)
	}
	s.paused = c.paused
}

func (c *pauseCmd) respond() { c.reply <- struct{}{} }

// patrolCmd advances one enemy. Patrol tasks only ever send this.
type patrolCmd struct {
	index int
}

func (c patrolCmd) apply(s *Session) {
	if s.over || s.paused {
		return
	}
	s.tick++
	s.steps++
	p := s.patrols[c.index]
	step := p.Tick(s.grid)
	if step.Moved {
		s.emit(world.EnemyMovedEvent{Enemy: c.index, From: step.From, To: step.To})
	} else {
		s.logger.Debug("patrol blocked", "enemy", c.index, "at", step.From)
	}
	s.checkProximity(c.index)
}

func (patrolCmd) respond() {}
