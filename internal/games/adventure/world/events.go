package world

// Event is something the simulation reports to observers. The kernel never
// calls presentation code directly; it emits events instead.
type Event interface {
	worldEvent()
}

// PlayerMovedEvent is emitted after the player relocates.
type PlayerMovedEvent struct {
	From, To Coord
	Revealed int // Cells newly revealed by the move
}

func (PlayerMovedEvent) worldEvent() {}

// CoinCollectedEvent is emitted when the player picks up a collectible.
type CoinCollectedEvent struct {
	At    Coord
	Coins int // Coin total after the pickup
}

func (CoinCollectedEvent) worldEvent() {}

// EnemyMovedEvent is emitted when a patrol step relocates an enemy.
type EnemyMovedEvent struct {
	Enemy    int
	From, To Coord
}

func (EnemyMovedEvent) worldEvent() {}

// CollisionEvent is emitted each time an enemy overlaps the player.
type CollisionEvent struct {
	Enemy int
	Lives int // Lives left after the hit
}

func (CollisionEvent) worldEvent() {}

// GameOverEvent is emitted once, when lives reach zero.
type GameOverEvent struct {
	Coins int
}

func (GameOverEvent) worldEvent() {}

// ActionEvent carries the result of an interact or attack command.
type ActionEvent struct {
	Result ActionResult
}

func (ActionEvent) worldEvent() {}
