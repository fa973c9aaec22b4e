package world

import "sync"

// DefaultLives is the number of lives a new session starts with.
const DefaultLives = 3

// Vitals holds the player's coin and life counters.
type Vitals struct {
	mu       sync.Mutex
	coins    int
	lives    int
	gameOver bool
}

// NewVitals creates counters with the given starting lives.
func NewVitals(lives int) *Vitals {
	if lives < 0 {
		lives = 0
	}
	return &Vitals{lives: lives, gameOver: lives == 0}
}

// AddCoin increments the coin counter and returns the new total.
func (v *Vitals) AddCoin() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.coins++
	return v.coins
}

// Hit removes one life. Lives never drop below zero, and gameOver is true
// only for the hit that took the last life.
func (v *Vitals) Hit() (lives int, gameOver bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.lives == 0 {
		return 0, false
	}
	v.lives--
	if v.lives == 0 && !v.gameOver {
		v.gameOver = true
		return 0, true
	}
	return v.lives, false
}

// Coins returns the coin count.
func (v *Vitals) Coins() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.coins
}

// Lives returns the remaining lives.
func (v *Vitals) Lives() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lives
}

// GameOver reports whether the lives have run out.
func (v *Vitals) GameOver() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gameOver
}
