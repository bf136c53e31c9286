package game

import (
	"fmt"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/config"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/camera"
)

// Session is the score, timers and end state of one round.
type Session struct {
	Score int
	Total int

	Elapsed  float32 // seconds
	Duration float32 // seconds

	// BoostLeft counts down while a power-up is active.
	BoostLeft       float32
	BoostDuration   float32
	BoostMultiplier float32
	BaseSpeed       float32

	Frozen bool
}

// NewSession creates a round from the game and camera settings.
func NewSession(cfg *config.Config) *Session {
	return &Session{
		Total:           cfg.Game.Bags,
		Duration:        float32(cfg.Game.Duration.Seconds()),
		BoostDuration:   float32(cfg.Camera.BoostDuration.Seconds()),
		BoostMultiplier: cfg.Camera.BoostMultiplier,
		BaseSpeed:       cfg.Camera.Speed,
	}
}

// Tick advances the round clock and the power-up timer. The round freezes
// once the clock reaches Duration; an expiring boost restores cam's base speed.
func (s *Session) Tick(dt float32, cam *camera.Camera) {
	if s.Frozen {
		return
	}
	s.Elapsed += dt
	if s.Elapsed >= s.Duration {
		s.Frozen = true
	}

	if s.BoostLeft > 0 {
		s.BoostLeft -= dt
		if s.BoostLeft <= 0 {
			s.BoostLeft = 0
			cam.Speed = s.BaseSpeed
		}
	}
}

// AddScore records n collected bags. Collecting the last bag ends the round.
func (s *Session) AddScore(n int) {
	if n <= 0 {
		return
	}
	s.Score += n
	if s.Score >= s.Total {
		s.Frozen = true
	}
}

// PowerUp restarts the boost timer. Speed is multiplied only when cam is
// at base speed, so overlapping boosts do not stack.
func (s *Session) PowerUp(cam *camera.Camera) {
	s.BoostLeft = s.BoostDuration
	if cam.Speed == s.BaseSpeed {
		cam.Speed = s.BaseSpeed * s.BoostMultiplier
	}
}

// Freeze ends the round early.
func (s *Session) Freeze() {
	s.Frozen = true
}

// Won reports whether every bag was collected.
func (s *Session) Won() bool {
	return s.Score >= s.Total
}

// Remaining returns the whole seconds left on the clock.
func (s *Session) Remaining() int {
	return max(int(s.Duration)-int(s.Elapsed), 0)
}

// HUDLines returns the on-screen score and time text.
func (s *Session) HUDLines() []string {
	return []string{
		fmt.Sprintf("Score: %d/%d", s.Score, s.Total),
		fmt.Sprintf("Time: %d", s.Remaining()),
	}
}

// Report returns the end-of-round message.
func (s *Session) Report() string {
	msg := "Better luck next time!!"
	if s.Won() {
		msg = "Congrats you have collected all bags"
	}
	return fmt.Sprintf("Your final score is: %d\n%s", s.Score, msg)
}
