package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/config"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/camera"
)

func newSession() (*Session, *camera.Camera) {
	cfg := config.Default()
	cam := camera.New(mgl32.Vec3{0, 0.5, 3}, mgl32.Vec3{0, 1, 0})
	cam.Speed = cfg.Camera.Speed
	return NewSession(cfg), cam
}

func TestNewSessionFromConfig(t *testing.T) {
	s, _ := newSession()
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, float32(60), s.Duration)
	assert.Equal(t, float32(10), s.BoostDuration)
	assert.Equal(t, float32(2), s.BoostMultiplier)
	assert.Equal(t, float32(2.5), s.BaseSpeed)
}

func TestTickFreezesAtDuration(t *testing.T) {
	s, cam := newSession()
	s.Tick(59.5, cam)
	assert.False(t, s.Frozen)
	assert.Equal(t, 1, s.Remaining())

	s.Tick(0.5, cam)
	assert.True(t, s.Frozen)
	assert.Equal(t, 0, s.Remaining())

	s.Tick(5, cam)
	assert.Equal(t, float32(60), s.Elapsed, "a frozen round stops its clock")
}

func TestPowerUpBoost(t *testing.T) {
	s, cam := newSession()

	s.PowerUp(cam)
	assert.Equal(t, float32(5), cam.Speed)
	assert.Equal(t, float32(10), s.BoostLeft)

	s.Tick(6, cam)
	s.PowerUp(cam)
	assert.Equal(t, float32(5), cam.Speed, "boosts do not stack")
	assert.Equal(t, float32(10), s.BoostLeft, "a second star restarts the timer")

	s.Tick(9.9, cam)
	assert.Equal(t, float32(5), cam.Speed)

	s.Tick(0.2, cam)
	assert.Zero(t, s.BoostLeft)
	assert.Equal(t, float32(2.5), cam.Speed)
}

func TestAddScore(t *testing.T) {
	s, _ := newSession()
	s.Total = 2

	s.AddScore(0)
	assert.Zero(t, s.Score)

	s.AddScore(1)
	assert.Equal(t, 1, s.Score)
	assert.False(t, s.Frozen)

	s.AddScore(1)
	assert.True(t, s.Frozen)
	assert.True(t, s.Won())
}

func TestHUDAndReport(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		elapsed float32
		hud     []string
		report  string
	}{
		{"start", 0, 0, []string{"Score: 0/10", "Time: 60"},
			"Your final score is: 0\nBetter luck next time!!"},
		{"partial seconds truncate", 3, 12.7, []string{"Score: 3/10", "Time: 48"},
			"Your final score is: 3\nBetter luck next time!!"},
		{"all bags", 10, 30, []string{"Score: 10/10", "Time: 30"},
			"Your final score is: 10\nCongrats you have collected all bags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession()
			s.Score = tt.score
			s.Elapsed = tt.elapsed
			assert.Equal(t, tt.hud, s.HUDLines())
			assert.Equal(t, tt.report, s.Report())
		})
	}
}

func TestFreeze(t *testing.T) {
	s, _ := newSession()
	s.Freeze()
	assert.True(t, s.Frozen)
	assert.False(t, s.Won())
}
