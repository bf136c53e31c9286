// Package config handles game configuration loading and management.
package config

import "time"

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Game     GameConfig     `yaml:"game"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`

	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures land here
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	Duration        time.Duration `yaml:"duration"`
	Trees           int           `yaml:"trees"`
	Bags            int           `yaml:"bags"`
	PowerUps        int           `yaml:"power_ups"`
	Birds           int           `yaml:"birds"`
	FieldHalfExtent float32       `yaml:"field_half_extent"`
	TreeRadius      float32       `yaml:"tree_radius"`
	Seed            uint64        `yaml:"seed"` // 0 picks a time-based seed
	ShowFPS         bool          `yaml:"show_fps"`
}

// CameraConfig holds first-person camera settings.
type CameraConfig struct {
	Speed           float32       `yaml:"speed"`
	Sensitivity     float32       `yaml:"sensitivity"`
	EyeHeight       float32       `yaml:"eye_height"`
	BoostMultiplier float32       `yaml:"boost_multiplier"`
	BoostDuration   time.Duration `yaml:"boost_duration"`
}

// AssetsConfig holds asset locations, relative to Root.
type AssetsConfig struct {
	Root          string   `yaml:"root"`
	Tree          string   `yaml:"tree"`
	BirdBody      string   `yaml:"bird_body"`
	BirdLeftWing  string   `yaml:"bird_left_wing"`
	BirdRightWing string   `yaml:"bird_right_wing"`
	Bag           string   `yaml:"bag"`
	Star          string   `yaml:"star"`
	Ground        string   `yaml:"ground"`
	Skybox        []string `yaml:"skybox"` // +X, -X, +Y, -Y, +Z, -Z
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1000,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Near:       0.1,
			Far:        100,

			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Game: GameConfig{
			Duration:        60 * time.Second,
			Trees:           500,
			Bags:            10,
			PowerUps:        5,
			Birds:           5,
			FieldHalfExtent: 20,
			TreeRadius:      0.5,
		},
		Camera: CameraConfig{
			Speed:           2.5,
			Sensitivity:     0.1,
			EyeHeight:       0.5,
			BoostMultiplier: 2,
			BoostDuration:   10 * time.Second,
		},
		Assets: AssetsConfig{
			Root:          "assets",
			Tree:          "models/tree/Tree.obj",
			BirdBody:      "models/bird/body.obj",
			BirdLeftWing:  "models/bird/wingleft.obj",
			BirdRightWing: "models/bird/wingright.obj",
			Bag:           "models/bag/Garbage_Bag.obj",
			Star:          "models/star/Star_round.obj",
			Ground:        "textures/grass.jpg",
			Skybox: []string{
				"skybox/right.jpg",
				"skybox/left.jpg",
				"skybox/top.jpg",
				"skybox/bottom.jpg",
				"skybox/front.jpg",
				"skybox/back.jpg",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
