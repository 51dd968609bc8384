package tui

import (
	"io"
	"time"

	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/service"
	"github.com/Veraticus/wardrobe/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Service      service.ClothesService
	Input        io.Reader
	Output       io.Writer
	Filter       model.ListFilter
	Width        int
	Height       int
	NoticeTTL    time.Duration
	AutoClassify bool
	AltScreen    bool
	ShowStats    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Width:        80,
		Height:       24,
		NoticeTTL:    3 * time.Second,
		AutoClassify: true,
		AltScreen:    true,
		ShowStats:    true,
	}
}

// WithService sets the closet service.
func WithService(svc service.ClothesService) Option {
	return func(c *Config) {
		c.Service = svc
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFilter limits the grid to garments matching filter.
func WithFilter(filter model.ListFilter) Option {
	return func(c *Config) {
		c.Filter = filter
	}
}

// WithAutoClassify controls whether uploads ask the service to classify.
func WithAutoClassify(enabled bool) Option {
	return func(c *Config) {
		c.AutoClassify = enabled
	}
}

// WithNoticeTTL sets how long a notice stays in the status bar.
func WithNoticeTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.NoticeTTL = ttl
	}
}

// WithStats toggles the statistics side panel.
func WithStats(enabled bool) Option {
	return func(c *Config) {
		c.ShowStats = enabled
	}
}

// WithIO runs the program on the given streams instead of the terminal.
// The alternate screen is disabled.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
		c.AltScreen = false
	}
}
