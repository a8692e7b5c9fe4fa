// Package config holds the display settings bundle consumed by the memory
// view and loads it from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/internal/writer"
)

// ErrInvalidColor indicates a colour that is not in "#RRGGBB" form.
var ErrInvalidColor = errors.New("config: invalid color")

// Settings is the bundle of display options every node draw reads.
type Settings struct {
	ShowNodeAddress        bool `yaml:"show_node_address"`
	ShowNodeOffset         bool `yaml:"show_node_offset"`
	ShowNodeText           bool `yaml:"show_node_text"`
	ShowCommentFloat       bool `yaml:"show_comment_float"`
	ShowCommentInteger     bool `yaml:"show_comment_integer"`
	ShowCommentPointer     bool `yaml:"show_comment_pointer"`
	HighlightChangedValues bool `yaml:"highlight_changed_values"`

	Colors Colors `yaml:"colors"`
}

// Colors groups the theme colours.
type Colors struct {
	Background draw.Color `yaml:"background"`
	Selected   draw.Color `yaml:"selected"`
	Hidden     draw.Color `yaml:"hidden"`
	Offset     draw.Color `yaml:"offset"`
	Address    draw.Color `yaml:"address"`
	Hex        draw.Color `yaml:"hex"`
	Type       draw.Color `yaml:"type"`
	Name       draw.Color `yaml:"name"`
	Value      draw.Color `yaml:"value"`
	Index      draw.Color `yaml:"index"`
	Comment    draw.Color `yaml:"comment"`
	Text       draw.Color `yaml:"text"`
	Highlight  draw.Color `yaml:"highlight"`
	Invalid    draw.Color `yaml:"invalid"`
}

// Default returns the built-in settings.
func Default() *Settings {
	s := &Settings{
		ShowNodeAddress:        true,
		ShowNodeOffset:         true,
		ShowNodeText:           true,
		ShowCommentFloat:       true,
		ShowCommentInteger:     true,
		ShowCommentPointer:     true,
		HighlightChangedValues: true,
	}
	s.applyDefaults()
	return s
}

// BackgroundColor is shorthand for Colors.Background.
func (s *Settings) BackgroundColor() draw.Color { return s.Colors.Background }

// SelectedColor is shorthand for Colors.Selected.
func (s *Settings) SelectedColor() draw.Color { return s.Colors.Selected }

func (s *Settings) applyDefaults() {
	c := &s.Colors
	set := func(dst *draw.Color, v draw.Color) {
		if *dst == "" {
			*dst = v
		}
	}
	set(&c.Background, "#1E1E1E")
	set(&c.Selected, "#3A3D5C")
	set(&c.Hidden, "#3C3C3C")
	set(&c.Offset, "#D16969")
	set(&c.Address, "#4EC9B0")
	set(&c.Hex, "#D4D4D4")
	set(&c.Type, "#569CD6")
	set(&c.Name, "#9CDCFE")
	set(&c.Value, "#FFAA00")
	set(&c.Index, "#B5CEA8")
	set(&c.Comment, "#6A9955")
	set(&c.Text, "#CE9178")
	set(&c.Highlight, "#F44747")
	set(&c.Invalid, "#808080")
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks every colour.
func (s *Settings) Validate() error {
	c := s.Colors
	for name, v := range map[string]draw.Color{
		"background": c.Background, "selected": c.Selected, "hidden": c.Hidden,
		"offset": c.Offset, "address": c.Address, "hex": c.Hex, "type": c.Type,
		"name": c.Name, "value": c.Value, "index": c.Index, "comment": c.Comment,
		"text": c.Text, "highlight": c.Highlight, "invalid": c.Invalid,
	} {
		if !colorPattern.MatchString(string(v)) {
			return fmt.Errorf("%w: %s = %q", ErrInvalidColor, name, v)
		}
	}
	return nil
}

// LoadFile reads a YAML settings file. Keys missing from the file keep
// their defaults.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML settings on top of Default().
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save validates s and writes it as YAML to w.
func (s *Settings) Save(w writer.Sink) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return w.Write(data)
}

// SaveFile writes s to path, replacing any existing file atomically.
func (s *Settings) SaveFile(path string) error {
	return s.Save(&writer.File{Path: path})
}
