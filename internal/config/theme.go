package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Semantic colors
	Create string `yaml:"create"` // success output
	Delete string `yaml:"delete"` // destructive confirmations

	SelectedBg string `yaml:"selected_bg"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// Notification colors
	InfoFg    string `yaml:"info_fg"`
	WarningFg string `yaml:"warning_fg"`
	ErrorFg   string `yaml:"error_fg"`
}

// DefaultColorScheme returns the purple theme
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset:     "default",
		Accent:     "#874BFD",
		Create:     "#5FD75F",
		Delete:     "#FF0000",
		SelectedBg: "#3A3A3A",
		Title:      "#D75FD7",
		Subtle:     "#585858",
		Normal:     "#D0D0D0",
		InfoFg:     "#00AFFF",
		WarningFg:  "#FFD700",
		ErrorFg:    "#FF0000",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset:     "monochrome",
		Accent:     "#FFFFFF",
		Create:     "#FFFFFF",
		Delete:     "#FFFFFF",
		SelectedBg: "#3A3A3A",
		Title:      "#FFFFFF",
		Subtle:     "#585858",
		Normal:     "#D0D0D0",
		InfoFg:     "#FFFFFF",
		WarningFg:  "#FFFFFF",
		ErrorFg:    "#FFFFFF",
	}
}

// GetPreset returns a preset color scheme by name, default for unknown names
func GetPreset(name string) ColorScheme {
	if name == "monochrome" {
		return MonochromeColorScheme()
	}
	return DefaultColorScheme()
}

// fields lists every color slot with its yaml name
func (c *ColorScheme) fields() map[string]*string {
	return map[string]*string{
		"accent":      &c.Accent,
		"create":      &c.Create,
		"delete":      &c.Delete,
		"selected_bg": &c.SelectedBg,
		"title":       &c.Title,
		"subtle":      &c.Subtle,
		"normal":      &c.Normal,
		"info_fg":     &c.InfoFg,
		"warning_fg":  &c.WarningFg,
		"error_fg":    &c.ErrorFg,
	}
}

// ApplyDefaults fills in missing color values from the preset
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
	base := preset.fields()
	for name, v := range c.fields() {
		if *v == "" {
			*v = *base[name]
		}
	}
}

// MergeFrom overrides colors with every non-empty value in other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	src := other.fields()
	for name, v := range c.fields() {
		if s := *src[name]; s != "" {
			*v = s
		}
	}
}

// Validate rejects colors that aren't hex values
func (c *ColorScheme) Validate() error {
	for name, v := range c.fields() {
		if *v == "" {
			continue
		}
		if _, err := colorful.Hex(*v); err != nil {
			return fmt.Errorf("theme.%s: %q is not a hex color", name, *v)
		}
	}
	return nil
}
