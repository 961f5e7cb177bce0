// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ImageConfig holds settings for image-to-PDF conversion.
type ImageConfig struct {
	// PageSize is a preset name (A4, LETTER) or "WxH" in inches (default A4).
	PageSize string `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// Margin is the page margin in inches (default 0.5).
	Margin float64 `json:"margin" yaml:"margin" mapstructure:"margin"`

	// Layout is the multi-image layout tag: vertical, horizontal, or grid.
	Layout string `json:"layout" yaml:"layout" mapstructure:"layout"`
}

// EngineConfig holds settings for the document conversion engines.
type EngineConfig struct {
	// OfficePath overrides the location of the headless office binary (soffice).
	OfficePath string `json:"office_path,omitempty" yaml:"office_path,omitempty" mapstructure:"office_path"`

	// ContainerImage is the image that provides soffice inside docker or podman
	// (default "libreoffice:latest").
	ContainerImage string `json:"container_image" yaml:"container_image" mapstructure:"container_image"`

	// DisableContainer skips container runtime detection entirely.
	DisableContainer bool `json:"disable_container" yaml:"disable_container" mapstructure:"disable_container"`

	// DisableTextFallback removes the text-only reconstruction backend.
	DisableTextFallback bool `json:"disable_text_fallback" yaml:"disable_text_fallback" mapstructure:"disable_text_fallback"`
}

// JournalConfig holds settings for the conversion history database.
type JournalConfig struct {
	// Path is the SQLite database file. Empty disables the journal.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Image   ImageConfig   `json:"image" yaml:"image" mapstructure:"image"`
	Engine  EngineConfig  `json:"engine" yaml:"engine" mapstructure:"engine"`
	Journal JournalConfig `json:"journal" yaml:"journal" mapstructure:"journal"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Image: ImageConfig{
			PageSize: "A4",
			Margin:   0.5,
			Layout:   "vertical",
		},
		Engine: EngineConfig{
			ContainerImage: "libreoffice:latest",
		},
	}
}
