package vkboot

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Version is a semantic application or engine version in the packed form
// the API expects.
type Version struct {
	Major int `toml:"major"`
	Minor int `toml:"minor"`
	Patch int `toml:"patch"`
}

// VK packs the version into the API's 32-bit encoding.
func (v Version) VK() uint32 {
	return uint32(vk.MakeVersion(v.Major, v.Minor, v.Patch))
}

// Config carries every knob of the bootstrap. DefaultConfig returns the
// values the program was written against; a TOML file can override the
// serializable fields.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	AppName       string  `toml:"app_name"`
	AppVersion    Version `toml:"app_version"`
	EngineName    string  `toml:"engine_name"`
	EngineVersion Version `toml:"engine_version"`
	APIVersion    Version `toml:"api_version"`

	// Debug enables the validation layers and the debug messenger.
	Debug            bool     `toml:"debug"`
	ValidationLayers []string `toml:"validation_layers"`

	VertexShaderPath   string `toml:"vertex_shader"`
	FragmentShaderPath string `toml:"fragment_shader"`

	// OnValidationError, when set, is invoked with the message text of
	// every error-severity validation report. Debugger traps or test
	// failures hang off this hook; nothing is installed by default.
	OnValidationError func(message string) `toml:"-"`
}

// DefaultConfig returns the built-in settings: an 800x600 fixed-size
// window, API version 1.1 and the Khronos validation layer (enabled only
// when Debug is set).
func DefaultConfig() Config {
	return Config{
		Title:  "Learning Vulkan",
		Width:  800,
		Height: 600,

		AppName:       "Learning Vulkan",
		AppVersion:    Version{Major: 1, Minor: 0, Patch: 0},
		EngineName:    "No Engine",
		EngineVersion: Version{Major: 1, Minor: 0, Patch: 0},
		APIVersion:    Version{Major: 1, Minor: 1, Patch: 0},

		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},

		VertexShaderPath:   "shaders/vert.spv",
		FragmentShaderPath: "shaders/frag.spv",
	}
}

// LoadConfig reads TOML overrides on top of DefaultConfig. A missing file
// is not an error; the defaults are returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "read config")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}
