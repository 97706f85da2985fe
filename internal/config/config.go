// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/rigrun-overlay/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete overlay configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// CatalogPath is the TOML file describing the demo's menus and dropdowns.
	// Empty uses ~/.overlay/catalog.toml.
	CatalogPath string `toml:"catalog_path" json:"catalog_path"`

	Dropdown DropdownConfig `toml:"dropdown" json:"dropdown"`
	Menu     MenuConfig     `toml:"menu" json:"menu"`
	Log      LogConfig      `toml:"log" json:"log"`
	Storage  StorageConfig  `toml:"storage" json:"storage"`
	UI       UIConfig       `toml:"ui" json:"ui"`
}

// DropdownConfig holds defaults for dropdowns the catalog does not override.
type DropdownConfig struct {
	// Multiple starts dropdowns in multi-select mode
	Multiple bool `toml:"multiple" json:"multiple"`
	// SelectAll offers the Select All entry in multi-select mode
	SelectAll bool `toml:"select_all" json:"select_all"`
	// AllowAdd offers "Add ..." for queries no item matches
	AllowAdd bool `toml:"allow_add" json:"allow_add"`
	// Required fails validation when nothing is selected
	Required bool `toml:"required" json:"required"`
	// FilterMode is "substring" or "fuzzy"
	FilterMode string `toml:"filter_mode" json:"filter_mode"`
	// Placeholder is shown in an empty trigger
	Placeholder string `toml:"placeholder" json:"placeholder"`
	// MaxTags caps visible tags; 0 lets the width decide
	MaxTags int `toml:"max_tags" json:"max_tags"`
}

// MenuConfig holds menu behavior settings.
type MenuConfig struct {
	// KeyboardTooltips opens an item's tooltip when keyboard navigation lands on it
	KeyboardTooltips bool `toml:"keyboard_tooltips" json:"keyboard_tooltips"`
	// SubmenuTrigger is "item" or "button"; "input" is rejected
	SubmenuTrigger string `toml:"submenu_trigger" json:"submenu_trigger"`
}

// LogConfig controls the structured log.
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `toml:"level" json:"level"`
	// Path is the log file; empty logs to stderr
	Path string `toml:"path" json:"path"`
}

// StorageConfig controls selection persistence.
type StorageConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the SQLite database; empty uses ~/.overlay/selections.db
	Path string `toml:"path" json:"path"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`
	// PanelWidth is the width of a menu or dropdown panel in cells
	PanelWidth int `toml:"panel_width" json:"panel_width"`
	// PanelHeight is the number of rows a panel shows before scrolling
	PanelHeight int `toml:"panel_height" json:"panel_height"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Dropdown: DropdownConfig{
			SelectAll:   true,
			FilterMode:  "substring",
			Placeholder: "Select…",
		},
		Menu: MenuConfig{
			KeyboardTooltips: true,
			SubmenuTrigger:   "item",
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Theme:       "auto",
			PanelWidth:  28,
			PanelHeight: 10,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the overlay configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".overlay"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ResolvedCatalogPath returns CatalogPath, or the default under ConfigDir.
func (c *Config) ResolvedCatalogPath() (string, error) {
	if c.CatalogPath != "" {
		return c.CatalogPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.toml"), nil
}

// ResolvedStoragePath returns Storage.Path, or the default under ConfigDir.
func (c *Config) ResolvedStoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "selections.db"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file. TOML is tried first, then
// JSON, then the built-in defaults. Environment overrides apply in every
// case. A file that exists but cannot be decoded is reported alongside the
// defaults.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		if errors.As(err, new(ValidateErrors)) {
			return nil, err
		}
		loadErr = err
		break
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadFromPath loads the file at path, choosing the decoder by extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path into cfg. Keys the file does not
// set keep their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		fmt.Fprintf(os.Stderr, "Warning: unknown config keys in %s: %s\n", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes the JSON file at path into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path atomically with a short header.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# overlay configuration file\n")
	b.WriteString("# Generated by overlay - edit with care\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg to path atomically as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError is one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every setting and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch strings.ToLower(c.Dropdown.FilterMode) {
	case "substring", "fuzzy":
	default:
		errs = append(errs, ValidationError{
			Field:   "dropdown.filter_mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: substring, fuzzy", c.Dropdown.FilterMode),
		})
	}

	if c.Dropdown.MaxTags < 0 {
		errs = append(errs, ValidationError{
			Field:   "dropdown.max_tags",
			Message: fmt.Sprintf("must be 0 or more, got %d", c.Dropdown.MaxTags),
		})
	}

	switch strings.ToLower(c.Menu.SubmenuTrigger) {
	case "item", "button":
	case "input":
		errs = append(errs, ValidationError{
			Field:   "menu.submenu_trigger",
			Message: "an input control cannot anchor a sub-menu",
		})
	default:
		errs = append(errs, ValidationError{
			Field:   "menu.submenu_trigger",
			Message: fmt.Sprintf("invalid trigger '%s', must be one of: item, button", c.Menu.SubmenuTrigger),
		})
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.UI.PanelWidth < 8 || c.UI.PanelWidth > 200 {
		errs = append(errs, ValidationError{
			Field:   "ui.panel_width",
			Message: fmt.Sprintf("must be between 8 and 200, got %d", c.UI.PanelWidth),
		})
	}
	if c.UI.PanelHeight < 1 || c.UI.PanelHeight > 100 {
		errs = append(errs, ValidationError{
			Field:   "ui.panel_height",
			Message: fmt.Sprintf("must be between 1 and 100, got %d", c.UI.PanelHeight),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty settings from Default.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Dropdown.FilterMode == "" {
		c.Dropdown.FilterMode = defaults.Dropdown.FilterMode
	}
	if c.Menu.SubmenuTrigger == "" {
		c.Menu.SubmenuTrigger = defaults.Menu.SubmenuTrigger
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.PanelWidth == 0 {
		c.UI.PanelWidth = defaults.UI.PanelWidth
	}
	if c.UI.PanelHeight == 0 {
		c.UI.PanelHeight = defaults.UI.PanelHeight
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - OVERLAY_LOG_LEVEL: overrides log.level
//   - OVERLAY_LOG_PATH: overrides log.path
//   - OVERLAY_FILTER_MODE: overrides dropdown.filter_mode
//   - OVERLAY_DB_PATH: overrides storage.path
//   - OVERLAY_NO_STORAGE: "1" or "true" disables selection persistence
//   - OVERLAY_CATALOG: overrides catalog_path
func (c *Config) ApplyEnvOverrides() {
	if level := os.Getenv("OVERLAY_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if path := os.Getenv("OVERLAY_LOG_PATH"); path != "" {
		c.Log.Path = path
	}
	if mode := os.Getenv("OVERLAY_FILTER_MODE"); mode != "" {
		c.Dropdown.FilterMode = mode
	}
	if path := os.Getenv("OVERLAY_DB_PATH"); path != "" {
		c.Storage.Path = path
	}
	if off := os.Getenv("OVERLAY_NO_STORAGE"); off != "" {
		c.Storage.Enabled = !(off == "1" || strings.EqualFold(off, "true"))
	}
	if path := os.Getenv("OVERLAY_CATALOG"); path != "" {
		c.CatalogPath = path
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation, e.g.
// "dropdown.filter_mode".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field
// equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type
// conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"catalog_path",
		"dropdown.multiple",
		"dropdown.select_all",
		"dropdown.allow_add",
		"dropdown.required",
		"dropdown.filter_mode",
		"dropdown.placeholder",
		"dropdown.max_tags",
		"menu.keyboard_tooltips",
		"menu.submenu_trigger",
		"log.level",
		"log.path",
		"storage.enabled",
		"storage.path",
		"ui.theme",
		"ui.panel_width",
		"ui.panel_height",
	}
}

// Merge copies the non-empty string and non-zero integer settings of other
// into c. Booleans are left alone since false cannot be told from unset.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	mergeValue(reflect.ValueOf(c).Elem(), reflect.ValueOf(other).Elem())
}

func mergeValue(dst, src reflect.Value) {
	for i := 0; i < src.NumField(); i++ {
		s, d := src.Field(i), dst.Field(i)
		switch s.Kind() {
		case reflect.Struct:
			mergeValue(d, s)
		case reflect.String:
			if s.String() != "" {
				d.SetString(s.String())
			}
		case reflect.Int, reflect.Int64:
			if s.Int() != 0 {
				d.SetInt(s.Int())
			}
		}
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration, loading it on first access.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal replaces the global configuration.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
