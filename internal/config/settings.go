// Package config provides rendering settings loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/jonathan/cvtext/internal/dates"
)

// EnvPrefix marks environment variables that override settings,
// e.g. CVTEXT_DATE_STYLE=iso.
const EnvPrefix = "CVTEXT_"

const maxSettingsFileSize = 1024 * 1024 // 1MB

// Settings control how a parsed résumé is rendered.
type Settings struct {
	// Activity details
	ShowActivityLocations bool `yaml:"show_activity_locations"`
	ShowTimeCommitments   bool `yaml:"show_time_commitments"`

	// Fonts
	MainFont            string `yaml:"main_font"`
	HeadingFont         string `yaml:"heading_font"`
	TitleFont           string `yaml:"title_font"`
	FontSizeInPoint     int    `yaml:"font_size_in_point" validate:"oneof=10 11 12"`
	HeadingRelativeSize string `yaml:"heading_relative_size" validate:"latexsize"`
	TitleRelativeSize   string `yaml:"title_relative_size" validate:"latexsize"`
	ProportionalNumbers bool   `yaml:"proportional_numbers"`
	OldStyleNumbers     bool   `yaml:"old_style_numbers"`

	// Paper and spacing
	Paper                  string  `yaml:"paper" validate:"required"`
	TopMarginInInch        float64 `yaml:"top_margin_in_inch" validate:"gte=0"`
	BottomMarginInInch     float64 `yaml:"bottom_margin_in_inch" validate:"gte=0"`
	LeftMarginInInch       float64 `yaml:"left_margin_in_inch" validate:"gte=0"`
	RightMarginInInch      float64 `yaml:"right_margin_in_inch" validate:"gte=0"`
	LineSpread             float64 `yaml:"line_spread" validate:"gt=0"`
	ParagraphSkipInPt      int     `yaml:"paragraph_skip_in_pt" validate:"gte=0"`
	EntrySkipInPt          int     `yaml:"entry_skip_in_pt" validate:"gte=0"`
	BeforeSectitleSkipInPt int     `yaml:"before_sectitle_skip_in_pt" validate:"gte=0"`
	AfterSectitleSkipInPt  int     `yaml:"after_sectitle_skip_in_pt" validate:"gte=0"`

	// Headings
	BoldHeadings                  bool   `yaml:"bold_headings"`
	AllCapHeadings                bool   `yaml:"all_cap_headings"`
	DefaultActivitiesSectionTitle string `yaml:"default_activities_section_title" validate:"required"`
	AwardsSectionTitle            string `yaml:"awards_section_title" validate:"required"`
	SkillsSectionTitle            string `yaml:"skills_section_title" validate:"required"`

	// Bullets, awards and skills
	BulletText        string  `yaml:"bullet_text"`
	BulletIndentInEm  float64 `yaml:"bullet_indent_in_em" validate:"gte=0"`
	BulletItemSepInEm float64 `yaml:"bullet_item_sep_in_em" validate:"gte=0"`
	BoldAwardNames    bool    `yaml:"bold_award_names"`
	BoldSkillSetNames bool    `yaml:"bold_skillset_names"`

	DateStyle      string `yaml:"date_style" validate:"datestyle"`
	ContactDivider string `yaml:"contact_divider"`

	// Links
	URLFontFollowsText bool   `yaml:"url_font_follows_text"`
	ColorLinks         bool   `yaml:"color_links"`
	URLColor           string `yaml:"url_color" validate:"required"`
}

// DefaultSettings returns the settings used when no file or override is given.
func DefaultSettings() Settings {
	return Settings{
		ShowActivityLocations:         true,
		ShowTimeCommitments:           true,
		FontSizeInPoint:               11,
		HeadingRelativeSize:           "large",
		TitleRelativeSize:             "LARGE",
		ProportionalNumbers:           true,
		Paper:                         "a4paper",
		TopMarginInInch:               0.8,
		BottomMarginInInch:            1.0,
		LeftMarginInInch:              1.0,
		RightMarginInInch:             1.0,
		LineSpread:                    1.0,
		EntrySkipInPt:                 6,
		BeforeSectitleSkipInPt:        12,
		AfterSectitleSkipInPt:         3,
		BoldHeadings:                  true,
		AllCapHeadings:                true,
		DefaultActivitiesSectionTitle: "Activities",
		AwardsSectionTitle:            "Awards",
		SkillsSectionTitle:            "Skills",
		BulletText:                    "•",
		BulletItemSepInEm:             1.0,
		BoldSkillSetNames:             true,
		DateStyle:                     string(dates.StyleAmerican),
		ContactDivider:                "|",
		URLFontFollowsText:            true,
		URLColor:                      "black",
	}
}

// Style returns the configured date style, or american if it is not recognized.
func (s *Settings) Style() dates.Style {
	style, err := dates.ParseStyle(s.DateStyle)
	if err != nil {
		return dates.StyleAmerican
	}
	return style
}

var latexSizes = map[string]bool{
	"tiny": true, "scriptsize": true, "footnotesize": true, "small": true,
	"normalsize": true, "large": true, "Large": true, "LARGE": true,
	"huge": true, "Huge": true,
}

// NewValidator returns a validator that knows the datestyle and latexsize
// tags and reports fields by their YAML key.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("datestyle", func(fl validator.FieldLevel) bool {
		_, err := dates.ParseStyle(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("latexsize", func(fl validator.FieldLevel) bool {
		return latexSizes[fl.Field().String()]
	})
	return v
}

// Validate checks that every setting holds a usable value.
func (s *Settings) Validate() error {
	if err := NewValidator().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// LoadSettings layers defaults, the YAML file at path (skipped when path is
// empty) and CVTEXT_ environment variables, then validates the result.
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")

	defaults, err := yamlv3.Marshal(DefaultSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to encode default settings: %w", err)
	}
	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default settings: %w", err)
	}

	if path != "" {
		content, err := readSettingsFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	}

	// CVTEXT_DATE_STYLE -> date_style
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func readSettingsFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if info.Size() > maxSettingsFileSize {
		return nil, fmt.Errorf("settings file too large: %d bytes (max %d)", info.Size(), maxSettingsFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return content, nil
}

// Save writes the settings as YAML, creating parent directories as needed.
func (s *Settings) Save(path string) error {
	data, err := yamlv3.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}
