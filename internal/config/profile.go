package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultProfilesFile is the profiles file name searched for in the working
// and home directories.
const DefaultProfilesFile = ".wordcut.yaml"

// Profile is a named preset of cleaning options.
type Profile struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Options     cleaner.Options `json:"options"`
}

// Profiles maps profile names to presets.
type Profiles map[string]Profile

// profileFile is the on-disk YAML shape.
type profileFile struct {
	Profiles map[string]profileEntry `yaml:"profiles" validate:"dive,keys,profilename,endkeys"`
}

type profileEntry struct {
	Description string          `yaml:"description" validate:"max=200"`
	Options     map[string]bool `yaml:"options" validate:"dive,keys,optionname,endkeys"`
}

var profileNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

var profileValidate = NewValidator()

// NewValidator returns a validator with the "profilename" and "optionname"
// tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("profilename", func(fl validator.FieldLevel) bool {
		return profileNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("optionname", func(fl validator.FieldLevel) bool {
		return cleaner.IsOptionName(fl.Field().String())
	})
	return v
}

// DefaultProfiles returns the built-in presets.
func DefaultProfiles() Profiles {
	return Profiles{
		"all": {
			Name:        "all",
			Description: "Every exclusion enabled",
			Options:     cleaner.AllOptions(),
		},
		"body": {
			Name:        "body",
			Description: "Body text only: drop front matter, back matter and layout noise",
			Options: cleaner.Options{
				ExcludeReferences:     true,
				ExcludeAppendices:     true,
				ExcludeAbstract:       true,
				ExcludeContents:       true,
				ExcludeFigureCaptions: true,
				ExcludePageNumbers:    true,
			},
		},
		"none": {
			Name:        "none",
			Description: "No exclusions; count every word",
		},
	}
}

// LoadProfiles reads a YAML profiles file and merges it over the built-in
// presets. A file entry replaces a built-in with the same name. If the file
// does not exist, it returns ErrProfilesNotFound.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided profiles path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProfilesNotFound
		}
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return ParseProfiles(data)
}

// ParseProfiles parses YAML profile data and merges it over the built-in
// presets.
func ParseProfiles(data []byte) (Profiles, error) {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if err := profileValidate.Struct(pf); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProfile, describeValidation(err))
	}

	profiles := DefaultProfiles()
	for name, entry := range pf.Profiles {
		profiles[name] = Profile{
			Name:        name,
			Description: entry.Description,
			Options:     cleaner.OptionsFromMap(entry.Options),
		}
	}
	return profiles, nil
}

// Get returns the named profile.
func (p Profiles) Get(name string) (Profile, error) {
	prof, ok := p[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return prof, nil
}

// Names returns the profile names, sorted.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the profiles sorted by name.
func (p Profiles) List() []Profile {
	out := make([]Profile, 0, len(p))
	for _, name := range p.Names() {
		out = append(out, p[name])
	}
	return out
}

// FindProfilesFile searches for a profiles file in the following order:
// 1. If profilesPath is specified, use it directly
// 2. Look for .wordcut.yaml in the current directory
// 3. Look for .wordcut.yaml in the user's home directory
//
// Returns the path to the file if found, or empty string if not found.
func FindProfilesFile(profilesPath string) string {
	if profilesPath != "" {
		if _, err := os.Stat(profilesPath); err == nil {
			return profilesPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultProfilesFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultProfilesFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// ResolveProfiles loads the profiles file found by FindProfilesFile, or the
// built-in presets when there is none. An explicitly named file that does
// not exist is an error.
func ResolveProfiles(profilesPath string) (Profiles, error) {
	path := FindProfilesFile(profilesPath)
	if path == "" {
		if profilesPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrProfilesNotFound, profilesPath)
		}
		return DefaultProfiles(), nil
	}
	return LoadProfiles(path)
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "profilename":
			msgs = append(msgs, fmt.Sprintf("profile name %q must be lowercase letters, digits, '-' or '_'", e.Value()))
		case "optionname":
			msgs = append(msgs, fmt.Sprintf("unknown option %q", e.Value()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", e.Namespace(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation '%s'", e.Namespace(), e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
