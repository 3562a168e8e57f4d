package cleaner

// Options selects which manuscript artifacts the cleaner removes.
// The zero value removes nothing.
type Options struct {
	ExcludeTitle            bool `json:"excludeTitle" yaml:"excludeTitle"`
	ExcludeReferences       bool `json:"excludeReferences" yaml:"excludeReferences"`
	ExcludeAppendices       bool `json:"excludeAppendices" yaml:"excludeAppendices"`
	ExcludeAbstract         bool `json:"excludeAbstract" yaml:"excludeAbstract"`
	ExcludeContents         bool `json:"excludeContents" yaml:"excludeContents"`
	ExcludePageNumbers      bool `json:"excludePageNumbers" yaml:"excludePageNumbers"`
	ExcludeFigureCaptions   bool `json:"excludeFigureCaptions" yaml:"excludeFigureCaptions"`
	ExcludeEquations        bool `json:"excludeEquations" yaml:"excludeEquations"`
	ExcludeCitations        bool `json:"excludeCitations" yaml:"excludeCitations"`
	ExcludeInlineFigureRefs bool `json:"excludeInlineFigureRefs" yaml:"excludeInlineFigureRefs"`
	ExcludeQuotes           bool `json:"excludeQuotes" yaml:"excludeQuotes"`
	ExcludeUnits            bool `json:"excludeUnits" yaml:"excludeUnits"`
	ExcludeNumbers          bool `json:"excludeNumbers" yaml:"excludeNumbers"`
	ExcludeSymbols          bool `json:"excludeSymbols" yaml:"excludeSymbols"`
}

// optionNames is the canonical order used by every listing surface.
var optionNames = []string{
	"excludeTitle",
	"excludeReferences",
	"excludeAppendices",
	"excludeAbstract",
	"excludeContents",
	"excludePageNumbers",
	"excludeFigureCaptions",
	"excludeEquations",
	"excludeCitations",
	"excludeInlineFigureRefs",
	"excludeQuotes",
	"excludeUnits",
	"excludeNumbers",
	"excludeSymbols",
}

// OptionNames returns the recognized option names in canonical order.
func OptionNames() []string {
	out := make([]string, len(optionNames))
	copy(out, optionNames)
	return out
}

// IsOptionName reports whether name is a recognized option.
func IsOptionName(name string) bool {
	return (&Options{}).field(name) != nil
}

// field returns a pointer to the flag named name, or nil.
func (o *Options) field(name string) *bool {
	switch name {
	case "excludeTitle":
		return &o.ExcludeTitle
	case "excludeReferences":
		return &o.ExcludeReferences
	case "excludeAppendices":
		return &o.ExcludeAppendices
	case "excludeAbstract":
		return &o.ExcludeAbstract
	case "excludeContents":
		return &o.ExcludeContents
	case "excludePageNumbers":
		return &o.ExcludePageNumbers
	case "excludeFigureCaptions":
		return &o.ExcludeFigureCaptions
	case "excludeEquations":
		return &o.ExcludeEquations
	case "excludeCitations":
		return &o.ExcludeCitations
	case "excludeInlineFigureRefs":
		return &o.ExcludeInlineFigureRefs
	case "excludeQuotes":
		return &o.ExcludeQuotes
	case "excludeUnits":
		return &o.ExcludeUnits
	case "excludeNumbers":
		return &o.ExcludeNumbers
	case "excludeSymbols":
		return &o.ExcludeSymbols
	}
	return nil
}

// OptionsFromMap builds Options from a name->enabled mapping.
// Missing keys are false and unknown keys are ignored.
func OptionsFromMap(m map[string]bool) Options {
	var o Options
	o.Apply(m)
	return o
}

// Apply overlays m onto o. Keys present in m win, including explicit false.
func (o *Options) Apply(m map[string]bool) {
	for name, v := range m {
		if p := o.field(name); p != nil {
			*p = v
		}
	}
}

// Set enables or disables a single option. It returns false for unknown names.
func (o *Options) Set(name string, v bool) bool {
	p := o.field(name)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Map returns every option keyed by its canonical name.
func (o Options) Map() map[string]bool {
	m := make(map[string]bool, len(optionNames))
	for _, name := range optionNames {
		m[name] = *o.field(name)
	}
	return m
}

// Enabled lists the names of enabled options in canonical order.
func (o Options) Enabled() []string {
	out := make([]string, 0, len(optionNames))
	for _, name := range optionNames {
		if *o.field(name) {
			out = append(out, name)
		}
	}
	return out
}

// AllOptions returns Options with every exclusion turned on.
func AllOptions() Options {
	var o Options
	for _, name := range optionNames {
		o.Set(name, true)
	}
	return o
}

// excludes reports whether the body of section s should be dropped.
func (o Options) excludes(s Section) bool {
	switch s {
	case SectionReferences:
		return o.ExcludeReferences
	case SectionAppendices:
		return o.ExcludeAppendices
	case SectionAbstract:
		return o.ExcludeAbstract
	case SectionContents:
		return o.ExcludeContents
	}
	return false
}
