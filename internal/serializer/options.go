package serializer

// DefaultPreserveClassPrefix is the class prefix kept by the class-name
// filter when no allowlist is configured. Plugins stamp their wrappers with
// slate- classes so downstream styling can target them.
const DefaultPreserveClassPrefix = "slate-"

// Options controls the serialization passes. Zero value is not useful;
// start from DefaultOptions.
type Options struct {
	// StripWhitespace removes raw CR/LF/TAB characters from the final output.
	StripWhitespace bool
	// StripDataAttributes removes editor bookkeeping attributes
	// (data-slate-node, data-slate-type, data-slate-leaf, data-testid).
	StripDataAttributes bool
	// PreserveClassNames lists class prefixes the per-fragment class filter
	// keeps. Class attributes with no surviving token are dropped entirely.
	PreserveClassNames []string
	// Sanitize runs the output through the HTML sanitizer policy.
	Sanitize bool
	// Minify collapses the output through the HTML minifier.
	Minify bool
	// RenderOptions is forwarded untouched to plugin callbacks.
	RenderOptions map[string]any
}

// DefaultOptions returns the standard serialization configuration:
// whitespace and bookkeeping attributes stripped, slate- classes preserved.
func DefaultOptions() Options {
	return Options{
		StripWhitespace:     true,
		StripDataAttributes: true,
		PreserveClassNames:  []string{DefaultPreserveClassPrefix},
	}
}

func (o Options) classPrefixes() []string {
	if len(o.PreserveClassNames) == 0 {
		return []string{DefaultPreserveClassPrefix}
	}
	return o.PreserveClassNames
}
