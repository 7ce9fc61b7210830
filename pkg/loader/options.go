package loader

// DefaultMissingTokens are read as the missing marker, in addition to the
// empty string.
var DefaultMissingTokens = []string{"NA", "N/A", "NaN", "nan", "null", "NULL"}

// Options configures how an input is read.
type Options struct {
	// Delimiter separates fields in delimited text. Zero means ','.
	Delimiter rune

	// MissingTokens are cell values treated as missing.
	MissingTokens []string
}

// Option is a functional option for configuring a load.
type Option func(*Options)

// WithDelimiter sets the field delimiter for delimited text.
func WithDelimiter(r rune) Option {
	return func(o *Options) {
		o.Delimiter = r
	}
}

// WithMissingTokens replaces the tokens read as missing values.
func WithMissingTokens(tokens ...string) Option {
	return func(o *Options) {
		o.MissingTokens = tokens
	}
}

func applyOptions(opts []Option) *Options {
	o := &Options{
		Delimiter:     ',',
		MissingTokens: DefaultMissingTokens,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	return o
}

func (o *Options) missingSet() map[string]bool {
	set := make(map[string]bool, len(o.MissingTokens)+1)
	set[""] = true
	for _, tok := range o.MissingTokens {
		set[tok] = true
	}
	return set
}
