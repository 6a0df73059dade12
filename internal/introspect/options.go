package introspect

// Options controls a single Serialize call.
type Options struct {
	// IncludeRelationships adds the relationships block. Nested objects
	// reached through property values never include relationships.
	IncludeRelationships bool
	// MaxDepth bounds recursion. A value <= 0 yields a truncation marker.
	MaxDepth int
	// IncludePrivate includes private data fields.
	IncludePrivate bool
	// ExpandCollections formats slices and maps element-wise instead of
	// summarizing them.
	ExpandCollections bool
	// FormatForLLM adds the _llm_context block.
	FormatForLLM bool
	// Fields restricts the result to the given dotted paths. Nil means no
	// filter; an empty, non-nil slice selects only _object_type.
	Fields []string
	// Visited is threaded through recursive calls. Leave nil at the top
	// level; sharing one across concurrent calls is not supported.
	Visited *Visited
}

// DefaultOptions returns the options used by ToDict when nothing is set.
func DefaultOptions() Options {
	return Options{
		IncludeRelationships: true,
		MaxDepth:             3,
		IncludePrivate:       false,
		ExpandCollections:    true,
		FormatForLLM:         true,
	}
}

// Option mutates Options. Domain entry points accept these.
type Option func(*Options)

// WithMaxDepth sets MaxDepth.
func WithMaxDepth(d int) Option { return func(o *Options) { o.MaxDepth = d } }

// WithFields sets the field-path filter.
func WithFields(paths ...string) Option {
	return func(o *Options) {
		if paths == nil {
			paths = []string{}
		}
		o.Fields = paths
	}
}

// WithoutRelationships disables the relationships block.
func WithoutRelationships() Option { return func(o *Options) { o.IncludeRelationships = false } }

// WithCollapsedCollections summarizes every collection.
func WithCollapsedCollections() Option { return func(o *Options) { o.ExpandCollections = false } }

// WithoutContext disables the _llm_context block.
func WithoutContext() Option { return func(o *Options) { o.FormatForLLM = false } }

// WithPrivate includes private data fields.
func WithPrivate() Option { return func(o *Options) { o.IncludePrivate = true } }

// Apply returns DefaultOptions with opts applied in order.
func Apply(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
