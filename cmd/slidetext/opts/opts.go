package opts

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// DeckPath points at the root --deck flag value
	DeckPath *string
	// OutputPath points at the root --output flag value
	OutputPath *string
}

// Deck returns the deck path.
func (o *RootOpts) Deck() string { return *o.DeckPath }

// Output returns the output path, falling back to the deck path for
// in-place rewriting.
func (o *RootOpts) Output() string {
	if *o.OutputPath != "" {
		return *o.OutputPath
	}
	return *o.DeckPath
}
