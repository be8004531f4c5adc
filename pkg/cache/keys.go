package cache

// Keyer builds cache keys. Implementations must include every option that
// changes the cached value.
type Keyer interface {
	// LayoutKey identifies the search outcome for one snippet.
	LayoutKey(wordsHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the search inputs besides the words themselves.
type LayoutKeyOpts struct {
	Seed     uint64 `json:"seed"`
	Attempts int    `json:"attempts"`
	Straight bool   `json:"straight,omitempty"`
}

// ArtifactKeyOpts are the render inputs besides the scene.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Background string  `json:"background,omitempty"`
	Palette    string  `json:"palette,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	LineWidth  float64 `json:"line_width,omitempty"`
	DotRadius  float64 `json:"dot_radius,omitempty"`
	Padding    int     `json:"padding,omitempty"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", wordsHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
