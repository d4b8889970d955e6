package extractor

// Wire keys of the configuration passed to an entry point.
const (
	KeyTargetDirectory = "target-directory"
	KeyDataTargetName  = "data-target-name"
	KeyPrettyPrint     = "pretty-print"
)

// Config is the fixed-shape configuration handed to an extraction entry point.
// It is passed by value.
type Config struct {
	TargetDirectory string `json:"target-directory"`
	DataTargetName  string `json:"data-target-name"`
	PrettyPrint     bool   `json:"pretty-print"`
}

// Map returns the configuration keyed by its wire keys.
func (c Config) Map() map[string]any {
	return map[string]any{
		KeyTargetDirectory: c.TargetDirectory,
		KeyDataTargetName:  c.DataTargetName,
		KeyPrettyPrint:     c.PrettyPrint,
	}
}
