package apidex

// AssemblyInfo describes the assembly one XML documentation file was
// generated for. It stamps the Assembly field onto every member parsed from
// that file and is not separately indexed.
type AssemblyInfo struct {
	Name           string   `json:"name"`
	Version        string   `json:"version,omitempty"`
	Culture        string   `json:"culture,omitempty"`
	PublicKeyToken string   `json:"publicKeyToken,omitempty"`
	Types          []string `json:"types,omitempty"`
	Namespaces     []string `json:"namespaces,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// Validate returns an error if the assembly descriptor is invalid.
func (a *AssemblyInfo) Validate() error {
	if a.Name == "" {
		return Errorf(EINVALID, "assembly name required")
	}
	return nil
}
