package config

// Manifest represents the structure of a strata.yaml file.
type Manifest struct {
	Version string `yaml:"version"`
	// Name is the graph name. Defaults to the manifest directory's base name.
	Name string `yaml:"name"`
	// Parents lists parent manifests, or directories holding one, in order.
	Parents []string  `yaml:"parents"`
	Cluster string    `yaml:"cluster"`
	Deny    []string  `yaml:"deny"`
	Units   []UnitDTO `yaml:"units"`
}

// UnitDTO represents a unit definition in the manifest.
type UnitDTO struct {
	Name                string                       `yaml:"name"`
	Namespaces          []string                     `yaml:"namespaces"`
	Opens               []string                     `yaml:"opens"`
	Open                bool                         `yaml:"open"`
	Reads               []string                     `yaml:"reads"`
	Location            string                       `yaml:"location"`
	Attributes          map[string]string            `yaml:"attributes"`
	NamespaceAttributes map[string]map[string]string `yaml:"namespaceAttributes"`
}
