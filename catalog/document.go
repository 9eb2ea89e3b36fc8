package catalog

// ParamDoc describes one method parameter, return value, or composite-type
// property (§6's metadata document schema).
type ParamDoc struct {
	Type        string `json:"Type"`
	Description string `json:"Description,omitempty"`
	Format      string `json:"Format,omitempty"`
}

// MethodDoc documents one catalog method.
type MethodDoc struct {
	Description string              `json:"Description,omitempty"`
	Parameters  map[string]ParamDoc `json:"Parameters,omitempty"`
	Return      ParamDoc            `json:"Return"`
}

// TypeDoc documents one composite type referenced by a method.
type TypeDoc struct {
	Description string              `json:"Description,omitempty"`
	Properties  map[string]ParamDoc `json:"Properties"`
}

// MetadataDocument is the method-catalog metadata embedded verbatim into
// the workflow-generation prompt (§6).
type MetadataDocument struct {
	Methods map[string]MethodDoc `json:"Methods"`
	Types   map[string]TypeDoc   `json:"Types"`
	Enums   map[string][]string  `json:"Enums"`
}
