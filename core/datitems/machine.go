package datitems

// Machine is a named set owning one or more items.
// CloneOf, RomOf and SampleOf are non-owning references to other machine names
// and may dangle.
type Machine struct {
	// Name identifies the machine within a catalog.
	Name string `json:"name" yaml:"name"`

	// Description is the human readable title.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	CloneOf  string `json:"cloneof,omitempty" yaml:"cloneof,omitempty"`
	RomOf    string `json:"romof,omitempty" yaml:"romof,omitempty"`
	SampleOf string `json:"sampleof,omitempty" yaml:"sampleof,omitempty"`

	// Type classifies the machine as a bios, device or mechanical set.
	Type MachineType `json:"-" yaml:"-"`

	Year         string `json:"year,omitempty" yaml:"year,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Comment      string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Category     string `json:"category,omitempty" yaml:"category,omitempty"`
}

// NewMachine returns a machine whose description defaults to its name.
func NewMachine(name string) Machine {
	return Machine{Name: name, Description: name}
}
