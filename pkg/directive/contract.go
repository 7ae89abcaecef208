package directive

// FieldType is the coercion target for a single declared option.
type FieldType int

const (
	FieldString FieldType = iota
	FieldBool
	FieldInt
	FieldFloat
	FieldList
)

// Contract declares the structural constraints a directive class expects:
// which children it allows, what parent it must nest under, and which
// options are required. A nil Contract means "no constraints beyond the
// generic fence grammar."
type Contract struct {
	Name             string
	AllowedChildren  map[string]bool
	RequiredParent   string
	RequiredOptions  []string
	OptionSchema     map[string]FieldType
}

// Validate checks required options are present given an already-coerced
// OptionsRecord-shaped map (string keys), returning the missing ones.
func (c *Contract) Validate(present map[string]bool) []string {
	if c == nil {
		return nil
	}
	var missing []string
	for _, req := range c.RequiredOptions {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	return missing
}
