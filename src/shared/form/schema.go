package form

// Format selects the grammar a field value must satisfy.
type Format int

const (
	FormatNone Format = iota
	FormatEmail
)

// Field declares one schema entry. Escape marks values that may later be
// rendered as HTML and must be neutralized before persistence.
type Field struct {
	Name     string
	Required bool
	MaxLen   int
	Format   Format
	Escape   bool
}

// Schema is the ordered field list a submission is checked against.
type Schema struct {
	Fields []Field
}

// Contact is the default submission schema served by both tiers.
func Contact() Schema {
	return Schema{Fields: []Field{
		{Name: "name", Required: true, MaxLen: 255, Escape: true},
		{Name: "email", Required: true, MaxLen: 255, Format: FormatEmail},
		{Name: "subject", MaxLen: 255, Escape: true},
		{Name: "message", Required: true, MaxLen: 10000, Escape: true},
	}}
}
