package generator

// DocComment is a parsed /** ... */ block.
type DocComment struct {
	// Description holds the free-text lines joined by "\n".
	Description string
	Params      []Param
	Return      *Return
}

// Param is one @param annotation.
type Param struct {
	Name        string
	Description string
}

// Return is the @return annotation.
type Return struct {
	Description string
}

// Param returns the annotation for name, if documented.
func (d *DocComment) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Declaration is one of *Enum, *Struct or *Function.
type Declaration interface {
	// DeclName returns the declared identifier.
	DeclName() string
	declaration()
}

// Enum is an enumeration declaration.
type Enum struct {
	Name     string
	Variants []string
}

// Struct is an aggregate type declaration.
type Struct struct {
	Name    string
	Members []string
}

// Function is a function prototype.
type Function struct {
	Name       string
	ReturnType string
	// Params holds the raw parameter texts, e.g. "const int* count".
	Params []string
}

func (e *Enum) DeclName() string     { return e.Name }
func (s *Struct) DeclName() string   { return s.Name }
func (f *Function) DeclName() string { return f.Name }

func (*Enum) declaration()     {}
func (*Struct) declaration()   {}
func (*Function) declaration() {}

// Parsed is the parser's output for one span. Exactly one field is set.
type Parsed struct {
	Doc  *DocComment
	Decl Declaration
}
