package generator

// Node pairs a declaration with the doc comment that precedes it.
type Node struct {
	Doc  *DocComment
	Decl Declaration
}

// Document is the ordered list of nodes handed to a renderer.
type Document struct {
	Nodes []Node
	// Discarded counts doc comments that were not followed by a declaration.
	Discarded int
}

// Assemble attaches each doc comment to the declaration right after it.
// A doc comment followed by another doc comment, or by nothing, is dropped.
func Assemble(parsed []Parsed) Document {
	var doc Document
	var pending *DocComment

	for _, p := range parsed {
		if p.Decl == nil {
			if p.Doc == nil {
				continue
			}
			if pending != nil {
				doc.Discarded++
			}
			pending = p.Doc
			continue
		}
		doc.Nodes = append(doc.Nodes, Node{Doc: pending, Decl: p.Decl})
		pending = nil
	}
	if pending != nil {
		doc.Discarded++
	}

	return doc
}
