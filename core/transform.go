package core

// Transformer mutates a Graph in place.
type Transformer interface {
	Transform(g *Graph) error
}

// Chain applies transformers in order, stopping at the first error.
func Chain(g *Graph, transformers ...Transformer) error {
	for _, tr := range transformers {
		if err := tr.Transform(g); err != nil {
			return err
		}
	}
	return nil
}
