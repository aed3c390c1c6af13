package model

// Data is either a Scalar or a Sequence. Rounding returns the same shape it was given.
type Data interface {
	isData()
}

// Scalar is a single value rounded relative to its own magnitude.
type Scalar struct {
	Value Value
}

// Sequence is an ordered collection rounded with the dataset heuristic.
type Sequence struct {
	Values []Value
}

func (Scalar) isData()   {}
func (Sequence) isData() {}
