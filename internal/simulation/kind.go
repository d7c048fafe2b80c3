package simulation

// Kind identifies the concrete type of an entity. It is fixed at construction
// and selects the registry bucket the entity lives in.
type Kind uint8

const (
	KindBoid Kind = iota
	KindAttractor
	KindAttractorLine
	KindDistanceSensor

	kindCount
)

var kindNames = [kindCount]string{
	KindBoid:           "Boid",
	KindAttractor:      "Attractor",
	KindAttractorLine:  "AttractorLine",
	KindDistanceSensor: "DistanceSensor",
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
