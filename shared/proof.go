package shared

// Witness is the prover's secret path through an Instance, together with the opening of the
// commitment announced to the verifier.
type Witness struct {
	path []Step

	Commitment string
	Nonce      string
}

func NewWitness(path []Step, commitment, nonce string) *Witness {
	return &Witness{
		path:       append([]Step(nil), path...),
		Commitment: commitment,
		Nonce:      nonce,
	}
}

// Path returns a copy of the committed path.
func (w *Witness) Path() []Step {
	return append([]Step(nil), w.path...)
}

// Step returns the step at index i, if it exists.
func (w *Witness) Step(i int) (Step, bool) {
	if i < 0 || i >= len(w.path) {
		return Step{}, false
	}
	return w.path[i], true
}

func (w *Witness) Len() int {
	return len(w.path)
}

// Challenge names the path indices the verifier wants revealed.
type Challenge struct {
	ID         string
	Positions  []int
	Commitment string
}

// RevealedStep is the prover's answer for one challenged index.
// A nil Point or an empty Label marks an index outside the prover's path.
type RevealedStep struct {
	Index int
	Point *Point
	Label TileLabel
}

func (s RevealedStep) Present() bool {
	return s.Point != nil && s.Label != ""
}

// Response reveals the challenged steps of a witness and nothing else.
type Response struct {
	ChallengeID   string
	RevealedSteps []RevealedStep
	PathLength    int
	Commitment    string
	Nonce         string
}
