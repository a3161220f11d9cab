package domain

// State markers. They carry no data; a Subject's marker is part of its type, so
// each transition is only callable on the state it starts from:
//
//	Unverified --Verify(code)--> Verified --Block()--> Blocked
//
// Passing a Subject[R, Unverified] to Block is a compile error.
type (
	Unverified struct{}
	Verified   struct{}
	Blocked    struct{}
)

type State interface {
	Unverified | Verified | Blocked
}

// Stage is the runtime name of a State, for logs and transport.
type Stage string

const (
	StageUnverified Stage = "unverified"
	StageVerified   Stage = "verified"
	StageBlocked    Stage = "blocked"
)

// Resource is the value a Subject wraps. Validate rejects values that may not
// enter the Unverified state.
type Resource interface {
	comparable
	String() string
	Validate() error
}

// Subject is a resource tagged with its verification state. The resource never
// changes; a transition returns a new Subject with the next marker and leaves its
// argument as it was.
type Subject[R Resource, S State] struct {
	value R
	_     [0]S
}

// New is the only way into the Unverified state.
func New[R Resource](v R) (Subject[R, Unverified], error) {
	if err := v.Validate(); err != nil {
		return Subject[R, Unverified]{}, err
	}
	return Subject[R, Unverified]{value: v}, nil
}

func (s Subject[R, S]) Value() R       { return s.value }
func (s Subject[R, S]) String() string { return s.value.String() }

func (s Subject[R, S]) Stage() Stage {
	var marker S
	switch any(marker).(type) {
	case Unverified:
		return StageUnverified
	case Verified:
		return StageVerified
	case Blocked:
		return StageBlocked
	}
	return ""
}

// CodeChecker decides whether code is the expected verification code for subject.
type CodeChecker interface {
	Match(subject, code string) bool
}

// FixedCode accepts a single code for every subject.
type FixedCode string

func (c FixedCode) Match(_, code string) bool { return code == string(c) }

// Verify returns the verified form of s when codes accepts code. On failure no
// verified value exists; s itself is untouched and may be verified again.
func Verify[R Resource](s Subject[R, Unverified], code string, codes CodeChecker) (Subject[R, Verified], error) {
	if !codes.Match(s.String(), code) {
		return Subject[R, Verified]{}, ErrInvalidCode
	}
	return Subject[R, Verified]{value: s.value}, nil
}

func Block[R Resource](s Subject[R, Verified]) Subject[R, Blocked] {
	return Subject[R, Blocked]{value: s.value}
}
