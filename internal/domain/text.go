package domain

import (
	"math"
	"unicode/utf8"
)

// Limit is a character-count bound carried by a zero-size type, so that the bound is
// part of a string type's identity: MaxString[Sixty4] and MaxString[One] are distinct types.
type Limit interface {
	Chars() int
}

type (
	One    struct{}
	Six    struct{}
	Sixty4 struct{}
)

func (One) Chars() int    { return 1 }
func (Six) Chars() int    { return 6 }
func (Sixty4) Chars() int { return 64 }

func limitOf[L Limit]() int {
	var l L
	return l.Chars()
}

func checkLength(s string, min, max int) error {
	n := utf8.RuneCountInString(s)
	if n < min || n > max {
		return &LengthError{Min: min, Max: max, Got: n}
	}
	return nil
}

// MinString holds a string of at least L characters.
type MinString[L Limit] struct{ value string }

// NonEmptyString holds a string of at least one character.
type NonEmptyString = MinString[One]

func NewMinString[L Limit](s string) (MinString[L], error) {
	if err := checkLength(s, limitOf[L](), math.MaxInt); err != nil {
		return MinString[L]{}, err
	}
	return MinString[L]{value: s}, nil
}

func (s MinString[L]) String() string { return s.value }

// MaxString holds a string of at most L characters.
type MaxString[L Limit] struct{ value string }

func NewMaxString[L Limit](s string) (MaxString[L], error) {
	if err := checkLength(s, 0, limitOf[L]()); err != nil {
		return MaxString[L]{}, err
	}
	return MaxString[L]{value: s}, nil
}

func (s MaxString[L]) String() string { return s.value }

// MinMaxString holds a string whose character count lies in [Lo, Hi].
type MinMaxString[Lo, Hi Limit] struct{ value string }

func NewMinMaxString[Lo, Hi Limit](s string) (MinMaxString[Lo, Hi], error) {
	if err := checkLength(s, limitOf[Lo](), limitOf[Hi]()); err != nil {
		return MinMaxString[Lo, Hi]{}, err
	}
	return MinMaxString[Lo, Hi]{value: s}, nil
}

func (s MinMaxString[Lo, Hi]) String() string { return s.value }

// LenString holds a string of exactly L characters.
type LenString[L Limit] struct{ value string }

func NewLenString[L Limit](s string) (LenString[L], error) {
	n := limitOf[L]()
	if err := checkLength(s, n, n); err != nil {
		return LenString[L]{}, err
	}
	return LenString[L]{value: s}, nil
}

func (s LenString[L]) String() string { return s.value }
