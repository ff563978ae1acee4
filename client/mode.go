package client

import (
	"fmt"
	"strings"
)

// Mode selects how much transformation the backend applies to a tree.
type Mode int

const (
	DefaultMode  Mode = 0
	Native       Mode = 1
	Preprocessed Mode = 2
	Annotated    Mode = 4
	Semantic     Mode = 8
)

var modeNames = map[Mode]string{
	DefaultMode:  "default",
	Native:       "native",
	Preprocessed: "preprocessed",
	Annotated:    "annotated",
	Semantic:     "semantic",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode accepts the lower or upper case mode name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return DefaultMode, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}
