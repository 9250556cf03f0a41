package manual

import (
	"log/slog"
	"strconv"
	"strings"
)

// Milestone is a step of the tutorial. Each milestone has a goal the user
// completes to advance to the next one.
type Milestone int

const (
	Basics       Milestone = iota // call print
	Conditionals                  // write an if statement
	Loops                         // write a while loop
	Functions                     // define a working assert_eq
	Graduated                     // nothing left to do
)

var milestoneNames = [...]string{
	Basics:       "basics",
	Conditionals: "conditionals",
	Loops:        "loops",
	Functions:    "functions",
	Graduated:    "graduated",
}

func (m Milestone) String() string {
	if m.valid() {
		return milestoneNames[m]
	}

	return "Milestone(" + strconv.Itoa(int(m)) + ")"
}

func (m Milestone) valid() bool { return Basics <= m && m <= Graduated }

// MarshalText encodes m by name.
func (m Milestone) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, ErrMilestone.With(slog.Int("milestone", int(m)))
	}

	return []byte(m.String()), nil
}

// UnmarshalText accepts a milestone name, case-insensitively, or its
// number.
func (m *Milestone) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))

	for i, name := range milestoneNames {
		if s == name {
			*m = Milestone(i)

			return nil
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || !Milestone(n).valid() {
		return ErrMilestone.With(slog.String("milestone", s))
	}

	*m = Milestone(n)

	return nil
}

// Goal describes what completes m.
func (m Milestone) Goal() string {
	switch m {
	case Basics:
		return "Print something with the print function."
	case Conditionals:
		return "Run a program that makes a decision with an if statement."
	case Loops:
		return "Run a program that repeats work with a while loop."
	case Functions:
		return "Define a function assert_eq(a, b) that fails an assertion " +
			"when a and b differ and returns 42 when they are equal."
	}

	return "None. You know everything we know."
}
