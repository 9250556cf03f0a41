package manual

import "github.com/ardnew/santa/lang"

var (
	ErrProgress  = lang.NewError("tutorial progress")
	ErrMilestone = lang.NewError("unknown milestone")
	ErrDocument  = lang.NewError("manual")
)
