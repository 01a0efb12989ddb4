package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type styles struct {
	label *color.Color
	value *color.Color
	stage *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		label: color.New(color.Bold),
		value: color.New(color.FgHiGreen),
		stage: color.New(color.FgHiBlue),
	}
	if !enabled {
		s.label.DisableColor()
		s.value.DisableColor()
		s.stage.DisableColor()
	}

	return s
}

func (s *styles) result(w io.Writer, label string, value int64) {
	fmt.Fprintf(w, "%s %s\n", s.label.Sprintf("%s:", label), s.value.Sprint(value))
}
