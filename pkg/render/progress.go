package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Progress summarises where the wizard stands, for progress indicators.
type Progress struct {
	Index    int
	Count    int
	Fraction float64
	Label    string
	Titles   []string
}

// ProgressFor builds a Progress snapshot from the controller's state.
func ProgressFor(controller *wizard.Controller) Progress {
	if controller == nil {
		return Progress{}
	}
	count := controller.StepCount()
	index := controller.StepIndex()
	titles := make([]string, 0, count)
	for i := 0; i < count; i++ {
		titles = append(titles, controller.Definition().Steps[i].Title)
	}
	fraction := 0.0
	if count > 1 {
		fraction = float64(index) / float64(count-1)
	}
	return Progress{
		Index:    index,
		Count:    count,
		Fraction: fraction,
		Label:    fmt.Sprintf("Step %d of %d", index+1, count),
		Titles:   titles,
	}
}

// Markers renders one marker per step, filled up to and including the active
// one. Handy for terminal progress dots.
func (p Progress) Markers(filled, empty string) string {
	if p.Count == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < p.Count; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i <= p.Index {
			b.WriteString(filled)
		} else {
			b.WriteString(empty)
		}
	}
	return b.String()
}
