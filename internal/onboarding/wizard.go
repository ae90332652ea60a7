// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package onboarding

import (
	"github.com/nextrip/core/internal/model"
)

// Progress is the outcome of a wizard Next step.
type Progress int

const (
	// ProgressBlocked means the current answer does not satisfy the
	// question's constraint, the wizard stays in place.
	ProgressBlocked Progress = iota
	// ProgressAdvanced means the wizard moved to the next question.
	ProgressAdvanced
	// ProgressSubmit means the last question was answered, the collected
	// answers should be submitted.
	ProgressSubmit
)

// Wizard walks a dynamic follow-up form one question at a time. Questions
// are visited linearly, there is no branching or skipping.
type Wizard struct {
	form    model.DynamicForm
	step    int
	answers model.Responses
}

func NewWizard(form model.DynamicForm) *Wizard {
	return &Wizard{form: form, answers: model.Responses{}}
}

func (w *Wizard) Step() int { return w.step }

// SetStep restores a previously reached position, clamped to the form.
func (w *Wizard) SetStep(step int) {
	if step < 0 {
		step = 0
	}
	if last := len(w.form.Questions) - 1; step > last {
		step = last
	}
	w.step = step
}

// Question returns the current question. The zero question is returned for
// an empty form.
func (w *Wizard) Question() model.DynamicFormQuestion {
	if w.step < 0 || w.step >= len(w.form.Questions) {
		return model.DynamicFormQuestion{}
	}
	return w.form.Questions[w.step]
}

func (w *Wizard) SetAnswer(key string, value any) {
	w.answers[key] = value
}

func (w *Wizard) Answers() model.Responses { return w.answers }

// Next advances the wizard. It blocks on an unsatisfied required question
// and requests submission instead of advancing past the last one.
func (w *Wizard) Next() Progress {
	if !w.satisfied(w.Question()) {
		return ProgressBlocked
	}
	if w.step >= len(w.form.Questions)-1 {
		return ProgressSubmit
	}
	w.step++
	return ProgressAdvanced
}

// Previous steps back one question. It reports true when invoked on the
// first question, which exits the wizard back to the originating form.
func (w *Wizard) Previous() bool {
	if w.step == 0 {
		return true
	}
	w.step--
	return false
}

// satisfied checks the answer of q against its required/type constraint. A
// multi select needs at least one choice, everything else a non-empty value.
func (w *Wizard) satisfied(q model.DynamicFormQuestion) bool {
	if !q.Required {
		return true
	}
	value, ok := w.answers[q.Key]
	if !ok || value == nil {
		return false
	}
	switch q.Type {
	case "multi":
		switch v := value.(type) {
		case []string:
			return len(v) > 0
		case []any:
			return len(v) > 0
		default:
			return false
		}
	default:
		if s, ok := value.(string); ok {
			return s != ""
		}
		return true
	}
}
