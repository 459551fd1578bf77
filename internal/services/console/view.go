package console

import (
	"strconv"

	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/confirm"
	"github.com/louisbranch/actionconsole/internal/action/engine"
)

// Form input names shared by the page and the POST handler.
const (
	inputActionName   = "action-name"
	inputConfirmation = "action-confirmation"
	inputParamPrefix  = "action-param-"
)

// PageView is everything the console page renders.
type PageView struct {
	Lang      string
	Loc       Localizer
	Theme     ThemeState
	Languages []LanguageOption
	Cards     []CardView
	Results   []ResultView
}

// CardView is one action card.
type CardView struct {
	Name        string
	Location    string
	Description string
	Flags       []Flag
	// Invalid holds the validator message; the form is not rendered.
	Invalid string
	Risky   bool
	Code    string
	Params  []ParamView
}

// FormID is the id the parameter inputs refer to.
func (c CardView) FormID() string {
	return "action-form-" + c.Name
}

// HasBody reports whether the card renders a section under its header.
func (c CardView) HasBody() bool {
	return len(c.Params) > 0 || c.Risky || c.Invalid != ""
}

// ParamView is one parameter input.
type ParamView struct {
	Name      string
	InputName string
	Bool      bool
	Value     string
	// Selected is "1", "0" or empty for bool parameters.
	Selected string
}

// ResultView is one block of the result panel.
type ResultView struct {
	ID       string
	Title    string
	Body     string
	Language string
}

// buildCards turns the registry listing into card views.
func buildCards(actions []*action.Action, validator action.Validator, flags FlagClassifier, gate *confirm.Gate) []CardView {
	cards := make([]CardView, 0, len(actions))
	for _, a := range actions {
		card := CardView{
			Name:        a.Name(),
			Location:    a.Location(),
			Description: a.Description(),
			Flags:       flags.Classify(a),
			Risky:       a.Risky(),
		}
		if status := validator.Validate(a); status.IsInvalid() {
			card.Invalid = status.Message()
			cards = append(cards, card)
			continue
		}
		if a.Risky() {
			card.Code = gate.CodeFor(a)
		}
		for _, param := range a.Params() {
			card.Params = append(card.Params, paramView(param))
		}
		cards = append(cards, card)
	}
	return cards
}

func paramView(param action.Param) ParamView {
	view := ParamView{
		Name:      param.Name,
		InputName: inputParamPrefix + param.Name,
		Bool:      param.Type == action.TypeBool,
	}
	if view.Bool {
		if param.HasDefault {
			view.Selected = action.FormatDefault(param)
		}
		return view
	}
	view.Value = action.FormatDefault(param)
	return view
}

func buildResults(entries []engine.Entry) []ResultView {
	results := make([]ResultView, 0, len(entries))
	for idx, entry := range entries {
		results = append(results, ResultView{
			ID:       "result-" + strconv.Itoa(idx),
			Title:    entry.Title,
			Body:     entry.Body,
			Language: entry.Language,
		})
	}
	return results
}
