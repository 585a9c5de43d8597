package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"poisson/model"
	"poisson/solver"
)

// Prompter fills in the run parameters that were not given on the command line.
type Prompter interface {
	Ask(p *model.RunParams, anyVariant bool) error
}

type surveyPrompter struct{}

func (surveyPrompter) Ask(p *model.RunParams, anyVariant bool) error {
	if p.N == 0 {
		var answer string
		prompt := &survey.Input{Message: "Give number of mesh points N:"}
		if err := survey.AskOne(prompt, &answer, survey.WithValidator(validateN)); err != nil {
			return translateSurveyErr(err)
		}
		p.N, _ = strconv.Atoi(answer)
	}
	if p.Variant == "" {
		var prompt survey.Prompt
		if anyVariant {
			prompt = &survey.Input{Message: "Choose algorithm:", Default: solver.General}
		} else {
			prompt = &survey.Select{Message: "Choose algorithm:", Options: solver.Variants(), Default: solver.General}
		}
		if err := survey.AskOne(prompt, &p.Variant, survey.WithValidator(survey.Required)); err != nil {
			return translateSurveyErr(err)
		}
	}
	return nil
}

func validateN(ans interface{}) error {
	s, _ := ans.(string)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("N must be a positive integer")
	}
	return nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return fmt.Errorf("prompt interrupted")
	}
	return err
}
