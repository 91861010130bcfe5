package prompt

import "context"

// Static answers without asking. Confirm returns Answer and Choose picks
// the first choice, which callers order most relevant first.
type Static struct {
	Answer bool
}

func (s Static) Confirm(context.Context, string) (bool, error) {
	return s.Answer, nil
}

func (s Static) Choose(_ context.Context, choices []string, _ ChooseOptions) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}
	return choices[0], nil
}
