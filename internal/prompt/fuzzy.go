package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/andrewthomaslee/moscripts/internal/output"
)

// Fuzzy prompts with an in-process fuzzy finder.
type Fuzzy struct {
	opts []fuzzyfinder.Option
}

// NewFuzzy returns a Fuzzy prompter. Extra finder options are applied to
// every prompt.
func NewFuzzy(opts ...fuzzyfinder.Option) *Fuzzy {
	return &Fuzzy{opts: opts}
}

var confirmAnswers = []string{"Yes", "No"}

// Confirm asks message with a Yes/No list.
func (f *Fuzzy) Confirm(ctx context.Context, message string) (bool, error) {
	idx, err := fuzzyfinder.Find(
		confirmAnswers,
		func(i int) string { return confirmAnswers[i] },
		f.with(ctx,
			fuzzyfinder.WithHeader(message),
			fuzzyfinder.WithPromptString("> "),
		)...,
	)
	if err != nil {
		return false, fuzzyError(err)
	}
	return idx == 0, nil
}

// Choose lists choices in their given order. A limit above one allows
// several picks, returned newline separated like gum does.
func (f *Fuzzy) Choose(ctx context.Context, choices []string, opts ChooseOptions) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}
	opts = opts.withDefaults()
	label := func(i int) string { return choices[i] }
	finderOpts := f.with(ctx,
		fuzzyfinder.WithHeader(opts.Header),
		fuzzyfinder.WithPromptString(opts.Cursor),
	)

	if opts.Limit == 1 {
		idx, err := fuzzyfinder.Find(choices, label, finderOpts...)
		if err != nil {
			return "", fuzzyError(err)
		}
		return strings.TrimSpace(choices[idx]), nil
	}

	indices, err := fuzzyfinder.FindMulti(choices, label, finderOpts...)
	if err != nil {
		return "", fuzzyError(err)
	}
	if len(indices) > opts.Limit {
		indices = indices[:opts.Limit]
	}
	picked := make([]string, 0, len(indices))
	for _, i := range indices {
		picked = append(picked, choices[i])
	}
	return strings.TrimSpace(strings.Join(picked, "\n")), nil
}

func (f *Fuzzy) with(ctx context.Context, extra ...fuzzyfinder.Option) []fuzzyfinder.Option {
	opts := make([]fuzzyfinder.Option, 0, len(f.opts)+len(extra)+1)
	opts = append(opts, fuzzyfinder.WithContext(ctx))
	opts = append(opts, extra...)
	return append(opts, f.opts...)
}

func fuzzyError(err error) error {
	if errors.Is(err, fuzzyfinder.ErrAbort) || errors.Is(err, context.Canceled) {
		return output.ErrCancelled
	}
	return fmt.Errorf("fuzzy finder: %w", err)
}
