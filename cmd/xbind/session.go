package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-xbind/pkg/render"
	"github.com/goliatone/go-xbind/pkg/toggler"
)

type action struct {
	label string
	run   func(s *session, ctx context.Context) error
}

var actions = []action{
	{"Set a field", (*session).setField},
	{"Toggle a field", (*session).toggleField},
	{"Push an entry", (*session).pushEntry},
	{"Splice entries", (*session).splice},
	{"Pop an entry", (*session).pop},
	{"Show page", (*session).showPage},
	{"Show state", (*session).showState},
	{"Quit", nil},
}

// session drives a bound page from prompts until the user quits.
type session struct {
	page   *boundPage
	driver promptDriver
	prefix string
}

func (s *session) run(ctx context.Context) error {
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.label
	}
	for {
		idx, err := s.driver.Select(ctx, selectConfig{Message: "Action", Options: labels})
		if errors.Is(err, errAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) || actions[idx].run == nil {
			return nil
		}
		err = actions[idx].run(s, ctx)
		switch {
		case errors.Is(err, errAborted):
			return nil
		case err != nil && ctx.Err() != nil:
			return err
		case err != nil:
			if infoErr := s.driver.Info(ctx, "error: "+err.Error()); infoErr != nil {
				return infoErr
			}
		}
	}
}

func (s *session) ask(ctx context.Context, message string) (string, error) {
	answer, err := s.driver.Input(ctx, inputConfig{Message: message, Validator: required})
	return strings.TrimSpace(answer), err
}

func required(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("value is required")
	}
	return nil
}

func (s *session) setField(ctx context.Context) error {
	ref, err := s.ask(ctx, "Reference")
	if err != nil {
		return err
	}
	raw, err := s.driver.Input(ctx, inputConfig{Message: "Value (YAML)"})
	if err != nil {
		return err
	}
	value, err := parseValue(raw)
	if err != nil {
		return err
	}
	s.page.ctx.Field(ref).Set(value)
	return nil
}

func (s *session) toggleField(ctx context.Context) error {
	ref, err := s.ask(ctx, "Reference")
	if err != nil {
		return err
	}
	field := s.page.ctx.Field(ref)
	field.Set(!toggler.Truthy(field.Get()))
	return nil
}

func (s *session) pushEntry(ctx context.Context) error {
	ref, err := s.ask(ctx, "Container reference")
	if err != nil {
		return err
	}
	items, err := s.page.ctx.Container(ref)
	if err != nil {
		return err
	}
	entry, err := s.askEntry(ctx)
	if err != nil {
		return err
	}
	items.Push(entry)
	return nil
}

func (s *session) splice(ctx context.Context) error {
	ref, err := s.ask(ctx, "Container reference")
	if err != nil {
		return err
	}
	items, err := s.page.ctx.Container(ref)
	if err != nil {
		return err
	}
	start, err := s.askInt(ctx, "Start")
	if err != nil {
		return err
	}
	count, err := s.askInt(ctx, "Delete count")
	if err != nil {
		return err
	}
	raw, err := s.driver.Input(ctx, inputConfig{Message: "Insert entry (YAML mapping, empty for none)"})
	if err != nil {
		return err
	}
	var inserts []any
	if strings.TrimSpace(raw) != "" {
		entry, err := parseEntry(raw)
		if err != nil {
			return err
		}
		inserts = append(inserts, entry)
	}
	removed := items.Splice(start, count, inserts...)
	return s.driver.Info(ctx, fmt.Sprintf("removed %d entries", len(removed)))
}

func (s *session) pop(ctx context.Context) error {
	ref, err := s.ask(ctx, "Container reference")
	if err != nil {
		return err
	}
	items, err := s.page.ctx.Container(ref)
	if err != nil {
		return err
	}
	if _, ok := items.Pop(); !ok {
		return s.driver.Info(ctx, "container is empty")
	}
	return nil
}

func (s *session) showPage(ctx context.Context) error {
	out, err := render.String(s.page.doc, render.WithBodyOnly(), render.WithStripDirectives(s.prefix))
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, strings.TrimSpace(out))
}

func (s *session) showState(ctx context.Context) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.page.ctx.Root().Snapshot()); err != nil {
		return fmt.Errorf("xbind: encode state: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("xbind: encode state: %w", err)
	}
	return s.driver.Info(ctx, strings.TrimRight(buf.String(), "\n"))
}

func (s *session) askEntry(ctx context.Context) (map[string]any, error) {
	raw, err := s.driver.Input(ctx, inputConfig{Message: "Entry (YAML mapping)", Default: "{}"})
	if err != nil {
		return nil, err
	}
	return parseEntry(raw)
}

func (s *session) askInt(ctx context.Context, message string) (int, error) {
	raw, err := s.ask(ctx, message)
	if err != nil {
		return 0, err
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("xbind: %s: %w", strings.ToLower(message), err)
	}
	return n, nil
}

// parseValue decodes a YAML scalar or flow value. Empty input is the empty
// string.
func parseValue(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	var out any
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("xbind: parse value: %w", err)
	}
	return out, nil
}

func parseEntry(raw string) (map[string]any, error) {
	out := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("xbind: parse entry: %w", err)
	}
	return out, nil
}
