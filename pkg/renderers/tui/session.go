// Package tui is the terminal front-end of the profile form. A Session shows
// a menu of fields and actions, prompts for the chosen field through a
// PromptDriver and forwards every answer to an app.App.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-profileform/pkg/app"
	"github.com/goliatone/go-profileform/pkg/photo"
	"github.com/goliatone/go-profileform/pkg/profile"
	"github.com/goliatone/go-profileform/pkg/submission"
)

const (
	actionSave  = "Save"
	actionClear = "Clear"
	actionQuit  = "Quit"
)

// Session drives one interactive form.
type Session struct {
	app    *app.App
	driver PromptDriver
	out    io.Writer
	theme  Theme
}

// New constructs a session over a. The survey driver is used unless another
// one is supplied.
func New(a *app.App, options ...Option) (*Session, error) {
	if a == nil {
		return nil, errNoApp
	}
	s := &Session{app: a, theme: DefaultTheme()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	return s, nil
}

// Run loads the occupations and then loops over the menu until the user
// quits. Aborting a prompt ends the session with ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	if _, err := s.app.Start(ctx).Wait(ctx); err != nil {
		return err
	}
	if len(s.app.Occupations()) == 0 {
		s.warn(ctx, "occupations are unavailable; the form cannot be completed")
	}

	fields := profile.Fields()
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:  "Profile",
			Options:  s.menu(),
			PageSize: len(fields) + 3,
		})
		if err != nil {
			return err
		}

		switch {
		case idx >= 0 && idx < len(fields):
			err = s.edit(ctx, fields[idx])
		case idx == len(fields):
			err = s.save(ctx)
		case idx == len(fields)+1:
			err = s.clear(ctx)
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) menu() []string {
	view := s.app.View()
	items := make([]string, 0, len(profile.Fields())+3)
	for _, field := range profile.Fields() {
		value, _ := view.Values.Get(field)
		if field == profile.FieldProfilePhoto && value != "" {
			value = "(selected)"
		}
		line := fmt.Sprintf("%-12s %s", field.Label(), value)
		if reason, ok := view.Errors[field]; ok {
			line += fmt.Sprintf("  [%s]", reason)
		}
		items = append(items, strings.TrimRight(line, " "))
	}
	return append(items, actionSave, actionClear, actionQuit)
}

func (s *Session) edit(ctx context.Context, field profile.Field) error {
	current, _ := s.app.View().Values.Get(field)
	switch field {
	case profile.FieldPhone:
		raw, err := s.driver.Input(ctx, InputConfig{Message: field.Label(), Default: current, Help: "9 or 10 digits"})
		if err != nil {
			return err
		}
		if echo := s.app.TypePhone(raw); echo != raw {
			s.info(ctx, fmt.Sprintf("%s: %s", field.Label(), echo))
		}
	case profile.FieldProfilePhoto:
		path, err := s.driver.Input(ctx, InputConfig{Message: "Photo file path", Help: "leave empty to keep the current photo"})
		if err != nil {
			return err
		}
		var files []photo.Source
		if path = strings.TrimSpace(path); path != "" {
			files = append(files, photo.FromPath(path))
		}
		if _, err := s.app.PickPhoto(ctx, files).Wait(ctx); err != nil && !errors.Is(err, photo.ErrNoFile) {
			s.warn(ctx, err.Error())
		}
	case profile.FieldOccupation:
		options := s.app.Occupations()
		if len(options) == 0 {
			s.warn(ctx, "no occupations to choose from")
			return nil
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: field.Label(), Options: options, DefaultIndex: indexOf(options, current)})
		if err != nil {
			return err
		}
		return s.set(ctx, field, pick(options, idx))
	case profile.FieldSex:
		options := profile.SexOptions()
		idx, err := s.driver.Select(ctx, SelectConfig{Message: field.Label(), Options: options, DefaultIndex: indexOf(options, current)})
		if err != nil {
			return err
		}
		return s.set(ctx, field, pick(options, idx))
	default:
		cfg := InputConfig{Message: field.Label(), Default: current}
		if field == profile.FieldBirthDay {
			cfg.Help = "YYYY-MM-DD or DD/MM/YYYY"
			cfg.Validator = validDate
		}
		value, err := s.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if cfg.Validator != nil {
			if err := cfg.Validator(value); err != nil {
				s.warn(ctx, fmt.Sprintf("%s %s", field.Label(), err))
				return nil
			}
		}
		return s.set(ctx, field, value)
	}
	return nil
}

func (s *Session) set(ctx context.Context, field profile.Field, value string) error {
	if err := s.app.SetField(field, value); err != nil {
		return err
	}
	if valid, reason := s.app.Result(field); !valid {
		s.warn(ctx, fmt.Sprintf("%s %s", field.Label(), reason))
	}
	return nil
}

func (s *Session) save(ctx context.Context) error {
	task, err := s.app.Save(ctx)
	if errors.Is(err, submission.ErrSubmitting) {
		s.warn(ctx, "a save is already in progress")
		return nil
	}
	if err != nil {
		return err
	}
	outcome, err := task.Wait(ctx)
	if err != nil {
		return err
	}
	if outcome.State == submission.Invalid {
		s.warn(ctx, "please fix the highlighted fields")
	}
	return nil
}

func (s *Session) clear(ctx context.Context) error {
	ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Clear the form?"})
	if err != nil || !ok {
		return err
	}
	if err := s.app.Clear(); err != nil {
		s.warn(ctx, err.Error())
	}
	return nil
}

func (s *Session) info(ctx context.Context, msg string) {
	_ = s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) warn(ctx context.Context, msg string) {
	_ = s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
}

func pick(options []string, idx int) string {
	if idx < 0 || idx >= len(options) {
		return ""
	}
	return options[idx]
}

// validDate accepts what a date picker could produce: empty or a parseable
// date.
func validDate(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := profile.ParseDate(value); err != nil {
		return errInvalidDate
	}
	return nil
}
