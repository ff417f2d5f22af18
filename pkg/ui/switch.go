package ui

import (
	"github.com/pkg/errors"

	"zenkai/pkg/dom"
	"zenkai/pkg/html"
)

// Switch is a checkbox presented as an on/off control. The container
// carries the checked class while the switch is on.
type Switch struct {
	Container *html.Node
	Input     *html.Node

	// OnChange is called when the state changes.
	OnChange func(on bool)
}

// NewSwitch wraps the first checkbox inside container and syncs the
// container class with it.
func NewSwitch(container *html.Node) (*Switch, error) {
	if err := checkElement(container, "switch container"); err != nil {
		return nil, err
	}
	input := dom.QuerySelector(container, `input[type="checkbox"]`)
	if input == nil {
		return nil, errors.Wrap(ErrMissingPart, "switch needs a checkbox input")
	}
	s := &Switch{Container: container, Input: input}
	s.sync()
	return s, nil
}

// On reports whether the switch is on.
func (s *Switch) On() bool {
	on, _ := s.Input.Prop("checked").(bool)
	return on
}

// Set turns the switch on or off. Disabled switches do not change.
func (s *Switch) Set(on bool) {
	if s.On() == on || s.Input.HasAttribute("disabled") {
		return
	}
	s.Input.SetProp("checked", on)
	s.sync()
	if s.OnChange != nil {
		s.OnChange(on)
	}
}

// Toggle flips the switch and returns the new state.
func (s *Switch) Toggle() bool {
	s.Set(!s.On())
	return s.On()
}

func (s *Switch) sync() {
	dom.ToggleClass(s.Container, CheckedClass, s.On())
}
