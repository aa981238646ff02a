// Package options is the live set of user-tunable demo settings. Values are
// addressed by name and every change notifies the handlers registered for it.
package options

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
)

var (
	// ErrUnknownOption is returned for a name that is not in the set.
	ErrUnknownOption = errors.New("unknown option")
	// ErrKindMismatch is returned when an option is read or written as the wrong kind.
	ErrKindMismatch = errors.New("option kind mismatch")
	// ErrInvalidValue is returned for NaN numbers.
	ErrInvalidValue = errors.New("invalid option value")
)

// Kind is the value type of an option.
type Kind int

const (
	Number Kind = iota
	Color
	Bool
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Color:
		return "color"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Handler is called after an option changed value.
type Handler func(name string)

// Option is one named setting.
type Option struct {
	Name  string
	Label string
	Kind  Kind

	// Number bounds. Values are clamped to [Min, Max]; Step is the Nudge increment.
	Min, Max, Step float32

	num   float32
	color config.Color
	flag  bool
}

// Set holds the options in declaration order.
type Set struct {
	opts     map[string]*Option
	order    []string
	handlers map[string][]Handler
	log      *zap.Logger
}

// NewSet creates a set with every known option at its default value.
func NewSet(log *zap.Logger) *Set {
	s, err := FromConfig(config.Default(), log)
	if err != nil {
		panic(err)
	}
	return s
}

// FromConfig creates a set with values taken from cfg. NaN numbers are
// rejected with ErrInvalidValue.
func FromConfig(cfg *config.Config, log *zap.Logger) (*Set, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	s := &Set{
		opts:     make(map[string]*Option, len(bindings)),
		handlers: make(map[string][]Handler),
		log:      log,
	}
	for _, b := range bindings {
		opt := b.def
		switch opt.Kind {
		case Number:
			opt.num = opt.clamp(*b.num(cfg))
		case Color:
			opt.color = *b.color(cfg) & 0xffffff
		case Bool:
			opt.flag = *b.flag(cfg)
		}
		s.opts[opt.Name] = &opt
		s.order = append(s.order, opt.Name)
	}
	return s, nil
}

// Validate checks every option value in cfg without applying any of them.
func Validate(cfg *config.Config) error {
	for _, b := range bindings {
		if b.def.Kind != Number {
			continue
		}
		if v := *b.num(cfg); math.IsNaN(float64(v)) {
			return fmt.Errorf("%w: %q = NaN", ErrInvalidValue, b.def.Name)
		}
	}
	return nil
}

// Names returns the option names in declaration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Lookup returns a copy of the named option.
func (s *Set) Lookup(name string) (Option, error) {
	opt, ok := s.opts[name]
	if !ok {
		return Option{}, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return *opt, nil
}

func (s *Set) get(name string, kind Kind) (*Option, error) {
	opt, ok := s.opts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	if opt.Kind != kind {
		return nil, fmt.Errorf("%w: %q is a %s, not a %s", ErrKindMismatch, name, opt.Kind, kind)
	}
	return opt, nil
}

// Float returns a number option.
func (s *Set) Float(name string) (float32, error) {
	opt, err := s.get(name, Number)
	if err != nil {
		return 0, err
	}
	return opt.num, nil
}

// Color returns a color option.
func (s *Set) Color(name string) (config.Color, error) {
	opt, err := s.get(name, Color)
	if err != nil {
		return 0, err
	}
	return opt.color, nil
}

// Bool returns a boolean option.
func (s *Set) Bool(name string) (bool, error) {
	opt, err := s.get(name, Bool)
	if err != nil {
		return false, err
	}
	return opt.flag, nil
}

// MustFloat is like Float but panics on error. For names known at compile time.
func (s *Set) MustFloat(name string) float32 {
	v, err := s.Float(name)
	if err != nil {
		panic(err)
	}
	return v
}

// MustColor is like Color but panics on error.
func (s *Set) MustColor(name string) config.Color {
	v, err := s.Color(name)
	if err != nil {
		panic(err)
	}
	return v
}

// MustBool is like Bool but panics on error.
func (s *Set) MustBool(name string) bool {
	v, err := s.Bool(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Value returns the option value as float32, config.Color or bool.
func (s *Set) Value(name string) (any, error) {
	opt, ok := s.opts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	switch opt.Kind {
	case Color:
		return opt.color, nil
	case Bool:
		return opt.flag, nil
	default:
		return opt.num, nil
	}
}

// SetFloat clamps v to the option's range and stores it. Handlers run only
// when the stored value changes.
func (s *Set) SetFloat(name string, v float32) error {
	opt, err := s.get(name, Number)
	if err != nil {
		return err
	}
	if math.IsNaN(float64(v)) {
		return fmt.Errorf("%w: %q = NaN", ErrInvalidValue, name)
	}
	v = opt.clamp(v)
	if v == opt.num {
		return nil
	}
	opt.num = v
	s.changed(name, zap.Float32("value", v))
	return nil
}

// SetColor stores a color option. Bits above 0xffffff are dropped.
func (s *Set) SetColor(name string, c config.Color) error {
	opt, err := s.get(name, Color)
	if err != nil {
		return err
	}
	c &= 0xffffff
	if c == opt.color {
		return nil
	}
	opt.color = c
	s.changed(name, zap.Stringer("value", c))
	return nil
}

// SetBool stores a boolean option.
func (s *Set) SetBool(name string, v bool) error {
	opt, err := s.get(name, Bool)
	if err != nil {
		return err
	}
	if v == opt.flag {
		return nil
	}
	opt.flag = v
	s.changed(name, zap.Bool("value", v))
	return nil
}

// Nudge moves a number option by steps increments of its Step.
func (s *Set) Nudge(name string, steps int) error {
	opt, err := s.get(name, Number)
	if err != nil {
		return err
	}
	return s.SetFloat(name, opt.num+float32(steps)*opt.Step)
}

// Toggle flips a boolean option.
func (s *Set) Toggle(name string) error {
	v, err := s.Bool(name)
	if err != nil {
		return err
	}
	return s.SetBool(name, !v)
}

// OnChange registers fn for every listed option. Handlers run synchronously
// on the goroutine that made the change, in registration order.
func (s *Set) OnChange(fn Handler, names ...string) error {
	for _, name := range names {
		if _, ok := s.opts[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownOption, name)
		}
	}
	for _, name := range names {
		s.handlers[name] = append(s.handlers[name], fn)
	}
	return nil
}

func (s *Set) changed(name string, value zap.Field) {
	s.log.Debug("option changed", zap.String("option", name), value)
	for _, h := range s.handlers[name] {
		h(name)
	}
}

// ApplyConfig sets every option from cfg, firing handlers for the ones that
// changed, and returns their names. cfg is validated first: on error no
// option changes.
func (s *Set) ApplyConfig(cfg *config.Config) ([]string, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	var changed []string
	for _, b := range bindings {
		name := b.def.Name
		before, _ := s.Value(name)

		var err error
		switch b.def.Kind {
		case Number:
			err = s.SetFloat(name, *b.num(cfg))
		case Color:
			err = s.SetColor(name, *b.color(cfg))
		case Bool:
			err = s.SetBool(name, *b.flag(cfg))
		}
		if err != nil {
			return changed, err
		}

		if after, _ := s.Value(name); after != before {
			changed = append(changed, name)
		}
	}
	return changed, nil
}

// WriteConfig copies the current option values into cfg.
func (s *Set) WriteConfig(cfg *config.Config) {
	for _, b := range bindings {
		opt := s.opts[b.def.Name]
		switch opt.Kind {
		case Number:
			*b.num(cfg) = opt.num
		case Color:
			*b.color(cfg) = opt.color
		case Bool:
			*b.flag(cfg) = opt.flag
		}
	}
}

func (o *Option) clamp(v float32) float32 {
	if o.Max > o.Min {
		return min(max(v, o.Min), o.Max)
	}
	return v
}
