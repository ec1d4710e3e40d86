package integrate

import (
	"fmt"
	"math"

	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/quadrature"
)

// Default option values.
const (
	DefaultMaxLevelsGaussKronrod = 15
	DefaultMaxLevelsDE           = 11
	DefaultMaxLevelsTrapezoidal  = 8
	DefaultPoints                = 31
	DefaultIntervalInfinity      = 1
)

// DefaultTolerance is the square root of machine epsilon.
var DefaultTolerance = quadrature.DefaultTolerance

// Common holds the options every method accepts.
type Common struct {
	Tolerance  float64
	MaxLevels  int
	FullOutput bool
}

func (c *Common) set(name string, v any) (bool, error) {
	var err error
	switch name {
	case OptTolerance:
		c.Tolerance, err = floatOption(name, v)
	case OptMaxLevels:
		c.MaxLevels, err = intOption(name, v)
	case OptFullOutput:
		c.FullOutput, err = boolOption(name, v)
	default:
		return false, nil
	}
	return true, err
}

func (c *Common) validate(method Method) error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return errors.OutOfRange(string(method), OptTolerance, c.Tolerance, "must be a finite number greater than 0")
	}
	if c.MaxLevels < 0 {
		return errors.OutOfRange(string(method), OptMaxLevels, c.MaxLevels, "must be at least 0")
	}
	return nil
}

func (c *Common) common() *Common { return c }

// Config is implemented by the per-method configuration records.
type Config interface {
	// Set assigns one option by keyword name.
	Set(name string, value any) error
	// Validate checks option ranges.
	Validate() error
	common() *Common
}

// GaussKronrodConfig configures GaussKronrod.
type GaussKronrodConfig struct {
	Common
	Points int
}

// NewGaussKronrodConfig returns the defaults.
func NewGaussKronrodConfig() *GaussKronrodConfig {
	return &GaussKronrodConfig{
		Common: Common{Tolerance: DefaultTolerance, MaxLevels: DefaultMaxLevelsGaussKronrod},
		Points: DefaultPoints,
	}
}

func (c *GaussKronrodConfig) Set(name string, v any) error {
	if ok, err := c.Common.set(name, v); ok {
		return err
	}
	if name != OptPoints {
		return unknownOption(MethodGaussKronrod, name)
	}
	var err error
	c.Points, err = intOption(name, v)
	return err
}

func (c *GaussKronrodConfig) Validate() error {
	if err := c.Common.validate(MethodGaussKronrod); err != nil {
		return err
	}
	for _, p := range quadrature.SupportedPoints {
		if c.Points == p {
			return nil
		}
	}
	return errors.OutOfRange(string(MethodGaussKronrod), OptPoints, c.Points,
		fmt.Sprintf("must be one of %v", quadrature.SupportedPoints))
}

// DEConfig configures TanhSinh and SinhSinh.
type DEConfig struct {
	Common
	method Method
}

func newDEConfig(method Method) *DEConfig {
	return &DEConfig{
		Common: Common{Tolerance: DefaultTolerance, MaxLevels: DefaultMaxLevelsDE},
		method: method,
	}
}

// NewTanhSinhConfig returns the defaults.
func NewTanhSinhConfig() *DEConfig { return newDEConfig(MethodTanhSinh) }

// NewSinhSinhConfig returns the defaults.
func NewSinhSinhConfig() *DEConfig { return newDEConfig(MethodSinhSinh) }

func (c *DEConfig) Set(name string, v any) error {
	if ok, err := c.Common.set(name, v); ok {
		return err
	}
	return unknownOption(c.method, name)
}

func (c *DEConfig) Validate() error {
	return c.Common.validate(c.method)
}

// ExpSinhConfig configures ExpSinh.
type ExpSinhConfig struct {
	Common
	IntervalInfinity float64
}

// NewExpSinhConfig returns the defaults.
func NewExpSinhConfig() *ExpSinhConfig {
	return &ExpSinhConfig{
		Common:           Common{Tolerance: DefaultTolerance, MaxLevels: DefaultMaxLevelsDE},
		IntervalInfinity: DefaultIntervalInfinity,
	}
}

func (c *ExpSinhConfig) Set(name string, v any) error {
	if ok, err := c.Common.set(name, v); ok {
		return err
	}
	if name != OptIntervalInfinity {
		return unknownOption(MethodExpSinh, name)
	}
	var err error
	c.IntervalInfinity, err = floatOption(name, v)
	return err
}

func (c *ExpSinhConfig) Validate() error {
	if err := c.Common.validate(MethodExpSinh); err != nil {
		return err
	}
	if c.IntervalInfinity != 1 && c.IntervalInfinity != -1 {
		return errors.OutOfRange(string(MethodExpSinh), OptIntervalInfinity, c.IntervalInfinity, "must be +1 or -1")
	}
	return nil
}

// TrapezoidalConfig configures Trapezoidal.
type TrapezoidalConfig struct {
	Common
}

// NewTrapezoidalConfig returns the defaults.
func NewTrapezoidalConfig() *TrapezoidalConfig {
	return &TrapezoidalConfig{
		Common: Common{Tolerance: DefaultTolerance, MaxLevels: DefaultMaxLevelsTrapezoidal},
	}
}

func (c *TrapezoidalConfig) Set(name string, v any) error {
	if ok, err := c.Common.set(name, v); ok {
		return err
	}
	return unknownOption(MethodTrapezoidal, name)
}

func (c *TrapezoidalConfig) Validate() error {
	return c.Common.validate(MethodTrapezoidal)
}

// Apply sets each option on cfg and validates the result.
func Apply(cfg Config, opts ...Option) error {
	for _, o := range opts {
		if err := cfg.Set(o.Name, o.Value); err != nil {
			return err
		}
	}
	return cfg.Validate()
}
