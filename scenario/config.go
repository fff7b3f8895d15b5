package scenario

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libtabfunc/evalcache"
	"github.com/sgostarter/libtabfunc/tabulated"
	"gopkg.in/yaml.v3"
)

type Op string

const (
	OpSetX   Op = "setX"
	OpSetY   Op = "setY"
	OpSet    Op = "set"
	OpAdd    Op = "add"
	OpDelete Op = "delete"
	OpGet    Op = "get"
)

func (op Op) Valid() bool {
	switch op {
	case OpSetX, OpSetY, OpSet, OpAdd, OpDelete, OpGet:
		return true
	}

	return false
}

// Kind names an error class in scenario files. The empty kind means success.
type Kind string

const (
	KindNone         Kind = ""
	KindConstruction Kind = "construction"
	KindIndex        Kind = "index"
	KindOrdering     Kind = "ordering"
	KindDuplicate    Kind = "duplicate"
	KindState        Kind = "state"
	KindUnknown      Kind = "unknown"
)

func (k Kind) Valid() bool {
	switch k {
	case KindNone, KindConstruction, KindIndex, KindOrdering, KindDuplicate, KindState:
		return true
	}

	return false
}

// FunctionConfig selects a constructor: Empty, explicit XValues/YValues, or
// Left/Right with YValues or Count.
type FunctionConfig struct {
	Empty   bool      `yaml:"empty,omitempty" json:"empty,omitempty"`
	XValues []float64 `yaml:"xValues,omitempty" json:"xValues,omitempty"`
	YValues []float64 `yaml:"yValues,omitempty" json:"yValues,omitempty"`
	Left    float64   `yaml:"left,omitempty" json:"left,omitempty"`
	Right   float64   `yaml:"right,omitempty" json:"right,omitempty"`
	Count   int       `yaml:"count,omitempty" json:"count,omitempty"`
	Expect  Kind      `yaml:"expect,omitempty" json:"expect,omitempty"`
}

func (fc *FunctionConfig) validate() error {
	explicit := len(fc.XValues) > 0
	stepped := fc.Left != 0 || fc.Right != 0 || fc.Count != 0

	switch {
	case fc.Empty && (explicit || stepped || len(fc.YValues) > 0):
		return fmt.Errorf("%w: empty function with sample settings", commerr.ErrInvalidArgument)
	case explicit && stepped:
		return fmt.Errorf("%w: xValues mixed with left/right/count", commerr.ErrInvalidArgument)
	case fc.Count != 0 && len(fc.YValues) > 0:
		return fmt.Errorf("%w: count mixed with yValues", commerr.ErrInvalidArgument)
	}

	return nil
}

type Step struct {
	Op     Op      `yaml:"op" json:"op"`
	Index  int     `yaml:"index,omitempty" json:"index,omitempty"`
	X      float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Expect Kind    `yaml:"expect,omitempty" json:"expect,omitempty"`
}

type Case struct {
	Name     string         `yaml:"name" json:"name"`
	Function FunctionConfig `yaml:"function" json:"function"`
	Steps    []Step         `yaml:"steps,omitempty" json:"steps,omitempty"`
	Probes   []float64      `yaml:"probes,omitempty" json:"probes,omitempty"`
	// Want, when set, is checked against every variant's probe values
	Want []float64 `yaml:"want,omitempty" json:"want,omitempty"`
}

type Config struct {
	Name     string              `yaml:"name" json:"name"`
	Variants []tabulated.Variant `yaml:"variants,omitempty" json:"variants,omitempty"`
	Cache    *evalcache.Config   `yaml:"cache,omitempty" json:"cache,omitempty"`
	Cases    []Case              `yaml:"cases" json:"cases"`
}

func (cfg *Config) Validate() error {
	if len(cfg.Cases) == 0 {
		return fmt.Errorf("%w: scenario %q has no cases", commerr.ErrInvalidArgument, cfg.Name)
	}

	for _, v := range cfg.Variants {
		if !v.Valid() {
			return fmt.Errorf("%w: %q", tabulated.ErrUnknownVariant, v)
		}
	}

	for _, c := range cfg.Cases {
		if err := c.Function.validate(); err != nil {
			return fmt.Errorf("case %q: %w", c.Name, err)
		}

		if !c.Function.Expect.Valid() {
			return fmt.Errorf("%w: case %q: unknown expect %q", commerr.ErrInvalidArgument, c.Name, c.Function.Expect)
		}

		if len(c.Want) > 0 && len(c.Want) != len(c.Probes) {
			return fmt.Errorf("%w: case %q: %d probes, %d wanted values", commerr.ErrInvalidArgument,
				c.Name, len(c.Probes), len(c.Want))
		}

		for idx, step := range c.Steps {
			if !step.Op.Valid() {
				return fmt.Errorf("%w: case %q step %d: unknown op %q", commerr.ErrInvalidArgument, c.Name, idx, step.Op)
			}

			if !step.Expect.Valid() {
				return fmt.Errorf("%w: case %q step %d: unknown expect %q", commerr.ErrInvalidArgument,
					c.Name, idx, step.Expect)
			}
		}
	}

	return nil
}

func (cfg *Config) variants() []tabulated.Variant {
	if len(cfg.Variants) == 0 {
		return tabulated.Variants()
	}

	return cfg.Variants
}

func Parse(d []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(d, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Load(fileName string, storage stg.FileStorage) (*Config, error) {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	d, err := storage.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	return Parse(d)
}

func Save(cfg *Config, fileName string, storage stg.FileStorage) error {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	d, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return storage.WriteFile(fileName, d)
}

// Default reproduces the original demonstration checks.
func Default() *Config {
	return &Config{
		Name:  "default",
		Cases: []Case{
			{
				Name:     "interpolation",
				Function: FunctionConfig{Left: 0, Right: 10, Count: 3},
				Steps: []Step{
					{Op: OpSetY, Index: 1, Y: 42.5},
				},
				Probes: []float64{2.5},
				Want:   []float64{21.25},
			},
			{
				Name:     "index and state",
				Function: FunctionConfig{Left: 0, Right: 10, YValues: []float64{1, 2, 3}},
				Steps: []Step{
					{Op: OpGet, Index: 100, Expect: KindIndex},
					{Op: OpDelete, Index: 1},
					{Op: OpDelete, Index: 1, Expect: KindState},
				},
			},
			{
				Name:     "inverted bounds",
				Function: FunctionConfig{Left: 10, Right: 0, Count: 5, Expect: KindConstruction},
			},
			{
				Name:     "duplicate and ordering",
				Function: FunctionConfig{Left: 0, Right: 10, Count: 3},
				Steps: []Step{
					{Op: OpAdd, X: 5, Y: 10, Expect: KindDuplicate},
					{Op: OpSetX, Index: 2, X: 4, Expect: KindOrdering},
				},
			},
		},
	}
}
