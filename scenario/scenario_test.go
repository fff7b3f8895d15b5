package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libtabfunc/evalcache"
	"github.com/sgostarter/libtabfunc/tabulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindOrdering, KindOf(fmt.Errorf("wrapped: %w", tabulated.ErrOrdering)))
	assert.Equal(t, KindState, KindOf(tabulated.ErrTooFewPoints))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
	assert.Equal(t, KindUnknown, KindOf(tabulated.ErrUnknownVariant))
}

func TestRunDefault(t *testing.T) {
	report, err := Run(Default(), nil)
	require.Nil(t, err)

	assert.True(t, report.OK())
	assert.NotZero(t, report.ID)
	require.Len(t, report.Cases, 4)

	interpolation := report.Cases[0]
	require.Len(t, interpolation.Results, len(tabulated.Variants()))

	for _, r := range interpolation.Results {
		assert.Equal(t, []float64{21.25}, r.Values, r.Variant)
		assert.Equal(t, []tabulated.Point{{X: 0, Y: 0}, {X: 5, Y: 42.5}, {X: 10, Y: 0}}, r.Points, r.Variant)
		assert.Nil(t, r.Cache)
	}

	for _, r := range report.Cases[2].Results {
		assert.Equal(t, KindConstruction, r.Built)
		assert.Nil(t, r.Points)
		assert.Zero(t, r.Mismatches)
	}

	for _, r := range report.Cases[1].Results {
		require.Len(t, r.Steps, 3)
		assert.Equal(t, KindIndex, r.Steps[0].Got)
		assert.Equal(t, KindNone, r.Steps[1].Got)
		assert.Equal(t, KindState, r.Steps[2].Got)
		assert.Len(t, r.Points, 2)
	}
}

func TestRunWithCache(t *testing.T) {
	cfg := Default()
	cfg.Cache = &evalcache.Config{}

	report, err := Run(cfg, nil)
	require.Nil(t, err)
	assert.True(t, report.OK())

	for _, r := range report.Cases[0].Results {
		require.NotNil(t, r.Cache)
		assert.Equal(t, evalcache.Stats{Misses: 1, Flushes: 1}, *r.Cache)
	}
}

func TestRunMismatch(t *testing.T) {
	cfg := &Config{
		Name:     "mismatch",
		Variants: []tabulated.Variant{tabulated.VariantLinkedList},
		Cases: []Case{
			{
				Name:     "wrong expectations",
				Function: FunctionConfig{XValues: []float64{0, 1, 2}, YValues: []float64{0, 1, 2}},
				Steps: []Step{
					{Op: OpSetX, Index: 1, X: 1.5, Expect: KindOrdering},
					{Op: OpDelete, Index: 0},
				},
				Probes: []float64{1},
				Want:   []float64{7},
			},
		},
	}

	report, err := Run(cfg, nil)
	require.Nil(t, err)

	assert.False(t, report.OK())
	assert.True(t, report.Equivalent)
	assert.EqualValues(t, 2, report.Mismatches)

	r := report.Cases[0].Results[0]
	assert.False(t, r.Steps[0].OK())
	assert.True(t, r.Steps[1].OK())
}

func TestEquivalent(t *testing.T) {
	a := &VariantResult{
		Points: []tabulated.Point{{X: 0, Y: 1}, {X: 1, Y: 2}},
		Values: []float64{1.5, math.NaN()},
	}
	b := &VariantResult{
		Points: []tabulated.Point{{X: 0, Y: 1 + tabulated.Epsilon/10}, {X: 1, Y: 2}},
		Values: []float64{1.5, math.NaN()},
	}

	assert.True(t, equivalent([]*VariantResult{a, b}))

	b.Values[0] = 1.6
	assert.False(t, equivalent([]*VariantResult{a, b}))

	c := &VariantResult{Built: KindConstruction}
	assert.False(t, equivalent([]*VariantResult{a, c}))
	assert.True(t, equivalent([]*VariantResult{c}))
}

const yamlScenario = `
name: yaml
variants: [array, btree]
cache:
  ttl: 1m
cases:
  - name: build up
    function:
      empty: true
    steps:
      - {op: add, x: 1, y: 1}
      - {op: add, x: 0, y: 0}
      - {op: add, x: 2, y: 4}
      - {op: delete, index: 5, expect: index}
    probes: [0.5, 1.5, 3]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(yamlScenario))
	require.Nil(t, err)

	assert.Equal(t, "yaml", cfg.Name)
	assert.Equal(t, []tabulated.Variant{tabulated.VariantArray, tabulated.VariantBTree}, cfg.Variants)
	require.NotNil(t, cfg.Cache)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	require.Len(t, cfg.Cases, 1)
	assert.True(t, cfg.Cases[0].Function.Empty)
	assert.Equal(t, Step{Op: OpDelete, Index: 5, Expect: KindIndex}, cfg.Cases[0].Steps[3])

	report, err := Run(cfg, nil)
	require.Nil(t, err)
	assert.True(t, report.OK())

	for _, r := range report.Cases[0].Results {
		require.Len(t, r.Values, 3)
		assert.EqualValues(t, 0.5, r.Values[0])
		assert.EqualValues(t, 2.5, r.Values[1])
		assert.True(t, math.IsNaN(r.Values[2]))
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("name: empty\n"))
	assert.ErrorIs(t, err, commerr.ErrInvalidArgument)

	_, err = Parse([]byte("variants: [skiplist]\ncases: [{name: a}]\n"))
	assert.ErrorIs(t, err, tabulated.ErrUnknownVariant)

	_, err = Parse([]byte("cases: [{name: a, steps: [{op: move}]}]\n"))
	assert.ErrorIs(t, err, commerr.ErrInvalidArgument)

	_, err = Parse([]byte("cases: [{name: a, steps: [{op: add, expect: boom}]}]\n"))
	assert.ErrorIs(t, err, commerr.ErrInvalidArgument)

	_, err = Parse([]byte("cases: [{name: a, probes: [1, 2], want: [1]}]\n"))
	assert.ErrorIs(t, err, commerr.ErrInvalidArgument)

	for _, fn := range []string{
		"{empty: true, xValues: [0, 1], yValues: [0, 1]}",
		"{empty: true, left: 0, right: 1, count: 2}",
		"{xValues: [0, 1], yValues: [0, 1], count: 2}",
		"{xValues: [0, 1], yValues: [0, 1], right: 3}",
		"{left: 0, right: 1, count: 3, yValues: [0, 1]}",
	} {
		_, err = Parse([]byte("cases: [{name: a, function: " + fn + "}]\n"))
		assert.ErrorIs(t, err, commerr.ErrInvalidArgument, fn)
	}

	cfg, err := Parse([]byte("cases: [{name: a, function: {left: 0, right: 1, yValues: [0, 1]}}]\n"))
	assert.Nil(t, err)
	assert.NotNil(t, cfg)

	_, err = Parse([]byte("cases: ["))
	assert.NotNil(t, err)
}

func TestSaveLoad(t *testing.T) {
	storage := rawfs.NewFSStorage(t.TempDir())

	require.Nil(t, Save(Default(), "default.yaml", storage))

	cfg, err := Load("default.yaml", storage)
	require.Nil(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestReportWrite(t *testing.T) {
	cfg := Default()
	cfg.Cache = &evalcache.Config{}

	report, err := Run(cfg, nil)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, report.Write(&buf))

	out := buf.String()
	assert.Contains(t, out, "scenario default run")
	assert.Contains(t, out, "- interpolation: equivalent=ok")
	assert.Contains(t, out, "values [21.25]")
	assert.Contains(t, out, "points [(0, 0) (5, 42.5) (10, 0)]")
	assert.Contains(t, out, "built=construction")
	assert.Contains(t, out, "cache hits=0 misses=1 flushes=1")
	assert.NotContains(t, out, "FAIL")
}
