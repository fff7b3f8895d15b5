package scenario

import (
	"errors"

	"github.com/godruoyi/go-snowflake"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libtabfunc/evalcache"
	"github.com/sgostarter/libtabfunc/tabulated"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{tabulated.ErrConstruction, KindConstruction},
	{tabulated.ErrIndexOutOfBounds, KindIndex},
	{tabulated.ErrOrdering, KindOrdering},
	{tabulated.ErrDuplicateAbscissa, KindDuplicate},
	{tabulated.ErrTooFewPoints, KindState},
}

func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindUnknown
}

type StepResult struct {
	Step  Step
	Got   Kind
	Point tabulated.Point
}

func (r StepResult) OK() bool {
	return r.Got == r.Step.Expect
}

type VariantResult struct {
	Variant tabulated.Variant
	Built   Kind
	Steps   []StepResult
	Points  []tabulated.Point
	Values  []float64
	Cache   *evalcache.Stats

	Mismatches int
}

type CaseReport struct {
	Name       string
	Results    []*VariantResult
	Equivalent bool
}

type Report struct {
	ID         uint64
	Name       string
	Cases      []*CaseReport
	Mismatches int
	Equivalent bool
}

func (r *Report) OK() bool {
	return r.Mismatches == 0 && r.Equivalent
}

var approx = cmp.Options{
	cmpopts.EquateApprox(0, tabulated.Epsilon),
	cmpopts.EquateNaNs(),
}

func Run(cfg *Config, logger l.Wrapper) (*Report, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "scenarioRunner"))

	if cfg == nil {
		cfg = Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:         snowflake.ID(),
		Name:       cfg.Name,
		Equivalent: true,
	}

	for _, c := range cfg.Cases {
		caseLogger := logger.WithFields(l.UInt64Field("runID", report.ID), l.StringField("case", c.Name))

		cr := &CaseReport{
			Name: c.Name,
		}

		for _, v := range cfg.variants() {
			r := runCase(v, &c, cfg.Cache, caseLogger)
			report.Mismatches += r.Mismatches

			cr.Results = append(cr.Results, r)
		}

		cr.Equivalent = equivalent(cr.Results)
		if !cr.Equivalent {
			report.Equivalent = false

			caseLogger.Error("variants diverged")
		}

		report.Cases = append(report.Cases, cr)
	}

	return report, nil
}

func build(v tabulated.Variant, fc *FunctionConfig) (tabulated.TabulatedFunction, error) {
	switch {
	case fc.Empty:
		return tabulated.NewEmptyFunction(v)
	case len(fc.XValues) > 0:
		return tabulated.NewFunction(v, fc.XValues, fc.YValues)
	case len(fc.YValues) > 0:
		return tabulated.NewFunctionByValues(v, fc.Left, fc.Right, fc.YValues)
	}

	return tabulated.NewFunctionByStep(v, fc.Left, fc.Right, fc.Count)
}

func apply(f tabulated.TabulatedFunction, step Step) (p tabulated.Point, err error) {
	switch step.Op {
	case OpSetX:
		err = f.SetPointX(step.Index, step.X)
	case OpSetY:
		err = f.SetPointY(step.Index, step.Y)
	case OpSet:
		err = f.SetPoint(step.Index, tabulated.Point{X: step.X, Y: step.Y})
	case OpAdd:
		err = f.AddPoint(tabulated.Point{X: step.X, Y: step.Y})
	case OpDelete:
		err = f.DeletePoint(step.Index)
	case OpGet:
		p, err = f.Point(step.Index)
	}

	return
}

func runCase(v tabulated.Variant, c *Case, cacheCfg *evalcache.Config, logger l.Wrapper) *VariantResult {
	logger = logger.WithFields(l.StringField("variant", string(v)))

	r := &VariantResult{
		Variant: v,
	}

	f, err := build(v, &c.Function)
	r.Built = KindOf(err)

	if r.Built != c.Function.Expect {
		r.Mismatches++

		logger.WithFields(l.ErrorField(err), l.StringField("expect", string(c.Function.Expect))).
			Error("unexpected construction outcome")
	}

	if err != nil {
		return r
	}

	var cached *evalcache.Function
	if cacheCfg != nil {
		cached = evalcache.New(f, cacheCfg, logger)
		f = cached
	}

	for idx, step := range c.Steps {
		p, err := apply(f, step)

		sr := StepResult{
			Step:  step,
			Got:   KindOf(err),
			Point: p,
		}

		if !sr.OK() {
			r.Mismatches++

			logger.WithFields(l.IntField("step", idx), l.ErrorField(err), l.StringField("expect", string(step.Expect))).
				Error("unexpected step outcome")
		} else {
			logger.WithFields(l.IntField("step", idx), l.StringField("op", string(step.Op))).Debug("step ok")
		}

		r.Steps = append(r.Steps, sr)
	}

	r.Points = tabulated.Points(f)

	for _, x := range c.Probes {
		r.Values = append(r.Values, f.FunctionValue(x))
	}

	if len(c.Want) > 0 && !cmp.Equal(c.Want, r.Values, approx) {
		r.Mismatches++

		logger.Error("probe values differ from wanted values")
	}

	if cached != nil {
		stats := cached.Stats()
		r.Cache = &stats
	}

	return r
}

func equivalent(results []*VariantResult) bool {
	if len(results) < 2 {
		return true
	}

	first := results[0]

	for _, r := range results[1:] {
		if r.Built != first.Built || len(r.Steps) != len(first.Steps) {
			return false
		}

		for idx := range r.Steps {
			if r.Steps[idx].Got != first.Steps[idx].Got ||
				!cmp.Equal(r.Steps[idx].Point, first.Steps[idx].Point, approx) {
				return false
			}
		}

		if !cmp.Equal(r.Points, first.Points, approx, cmpopts.EquateEmpty()) ||
			!cmp.Equal(r.Values, first.Values, approx, cmpopts.EquateEmpty()) {
			return false
		}
	}

	return true
}
