package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/sgostarter/libtabfunc/tabulated"
	"github.com/spf13/cast"
)

func status(ok bool) string {
	if ok {
		return "ok"
	}

	return "FAIL"
}

func kindLabel(k Kind) string {
	if k == KindNone {
		return "none"
	}

	return string(k)
}

func formatPoints(ps []tabulated.Point) string {
	ss := make([]string, 0, len(ps))
	for _, p := range ps {
		ss = append(ss, "("+cast.ToString(p.X)+", "+cast.ToString(p.Y)+")")
	}

	return "[" + strings.Join(ss, " ") + "]"
}

func formatValues(vs []float64) string {
	ss := make([]string, 0, len(vs))
	for _, v := range vs {
		ss = append(ss, cast.ToString(v))
	}

	return "[" + strings.Join(ss, " ") + "]"
}

func (r *Report) Write(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "scenario %s run %d: %s\n", r.Name, r.ID, status(r.OK()))

	for _, c := range r.Cases {
		fmt.Fprintf(&sb, "- %s: equivalent=%s\n", c.Name, status(c.Equivalent))

		for _, res := range c.Results {
			fmt.Fprintf(&sb, "  %-6s built=%s mismatches=%d\n", res.Variant, kindLabel(res.Built), res.Mismatches)

			for idx, step := range res.Steps {
				fmt.Fprintf(&sb, "    step %d %s index=%d x=%s y=%s expect=%s got=%s %s\n", idx, step.Step.Op,
					step.Step.Index, cast.ToString(step.Step.X), cast.ToString(step.Step.Y),
					kindLabel(step.Step.Expect), kindLabel(step.Got), status(step.OK()))
			}

			if res.Points != nil {
				fmt.Fprintf(&sb, "    points %s\n", formatPoints(res.Points))
			}

			if len(res.Values) > 0 {
				fmt.Fprintf(&sb, "    values %s\n", formatValues(res.Values))
			}

			if res.Cache != nil {
				fmt.Fprintf(&sb, "    cache hits=%d misses=%d flushes=%d\n", res.Cache.Hits, res.Cache.Misses, res.Cache.Flushes)
			}
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
