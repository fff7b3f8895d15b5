package tabulated

// Epsilon is the tolerance used for every abscissa comparison.
const Epsilon = 1e-9

type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// TabulatedFunction is a piecewise-linear function defined by samples with
// strictly increasing abscissas.
//
// Accessors return copies. Errors are returned before any state changes.
type TabulatedFunction interface {
	PointCount() int

	PointX(index int) (float64, error)
	PointY(index int) (float64, error)
	Point(index int) (Point, error)

	SetPointX(index int, x float64) error
	SetPointY(index int, y float64) error
	SetPoint(index int, p Point) error

	// AddPoint inserts p before the first sample with a greater abscissa.
	AddPoint(p Point) error
	// DeletePoint refuses to go below two samples.
	DeletePoint(index int) error

	// LeftBound and RightBound return NaN for an empty function.
	LeftBound() float64
	RightBound() float64

	// FunctionValue returns NaN outside [LeftBound(), RightBound()].
	FunctionValue(x float64) float64
}
