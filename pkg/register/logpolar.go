package register

import(
	"math"

	"github.com/abworrall/ereg/pkg/emath"
)

// ToLogPolar resamples g about (cx,cy) into a grid that is nAngles wide
// and nRadii tall. Column a is the angle 2*pi*a/nAngles, row r is the
// radius r*step, where the step is chosen so that the last row reaches
// the distance from the center to the origin. A rotation of g about the
// center becomes a circular shift along X.
//
// Despite the name the radial axis is linear; a rotation only needs the
// angle axis to be right.
func ToLogPolar(g emath.FloatGrid, cx, cy float64, nAngles, nRadii int) emath.FloatGrid {
	out := emath.NewFloatGrid(nAngles, nRadii)

	cosines, sines := make([]float64, nAngles), make([]float64, nAngles)
	for a := 0; a < nAngles; a++ {
		theta := 2.0 * math.Pi * float64(a) / float64(nAngles)
		cosines[a], sines[a] = math.Cos(theta), math.Sin(theta)
	}

	step := math.Sqrt(cx*cx + cy*cy) / float64(nRadii)

	// Every angle has the same pixel at radius zero
	center := g.Get(int(cx), int(cy))
	for a := 0; a < nAngles; a++ {
		out.Set(a, 0, center)
	}

	// Bilinear reads 0 near the borders, so the outer rings get dark
	for r := 1; r < nRadii; r++ {
		radius := float64(r) * step
		for a := 0; a < nAngles; a++ {
			out.Set(a, r, g.Bilinear(cx + radius*cosines[a], cy + radius*sines[a]))
		}
	}

	return out
}
