package viewport

import "math"

// SliderMax is the slider's top value; the slider runs 0..SliderMax.
const SliderMax = 100

// SliderValue is the slider position for s.
func SliderValue(s State) int {
	return int(math.Round(s.Fraction * SliderMax))
}

// FractionForSlider converts a slider value to a viewport fraction.
func FractionForSlider(value float64) float64 {
	return clamp01(value / SliderMax)
}
