package sketch

// Viewport breakpoints, in pixels of viewport width.
const (
	MobileBreakpoint = 768
	TabletBreakpoint = 1024
)

// Surface size slider ranges offered by hosts.
const (
	MinSliderWidth  = 400
	MaxSliderWidth  = 1200
	MinSliderHeight = 300
	MaxSliderHeight = 900
	SliderStep      = 50
)

// SurfaceForViewport returns the surface size for a viewport of vw x vh:
//   - below 768 wide: min(vw-40, 600) x min(vh/2, 500)
//   - below 1024 wide: min(vw-60, 800) x min(vh*0.6, 600)
//   - otherwise 800 x 600
//
// Results never drop below 1.
func SurfaceForViewport(vw, vh int) (width, height int) {
	switch {
	case vw < MobileBreakpoint:
		width = min(vw-40, 600)
		height = min(int(float64(vh)*0.5), 500)
	case vw < TabletBreakpoint:
		width = min(vw-60, 800)
		height = min(int(float64(vh)*0.6), 600)
	default:
		width, height = 800, 600
	}
	return max(width, 1), max(height, 1)
}

// SnapSlider clamps v to [lo, hi] and rounds it to the nearest multiple of
// SliderStep above lo.
func SnapSlider(v, lo, hi int) int {
	v = min(max(v, lo), hi)
	steps := (v - lo + SliderStep/2) / SliderStep
	return min(lo+steps*SliderStep, hi)
}

// FitViewport resizes the surface for a viewport of vw x vh and returns the
// chosen size.
func (b *Board) FitViewport(vw, vh int) (width, height int) {
	width, height = SurfaceForViewport(vw, vh)
	b.Resize(width, height)
	return width, height
}

// ResizeFromSliders resizes the surface to slider values, snapped to the
// slider ranges, and returns the chosen size.
func (b *Board) ResizeFromSliders(w, h int) (width, height int) {
	width = SnapSlider(w, MinSliderWidth, MaxSliderWidth)
	height = SnapSlider(h, MinSliderHeight, MaxSliderHeight)
	b.Resize(width, height)
	return width, height
}
