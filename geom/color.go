package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor converts a color string into a gg color.
//
// Accepted forms:
//   - hex: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" (the '#' is optional)
//   - functional: "rgb(255, 0, 0)", "rgba(255, 0, 0, 0.5)"
//   - CSS color names: "black", "cornflowerblue", ...
//
// On failure it returns opaque black together with ErrInvalidColor.
func ParseColor(s string) (gg.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return gg.Black, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}
	if c, ok := colornames.Map[v]; ok {
		return gg.FromColor(c), nil
	}
	if strings.HasPrefix(v, "rgb") {
		c, err := parseFunctional(v)
		if err != nil {
			return gg.Black, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
		}
		return c, nil
	}
	c, err := gg.ParseHex(v)
	if err != nil {
		return gg.Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// ValidColor reports whether s is accepted by ParseColor.
func ValidColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

// parseFunctional parses "rgb(r,g,b)" and "rgba(r,g,b,a)" where r, g, b are
// 0..255 and a is 0..1.
func parseFunctional(v string) (gg.RGBA, error) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return gg.RGBA{}, fmt.Errorf("missing parentheses")
	}
	name := strings.TrimSpace(v[:open])
	args := strings.Split(v[open+1:len(v)-1], ",")

	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return gg.RGBA{}, fmt.Errorf("unknown function %q", name)
	}
	if len(args) != want {
		return gg.RGBA{}, fmt.Errorf("%s needs %d components, got %d", name, want, len(args))
	}

	var ch [3]float64
	for i := range ch {
		n, err := strconv.ParseFloat(strings.TrimSpace(args[i]), 64)
		if err != nil {
			return gg.RGBA{}, err
		}
		if n < 0 || n > 255 {
			return gg.RGBA{}, fmt.Errorf("component %d out of range: %v", i, n)
		}
		ch[i] = n / 255
	}
	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil {
			return gg.RGBA{}, err
		}
		if a < 0 || a > 1 {
			return gg.RGBA{}, fmt.Errorf("alpha out of range: %v", a)
		}
		alpha = a
	}
	return gg.RGBA2(ch[0], ch[1], ch[2], alpha), nil
}
