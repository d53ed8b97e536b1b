package match

// Color is the side a player is assigned once paired.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Preference is the side a player asks for when joining the queue.
type Preference string

const (
	PreferWhite  Preference = "white"
	PreferBlack  Preference = "black"
	PreferRandom Preference = "random"
)

// ParsePreference maps the raw join field onto a Preference. Missing or
// unrecognised values are treated as random.
func ParsePreference(raw string) Preference {
	switch Preference(raw) {
	case PreferWhite, PreferBlack:
		return Preference(raw)
	default:
		return PreferRandom
	}
}

// AssignColors decides the colors of the older player a and the newer
// player b. Rules are evaluated in order and the first match wins; when
// none applies, coin decides (true gives a white).
func AssignColors(a, b Preference, coin func() bool) (Color, Color) {
	colorA, ok := ruledColor(a, b)
	if !ok {
		colorA = Black
		if coin() {
			colorA = White
		}
	}
	return colorA, colorA.Opposite()
}

// ruledColor returns a's color when a preference rule settles it.
func ruledColor(a, b Preference) (Color, bool) {
	switch {
	case a == PreferBlack && b != PreferBlack:
		return Black, true
	case b == PreferBlack && a != PreferBlack:
		return White, true
	case a == PreferRandom && b == PreferWhite:
		return Black, true
	case a == PreferRandom:
		// b is neither white nor black here; leave it to the coin.
		return "", false
	case a == PreferWhite && b != PreferWhite:
		return White, true
	}
	return "", false
}
