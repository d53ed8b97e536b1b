package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePreference(t *testing.T) {
	tests := []struct {
		raw  string
		want Preference
	}{
		{"white", PreferWhite},
		{"black", PreferBlack},
		{"random", PreferRandom},
		{"", PreferRandom},
		{"purple", PreferRandom},
		{"WHITE", PreferRandom},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePreference(tt.raw))
		})
	}
}

func TestAssignColors(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Preference
		coin       func() bool
		wantA      Color
		wantB      Color
		randomized bool
	}{
		{name: "older wants black", a: PreferBlack, b: PreferRandom, wantA: Black, wantB: White},
		{name: "older black newer white", a: PreferBlack, b: PreferWhite, wantA: Black, wantB: White},
		{name: "newer wants black", a: PreferRandom, b: PreferBlack, wantA: White, wantB: Black},
		{name: "older white newer black", a: PreferWhite, b: PreferBlack, wantA: White, wantB: Black},
		{name: "older random newer white", a: PreferRandom, b: PreferWhite, wantA: Black, wantB: White},
		{name: "older white newer random", a: PreferWhite, b: PreferRandom, wantA: White, wantB: Black},
		{name: "both random", a: PreferRandom, b: PreferRandom, randomized: true},
		{name: "both white", a: PreferWhite, b: PreferWhite, randomized: true},
		{name: "both black", a: PreferBlack, b: PreferBlack, randomized: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.randomized {
				for _, coin := range []func() bool{alwaysWhite, alwaysBlack} {
					a, b := AssignColors(tt.a, tt.b, coin)
					assert.Equal(t, tt.wantA, a)
					assert.Equal(t, tt.wantB, b)
				}
				return
			}

			a, b := AssignColors(tt.a, tt.b, alwaysWhite)
			assert.Equal(t, White, a)
			assert.Equal(t, Black, b)

			a, b = AssignColors(tt.a, tt.b, alwaysBlack)
			assert.Equal(t, Black, a)
			assert.Equal(t, White, b)
		})
	}
}

func TestAssignColorsUnrecognisedNewerFallsToCoin(t *testing.T) {
	a, b := AssignColors(PreferRandom, Preference("purple"), alwaysBlack)
	assert.Equal(t, Black, a)
	assert.Equal(t, White, b)

	a, b = AssignColors(PreferRandom, Preference("purple"), alwaysWhite)
	assert.Equal(t, White, a)
	assert.Equal(t, Black, b)
}

func TestAssignColorsAlwaysComplementary(t *testing.T) {
	prefs := []Preference{PreferWhite, PreferBlack, PreferRandom}
	for _, a := range prefs {
		for _, b := range prefs {
			for _, coin := range []func() bool{alwaysWhite, alwaysBlack} {
				ca, cb := AssignColors(a, b, coin)
				assert.NotEqual(t, ca, cb, "%s vs %s", a, b)
				assert.Contains(t, []Color{White, Black}, ca)
				assert.Contains(t, []Color{White, Black}, cb)
			}
		}
	}
}

func TestColorOpposite(t *testing.T) {
	assert.Equal(t, Black, White.Opposite())
	assert.Equal(t, White, Black.Opposite())
}

func TestAssignColorsConsultsCoinOnlyWhenUndecided(t *testing.T) {
	flips := 0
	coin := func() bool {
		flips++
		return true
	}

	AssignColors(PreferBlack, PreferRandom, coin)
	AssignColors(PreferWhite, PreferRandom, coin)
	AssignColors(PreferRandom, PreferWhite, coin)
	assert.Zero(t, flips)

	AssignColors(PreferRandom, PreferRandom, coin)
	AssignColors(PreferWhite, PreferWhite, coin)
	assert.Equal(t, 2, flips)
}
