package models

import "fmt"

// MaterialColor is an accent color palette identifier.
type MaterialColor string

const DefaultColor MaterialColor = "grey"

// Palette lists the accent colors a conversation may use, in display order.
var Palette = []MaterialColor{
	"red", "pink", "purple", "deep_purple", "indigo", "blue", "light_blue",
	"cyan", "teal", "green", "light_green", "orange", "deep_orange", "amber",
	"blue_grey", "grey",
}

var paletteIndex = func() map[MaterialColor]int {
	idx := make(map[MaterialColor]int, len(Palette))
	for i, c := range Palette {
		idx[c] = i
	}
	return idx
}()

// ParseColor looks a color up in the palette.
func ParseColor(name string) (MaterialColor, error) {
	c := MaterialColor(name)
	if _, ok := paletteIndex[c]; !ok {
		return "", fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

func (c MaterialColor) String() string {
	return string(c)
}
