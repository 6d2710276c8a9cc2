package mission

import "slices"

var quotes = []string{
	"The universe is not only stranger than we imagine, it is stranger than we can imagine.",
	"We are all made of star stuff.",
	"The cosmos is within us. We are made of star-stuff.",
	"Space is big. You just won't believe how vastly, hugely, mind-bogglingly big it is.",
	"To infinity and beyond!",
	"The Earth is the cradle of humanity, but mankind cannot stay in the cradle forever.",
	"We choose to go to the moon not because it is easy, but because it is hard.",
	"The important thing is not to stop questioning.",
	"Somewhere, something incredible is waiting to be known.",
	"The universe is under no obligation to make sense to you.",
}

// Quotes returns the fixed list daily quotes are drawn from.
func Quotes() []string {
	return slices.Clone(quotes)
}

// PickQuote selects one quote uniformly using intn, which must return a value
// in [0, n).
func PickQuote(intn func(n int) int) string {
	i := intn(len(quotes))
	if i < 0 || i >= len(quotes) {
		i = 0
	}
	return quotes[i]
}
