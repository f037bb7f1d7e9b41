// Package quote picks the motivational line shown on the dashboard.
package quote

import "math/rand/v2"

type Quote struct {
	Text   string
	Author string
}

var builtin = []Quote{
	{"The only bad workout is the one that didn't happen.", "Unknown"},
	{"Strength does not come from the body. It comes from the will.", "Gandhi"},
	{"Take care of your body. It's the only place you have to live.", "Jim Rohn"},
	{"Discipline is doing it even when you don't feel like it.", "Unknown"},
	{"Small progress is still progress.", "Unknown"},
	{"What seems impossible today will one day become your warm-up.", "Unknown"},
	{"The pain you feel today will be the strength you feel tomorrow.", "Arnold Schwarzenegger"},
	{"Motivation gets you started. Habit keeps you going.", "Jim Ryun"},
}

// Picker draws quotes from a fixed list.
type Picker struct {
	rng    *rand.Rand
	quotes []Quote
}

// New returns a Picker over the built-in quotes. A nil src seeds from the
// runtime.
func New(src rand.Source) *Picker {
	return NewWith(src, builtin)
}

// NewWith is New with a custom quote list. An empty list falls back to the
// built-in one.
func NewWith(src rand.Source, quotes []Quote) *Picker {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if len(quotes) == 0 {
		quotes = builtin
	}
	return &Picker{rng: rand.New(src), quotes: quotes}
}

func (p *Picker) Next() Quote {
	return p.quotes[p.rng.IntN(len(p.quotes))]
}

// String renders q as `"text" - author`.
func (q Quote) String() string {
	if q.Author == "" {
		return "\"" + q.Text + "\""
	}
	return "\"" + q.Text + "\" - " + q.Author
}
