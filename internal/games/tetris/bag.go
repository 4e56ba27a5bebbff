package tetris

import "math/rand"

// Bag deals pieces in shuffled runs of seven: every run of seven draws that
// starts at a multiple of seven contains each piece exactly once.
type Bag struct {
	rng    *rand.Rand
	order  [PieceCount]int
	played int
}

// NewBag creates a bag with a freshly shuffled permutation.
func NewBag(rng *rand.Rand) *Bag {
	b := &Bag{rng: rng}
	for i := range b.order {
		b.order[i] = i
	}
	b.shuffle()
	return b
}

func (b *Bag) shuffle() {
	b.rng.Shuffle(len(b.order), func(i, j int) {
		b.order[i], b.order[j] = b.order[j], b.order[i]
	})
}

// Next returns the next color id. The permutation is reshuffled right before
// a draw would start a new run.
func (b *Bag) Next() int {
	idx := b.played % PieceCount
	if idx == 0 {
		b.shuffle()
	}
	b.played++
	return b.order[idx]
}

// Played returns how many pieces the bag has dealt.
func (b *Bag) Played() int {
	return b.played
}
