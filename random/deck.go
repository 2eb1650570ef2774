package random

// Card is a value in [0, 52): suit = card / 13, rank = card % 13
// (0 = two … 12 = ace).
const DeckSize = 52

// Rank returns the rank of a card, 0 (two) through 12 (ace).
func Rank(card uint8) uint8 { return card % 13 }

// Suit returns the suit of a card, 0 through 3.
func Suit(card uint8) uint8 { return card / 13 }

// Deck is a full 52-card deck shuffled at construction, drawn without
// replacement in O(1) per draw.
type Deck struct {
	cards [DeckSize]uint8
	next  int
}

// NewDeck builds a full deck and Fisher–Yates shuffles it with bounded
// draws from s.
func NewDeck(s *Stream) *Deck {
	d := &Deck{}
	for i := range d.cards {
		d.cards[i] = uint8(i)
	}
	for i := DeckSize - 1; i > 0; i-- {
		j := s.Bounded(uint32(i + 1))
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// Remaining reports how many cards are left to draw.
func (d *Deck) Remaining() int { return DeckSize - d.next }

// Draw removes and returns the next card. ok is false once the deck is
// exhausted.
func (d *Deck) Draw() (card uint8, ok bool) {
	if d.next >= DeckSize {
		return 0, false
	}
	card = d.cards[d.next]
	d.next++
	return card, true
}

// DrawExcluding draws a uniform card not present in excluded. The plain
// variant rescans excluded for every candidate index: O(n·m), fine for a
// handful of dealt cards.
func DrawExcluding(s *Stream, excluded []uint8) (uint8, bool) {
	free := DeckSize - countDistinct(excluded)
	if free <= 0 {
		return 0, false
	}
	pick := int(s.Bounded(uint32(free)))
	for card := 0; card < DeckSize; card++ {
		if contains(excluded, uint8(card)) {
			continue
		}
		if pick == 0 {
			return uint8(card), true
		}
		pick--
	}
	return 0, false // unreachable while free > 0
}

// DrawExcludingBitset is the O(n) variant: excluded cards are folded into a
// 52-bit mask once, then the pick walks clear bits.
func DrawExcludingBitset(s *Stream, excluded []uint8) (uint8, bool) {
	var mask uint64
	for _, c := range excluded {
		if c < DeckSize {
			mask |= 1 << c
		}
	}
	free := DeckSize - popcount52(mask)
	if free <= 0 {
		return 0, false
	}
	pick := int(s.Bounded(uint32(free)))
	for card := 0; card < DeckSize; card++ {
		if mask&(1<<card) != 0 {
			continue
		}
		if pick == 0 {
			return uint8(card), true
		}
		pick--
	}
	return 0, false
}

// DrawExcludingCounts is the multi-deck variant: counts[c] holds how many
// copies of card c are already dealt across decks copies of the deck.
func DrawExcludingCounts(s *Stream, counts *[DeckSize]uint8, decks int) (uint8, bool) {
	free := 0
	for _, n := range counts {
		free += decks - int(n)
	}
	if free <= 0 {
		return 0, false
	}
	pick := int(s.Bounded(uint32(free)))
	for card := 0; card < DeckSize; card++ {
		avail := decks - int(counts[card])
		if pick < avail {
			return uint8(card), true
		}
		pick -= avail
	}
	return 0, false
}

func contains(cards []uint8, c uint8) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

func countDistinct(cards []uint8) int {
	var mask uint64
	for _, c := range cards {
		if c < DeckSize {
			mask |= 1 << c
		}
	}
	return popcount52(mask)
}

func popcount52(mask uint64) int {
	n := 0
	for mask != 0 {
		mask &= mask - 1
		n++
	}
	return n
}
