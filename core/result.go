package core

// GameResult describes exactly how one processed move affects the player's
// balance and whether the session continues. It is the sole authority for
// balance mutation: game modules never touch accounts directly.
//
// The set is sealed; the engine's settlement switch enumerates every
// variant.
type GameResult interface {
	isGameResult()
	// Terminal reports whether the session is finished after this result.
	Terminal() bool
}

// Continue keeps the session running with no settlement.
type Continue struct{}

// ContinueWithUpdate keeps the session running and credits an interim
// payout (e.g. a partial cashout).
type ContinueWithUpdate struct {
	Payout uint64 `json:"payout"`
}

// Win ends the session; Return is the total credited back, stake included.
type Win struct {
	Return uint64 `json:"return"`
}

// Loss ends the session; the stake was already taken at bet placement, so
// no further balance change occurs.
type Loss struct{}

// LossWithExtraDeduction ends the session and deducts Extra on top of the
// already-taken stake.
type LossWithExtraDeduction struct {
	Extra uint64 `json:"extra"`
}

// LossPreDeducted ends the session; Amount was already removed by earlier
// moves of the same session and is reported for settlement accounting only.
type LossPreDeducted struct {
	Amount uint64 `json:"amount"`
}

// Push ends the session and refunds the stake (or part of it).
type Push struct {
	Refund uint64 `json:"refund"`
}

func (Continue) isGameResult()               {}
func (ContinueWithUpdate) isGameResult()     {}
func (Win) isGameResult()                    {}
func (Loss) isGameResult()                   {}
func (LossWithExtraDeduction) isGameResult() {}
func (LossPreDeducted) isGameResult()        {}
func (Push) isGameResult()                   {}

func (Continue) Terminal() bool               { return false }
func (ContinueWithUpdate) Terminal() bool     { return false }
func (Win) Terminal() bool                    { return true }
func (Loss) Terminal() bool                   { return true }
func (LossWithExtraDeduction) Terminal() bool { return true }
func (LossPreDeducted) Terminal() bool        { return true }
func (Push) Terminal() bool                   { return true }
