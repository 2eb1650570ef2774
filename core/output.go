package core

// EventType labels what happened.
type EventType string

const (
	EventGameStarted      EventType = "game_started"
	EventGameMoved        EventType = "game_moved"
	EventGameResolved     EventType = "game_resolved"
	EventGameError        EventType = "game_error"
	EventRewardMultiplier EventType = "reward_multiplier"
	EventModifierArmed    EventType = "modifier_armed"
	EventStaked           EventType = "staked"
	EventUnstaked         EventType = "unstaked"
	EventRewardsClaimed   EventType = "rewards_claimed"
	EventLiquidityAdded   EventType = "liquidity_added"
	EventLiquidityRemoved EventType = "liquidity_removed"
	EventSwapped          EventType = "swapped"
	EventBridgeDeposited  EventType = "bridge_deposited"
	EventBridgeWithdrawn  EventType = "bridge_withdrawn"
)

// Event carries a typed payload describing one state change (or one typed
// rejection). Data values must be plain JSON-able types; encoding/json sorts
// map keys, so a serialized event stream is byte-stable across nodes.
type Event struct {
	Type EventType      `json:"type"`
	TxID string         `json:"tx_id"`
	Data map[string]any `json:"data"`
}

// Output is one element of the engine's observable stream. Exactly one of
// Event and Echo is set. Within one transaction's contribution every Event
// precedes its TransactionEcho; across a batch, contributions appear in
// submission order.
type Output struct {
	Event *Event       `json:"event,omitempty"`
	Echo  *Transaction `json:"echo,omitempty"`
}

// EventOutput wraps an event as an Output.
func EventOutput(ev Event) Output { return Output{Event: &ev} }

// EchoOutput wraps a transaction echo as an Output.
func EchoOutput(tx *Transaction) Output { return Output{Echo: tx} }
