package model

type ClientMessage struct {
	Select []SelectCommand
	// move the selection to these world positions, the last one wins
	Order  []Vec
	Toggle []Vec
	Moving []bool
}

type SelectCommand struct {
	From, To Vec
}
