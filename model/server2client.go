package model

type ServerMessage struct {
	Setup  []Setup
	Agents []AgentState
	Doors  []DoorState
}

type Setup struct {
	Cols, Rows int
	Origin     Vec
	Generation uint64
	Speed      float64
}

type AgentState struct {
	Id       string
	Kind     string
	Pos      Vec
	Inside   bool
	Selected bool
	Steps    []Vec
}

type DoorState struct {
	Pos    Vec
	Facing Direction
	Open   bool
}
