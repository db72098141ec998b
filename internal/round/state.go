package round

import "fmt"

// State is a step of the round protocol.
type State int

const (
	Start State = iota
	MoveChosen
	CommitmentPublished
	AwaitingUserInput
	HelpDisplayed
	Resolved
	KeyRevealed
	Terminal
)

var stateNames = [...]string{
	Start:               "start",
	MoveChosen:          "move-chosen",
	CommitmentPublished: "commitment-published",
	AwaitingUserInput:   "awaiting-user-input",
	HelpDisplayed:       "help-displayed",
	Resolved:            "resolved",
	KeyRevealed:         "key-revealed",
	Terminal:            "terminal",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// transitions lists the legal successors of each state.
var transitions = map[State][]State{
	Start:               {MoveChosen},
	MoveChosen:          {CommitmentPublished},
	CommitmentPublished: {AwaitingUserInput},
	AwaitingUserInput:   {HelpDisplayed, AwaitingUserInput, Resolved, Terminal},
	HelpDisplayed:       {AwaitingUserInput},
	Resolved:            {KeyRevealed},
	KeyRevealed:         {Start},
}

// CanTransition reports whether the protocol allows moving from s to next.
func (s State) CanTransition(next State) bool {
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
