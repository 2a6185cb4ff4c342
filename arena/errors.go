package arena

import "errors"

var (
	ErrAgentNotFound   = errors.New("agent not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrGameNotActive   = errors.New("game not active")
	ErrNotHuman        = errors.New("agent is not human")
	ErrNotEnoughAgents = errors.New("not enough active agents")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }
