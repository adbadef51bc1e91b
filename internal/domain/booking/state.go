package booking

import "strings"

type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Party is the side of a booking an actor is on.
type Party uint8

const (
	PartyNone Party = iota
	PartyClient
	PartyProvider
)

func (p Party) String() string {
	switch p {
	case PartyClient:
		return "client"
	case PartyProvider:
		return "provider"
	default:
		return "none"
	}
}

type edge struct {
	from, to Status
}

// transitions lists every permitted status change and who may make it.
var transitions = map[edge][]Party{
	{StatusPending, StatusAccepted}:     {PartyProvider},
	{StatusPending, StatusCancelled}:    {PartyProvider, PartyClient},
	{StatusAccepted, StatusInProgress}:  {PartyProvider},
	{StatusAccepted, StatusCancelled}:   {PartyProvider, PartyClient},
	{StatusInProgress, StatusCompleted}: {PartyProvider},
}

// CanTransition reports whether from -> to is in the table at all.
func CanTransition(from, to Status) bool {
	_, ok := transitions[edge{from, to}]
	return ok
}

// AllowedParty reports whether p may perform from -> to.
func AllowedParty(from, to Status, p Party) bool {
	for _, allowed := range transitions[edge{from, to}] {
		if allowed == p {
			return true
		}
	}
	return false
}
