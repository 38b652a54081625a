package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// TeamParticipant is one member of a team from the /teams/{id}/participants
// endpoint.
type TeamParticipant struct {
	ParticipantID  string
	Name           string
	Amount         decimal.NullDecimal
	AvatarImageURL string
}

// NewTeamParticipant builds a TeamParticipant from a decoded JSON object.
func NewTeamParticipant(data map[string]any) TeamParticipant {
	id := str(data, "participantID")
	if id == "" {
		// participantID is numeric on some DonorDrive instances.
		if n := integer(data, "participantID"); n != 0 {
			id = strconv.Itoa(n)
		}
	}
	return TeamParticipant{
		ParticipantID:  id,
		Name:           strDefault(data, "displayName", AnonymousName),
		Amount:         money(data, "sumDonations"),
		AvatarImageURL: str(data, "avatarImageURL"),
	}
}

func (p TeamParticipant) EntryName() string { return p.Name }

func (p TeamParticipant) EntryAmount() (decimal.Decimal, bool) {
	return p.Amount.Decimal, p.Amount.Valid
}

func (p TeamParticipant) EntryMessage() string { return "" }

// TeamInfo holds the team-level scalars from the /teams/{id} endpoint.
type TeamInfo struct {
	Goal           decimal.Decimal
	CaptainName    string
	TotalRaised    decimal.Decimal
	NumDonations   int
	AvatarImageURL string
}

// NewTeamInfo builds TeamInfo from a decoded JSON object.
func NewTeamInfo(data map[string]any) TeamInfo {
	return TeamInfo{
		Goal:           moneyOrZero(data, "fundraisingGoal"),
		CaptainName:    str(data, "captainDisplayName"),
		TotalRaised:    moneyOrZero(data, "sumDonations"),
		NumDonations:   integer(data, "numDonations"),
		AvatarImageURL: str(data, "avatarImageURL"),
	}
}

// TeamGroup aggregates counters for a named group of teams.
type TeamGroup struct {
	Name            string
	GroupCode       string
	FundraisingGoal decimal.Decimal
	SumDonations    decimal.Decimal
	NumDonations    int
	NumParticipants int
	NumTeams        int
}

// NewTeamGroup builds a TeamGroup from a decoded JSON object.
func NewTeamGroup(data map[string]any) TeamGroup {
	return TeamGroup{
		Name:            str(data, "name"),
		GroupCode:       str(data, "groupCode"),
		FundraisingGoal: moneyOrZero(data, "fundraisingGoal"),
		SumDonations:    moneyOrZero(data, "sumDonations"),
		NumDonations:    integer(data, "numDonations"),
		NumParticipants: integer(data, "numParticipants"),
		NumTeams:        integer(data, "numTeams"),
	}
}
