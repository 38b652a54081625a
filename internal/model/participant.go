package model

import "github.com/shopspring/decimal"

// ParticipantInfo holds the participant-level scalars from the
// /participants/{id} endpoint.
type ParticipantInfo struct {
	DisplayName    string
	TotalRaised    decimal.Decimal
	NumDonations   int
	Goal           decimal.Decimal
	AvatarImageURL string
	EventName      string
	DonateURL      string
	StreamURL      string
	PageURL        string
	CreatedDateUTC string
	StreamIsLive   bool
	SumPledges     int
	TeamName       string
	IsTeamCaptain  bool
}

// NewParticipantInfo builds ParticipantInfo from a decoded JSON object.
// Team-affiliation fields are only meaningful when the participant is
// configured with a team, so hasTeam gates them.
func NewParticipantInfo(data map[string]any, hasTeam bool) ParticipantInfo {
	links := object(data, "links")
	info := ParticipantInfo{
		DisplayName:    str(data, "displayName"),
		TotalRaised:    moneyOrZero(data, "sumDonations"),
		NumDonations:   integer(data, "numDonations"),
		Goal:           moneyOrZero(data, "fundraisingGoal"),
		AvatarImageURL: str(data, "avatarImageURL"),
		EventName:      str(data, "eventName"),
		DonateURL:      str(links, "donate"),
		StreamURL:      str(links, "stream"),
		PageURL:        str(links, "page"),
		CreatedDateUTC: str(data, "createdDateUTC"),
		StreamIsLive:   boolean(data, "streamIsLive"),
		SumPledges:     integer(data, "sumPledges"),
	}
	if hasTeam {
		info.TeamName = str(data, "teamName")
		info.IsTeamCaptain = boolean(data, "isTeamCaptain")
	}
	return info
}
