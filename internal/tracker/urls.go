package tracker

import "strings"

// participantURLs are the per-participant API endpoints, derived once from
// the base API URL and the participant's DonorDrive ID.
type participantURLs struct {
	participant string
	donations   string
	donors      string
	badges      string
	milestones  string
	incentives  string
	activity    string
}

func newParticipantURLs(base, id string) participantURLs {
	root := strings.TrimRight(base, "/") + "/participants/" + id
	return participantURLs{
		participant: root,
		donations:   root + "/donations",
		donors:      root + "/donors",
		badges:      root + "/badges",
		milestones:  root + "/milestones",
		incentives:  root + "/incentives",
		activity:    root + "/activity",
	}
}

// teamURLs are the per-team API endpoints.
type teamURLs struct {
	team         string
	participants string
	donations    string
	badges       string
	activity     string
}

func newTeamURLs(base, id string) teamURLs {
	root := strings.TrimRight(base, "/") + "/teams/" + id
	return teamURLs{
		team:         root,
		participants: root + "/participants",
		donations:    root + "/donations",
		badges:       root + "/badges",
		activity:     root + "/activity",
	}
}
