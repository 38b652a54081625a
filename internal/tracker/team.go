package tracker

import (
	"context"

	"go.uber.org/zap"

	"donordrive-tracker/internal/aggregate"
	"donordrive-tracker/internal/fetch"
	"donordrive-tracker/internal/format"
	"donordrive-tracker/internal/model"
	"donordrive-tracker/internal/rank"
)

const topTeamParticipants = 5

// TeamOutputs are the formatted output mappings for one team cycle.
type TeamOutputs struct {
	Totals       map[string]string
	Participants map[string]string
	Donations    map[string]string
}

// TeamState is one cycle's snapshot of a team.
type TeamState struct {
	Info       model.TeamInfo
	Badges     []model.Badge
	Activities []model.Activity

	// Participants is the most-recent view; TopParticipants the
	// top-5-by-amount view. Both only refresh when the team's donation
	// count increased since its own previous cycle.
	Participants    []model.TeamParticipant
	TopParticipants []model.TeamParticipant
	Donations       []model.Donation

	Outputs TeamOutputs
}

// Team polls the DonorDrive API for one team. It is owned by a
// Participant when a team ID is configured, but also runs standalone.
type Team struct {
	cfg    Config
	urls   teamURLs
	client Fetcher
	log    *zap.Logger

	state TeamState
}

func NewTeam(cfg Config, client Fetcher, log *zap.Logger) *Team {
	t := &Team{
		cfg:    cfg,
		urls:   newTeamURLs(cfg.BaseAPIURL, cfg.TeamID),
		client: client,
		log:    log.Named("team"),
	}
	t.state.Outputs = t.formatOutputs(t.state)
	return t
}

// State returns the snapshot produced by the most recent cycle.
func (t *Team) State() TeamState { return t.state }

// Run executes one team poll cycle and returns the new snapshot. Team
// scalars, badges, and activities refresh unconditionally; participant and
// donation views only when the team's donation count increased.
func (t *Team) Run(ctx context.Context) TeamState {
	prev := t.state
	next := prev

	if obj, err := t.client.Object(ctx, t.urls.team); err != nil {
		t.log.Warn("could not get team info", zap.Error(err))
	} else {
		next.Info = model.NewTeamInfo(obj)
	}
	next.Badges = refresh(ctx, t.client, t.log, "badges", t.urls.badges,
		fetch.Options{}, model.NewBadge, prev.Badges)
	next.Activities = refresh(ctx, t.client, t.log, "activities", t.urls.activity,
		fetch.Options{}, model.NewActivity, prev.Activities)

	if aggregate.CountIncreased(prev.Info.NumDonations, next.Info.NumDonations) {
		t.refreshParticipants(ctx, &next)
		next.Donations = refresh(ctx, t.client, t.log, "donations", t.urls.donations,
			fetch.Options{}, model.NewDonation, prev.Donations)
	}

	next.Outputs = t.formatOutputs(next)
	t.state = next
	return next
}

func (t *Team) refreshParticipants(ctx context.Context, next *TeamState) {
	next.Participants = refresh(ctx, t.client, t.log, "participants", t.urls.participants,
		fetch.Options{}, model.NewTeamParticipant, next.Participants)
	// The server sorts the top view; rank.TopN re-applies the ordering so
	// a stale or unordered response can't surface an unranked list.
	fetched := refresh(ctx, t.client, t.log, "top participants", t.urls.participants,
		fetch.Options{Order: fetch.OrderSumDonationsDesc, Limit: topTeamParticipants},
		model.NewTeamParticipant, next.TopParticipants)
	next.TopParticipants = rank.TopN(fetched, topTeamParticipants)
}

func (t *Team) formatOutputs(s TeamState) TeamOutputs {
	return TeamOutputs{
		Totals:       format.TeamTotals(s.Info, t.cfg.CurrencySymbol),
		Participants: format.TeamParticipantViews(s.TopParticipants, t.cfg.CurrencySymbol),
		Donations:    format.DonationViews(s.Donations, nil, t.cfg.CurrencySymbol, t.cfg.DisplayCount, "Team_"),
	}
}
