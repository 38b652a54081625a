package tracker

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"donordrive-tracker/internal/aggregate"
	"donordrive-tracker/internal/fetch"
	"donordrive-tracker/internal/format"
	"donordrive-tracker/internal/model"
)

// ParticipantOutputs are the formatted output mappings for one participant
// cycle, one mapping per logical group.
type ParticipantOutputs struct {
	Totals    map[string]string
	Donations map[string]string
	Donors    map[string]string
}

// ParticipantState is one cycle's snapshot of a participant. Run builds a
// fresh state from the previous one; nothing mutates a published state.
type ParticipantState struct {
	Info            model.ParticipantInfo
	AverageDonation decimal.Decimal

	// NewDonation is true only for the cycle on which the donation count
	// was first observed to increase.
	NewDonation bool

	Donations    []model.Donation
	TopDonations []model.Donation
	Donors       []model.Donor
	TopDonors    []model.Donor
	Badges       []model.Badge
	Milestones   []model.Milestone
	Incentives   []model.Incentive
	Activities   []model.Activity

	Outputs ParticipantOutputs
}

// Participant polls the DonorDrive API for one participant and, when
// configured, its team.
type Participant struct {
	cfg    Config
	urls   participantURLs
	client Fetcher
	log    *zap.Logger

	team  *Team
	state ParticipantState
	ran   bool
}

// NewParticipant builds a participant tracker. The owned Team is created
// here, once, when a team ID is configured, and never replaced.
func NewParticipant(cfg Config, client Fetcher, log *zap.Logger) *Participant {
	p := &Participant{
		cfg:    cfg,
		urls:   newParticipantURLs(cfg.BaseAPIURL, cfg.ParticipantID),
		client: client,
		log:    log.Named("participant"),
	}
	if cfg.TeamID != "" {
		p.team = NewTeam(cfg, client, log)
	}
	p.state.Outputs = p.formatOutputs(p.state)
	return p
}

// State returns the snapshot produced by the most recent cycle.
func (p *Participant) State() ParticipantState { return p.state }

// Team returns the owned team tracker, or nil when none is configured.
func (p *Participant) Team() *Team { return p.team }

// Run executes one poll cycle and returns the new snapshot.
//
// Scalars, incentives, and activities refresh every cycle. Donations,
// donors, badges, and milestones only refresh on the first cycle or when
// the donation count increased, which keeps steady-state cycles cheap and
// shields the expensive views from transient bad scalar data. Any fetch
// failure keeps the previous cycle's values for that slice.
func (p *Participant) Run(ctx context.Context) ParticipantState {
	prev := p.state
	next := prev
	next.NewDonation = false

	if obj, err := p.client.Object(ctx, p.urls.participant); err != nil {
		p.log.Warn("couldn't access participant info", zap.Error(err))
	} else {
		next.Info = model.NewParticipantInfo(obj, p.team != nil)
	}
	next.AverageDonation = aggregate.AverageDonation(next.Info.TotalRaised, next.Info.NumDonations)

	next.Incentives = refresh(ctx, p.client, p.log, "incentives", p.urls.incentives,
		fetch.Options{}, model.NewIncentive, prev.Incentives)
	next.Activities = refresh(ctx, p.client, p.log, "activities", p.urls.activity,
		fetch.Options{}, model.NewActivity, prev.Activities)

	if !p.ran || aggregate.CountIncreased(prev.Info.NumDonations, next.Info.NumDonations) {
		next.NewDonation = aggregate.NewDonationEdge(!p.ran, prev.Info.NumDonations, next.Info.NumDonations)
		if next.NewDonation {
			p.log.Info("a new donation", zap.Int("numDonations", next.Info.NumDonations))
		}
		p.refreshDonations(ctx, &next)
		p.refreshDonors(ctx, &next)
		next.Badges = refresh(ctx, p.client, p.log, "badges", p.urls.badges,
			fetch.Options{}, model.NewBadge, prev.Badges)
		next.Milestones = refresh(ctx, p.client, p.log, "milestones", p.urls.milestones,
			fetch.Options{}, model.NewMilestone, prev.Milestones)
	}

	next.Outputs = p.formatOutputs(next)

	p.state = next
	p.ran = true

	if p.team != nil {
		p.team.Run(ctx)
	}
	p.log.Info("finished checking the api", zap.String("participant", p.cfg.ParticipantID))
	return next
}

func (p *Participant) refreshDonations(ctx context.Context, next *ParticipantState) {
	if next.Info.NumDonations == 0 {
		return
	}
	next.Donations = refresh(ctx, p.client, p.log, "donations", p.urls.donations,
		fetch.Options{}, model.NewDonation, next.Donations)
	next.TopDonations = refresh(ctx, p.client, p.log, "top donations", p.urls.donations,
		fetch.Options{Order: fetch.OrderAmountDesc}, model.NewDonation, next.TopDonations)
}

func (p *Participant) refreshDonors(ctx context.Context, next *ParticipantState) {
	if next.Info.NumDonations == 0 {
		return
	}
	donors, err := p.client.List(ctx, p.urls.donors, fetch.Options{})
	if err != nil {
		p.log.Warn("couldn't refresh donors", zap.Error(err))
		return
	}
	next.Donors = buildList(donors, model.NewDonor)
	// Anonymous donors don't populate the donor endpoint, so a donation
	// can exist with no donor entry. Skip the top view in that case.
	if len(next.Donors) == 0 {
		return
	}
	next.TopDonors = refresh(ctx, p.client, p.log, "top donors", p.urls.donors,
		fetch.Options{Order: fetch.OrderSumDonationsDesc}, model.NewDonor, next.TopDonors)
}

func (p *Participant) formatOutputs(s ParticipantState) ParticipantOutputs {
	return ParticipantOutputs{
		Totals:    format.ParticipantTotals(s.Info, s.AverageDonation, p.cfg.CurrencySymbol),
		Donations: format.DonationViews(s.Donations, s.TopDonations, p.cfg.CurrencySymbol, p.cfg.DisplayCount, ""),
		Donors:    format.DonorViews(s.Donors, s.TopDonors, p.cfg.CurrencySymbol, p.cfg.DisplayCount),
	}
}
