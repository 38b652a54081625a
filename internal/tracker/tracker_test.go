package tracker

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"donordrive-tracker/internal/fetch"
	"donordrive-tracker/internal/format"
)

const (
	testBase       = "https://donor.test/api"
	participantID  = "478153"
	teamID         = "44013"
	participantURL = testBase + "/participants/" + participantID
	teamURL        = testBase + "/teams/" + teamID
)

// fakeFetcher serves canned API fixtures and counts calls per endpoint so
// tests can assert which endpoints a cycle touched.
type fakeFetcher struct {
	objects map[string]map[string]any
	lists   map[string][]map[string]any
	errs    map[string]error
	calls   map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		objects: map[string]map[string]any{},
		lists:   map[string][]map[string]any{},
		errs:    map[string]error{},
		calls:   map[string]int{},
	}
}

// listKey distinguishes ordered/limited variants of the same endpoint.
func listKey(url string, opts fetch.Options) string {
	return fmt.Sprintf("%s?order=%d&limit=%d", url, opts.Order, opts.Limit)
}

func (f *fakeFetcher) Object(_ context.Context, url string) (map[string]any, error) {
	f.calls[url]++
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	if obj, ok := f.objects[url]; ok {
		return obj, nil
	}
	return nil, fmt.Errorf("no fixture for %s", url)
}

func (f *fakeFetcher) List(_ context.Context, url string, opts fetch.Options) ([]map[string]any, error) {
	key := listKey(url, opts)
	f.calls[key]++
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return f.lists[key], nil
}

func testConfig(withTeam bool) Config {
	cfg := Config{
		ParticipantID:  participantID,
		CurrencySymbol: "$",
		DisplayCount:   5,
		BaseAPIURL:     testBase,
	}
	if withTeam {
		cfg.TeamID = teamID
	}
	return cfg
}

// setParticipant installs the participant scalar fixture.
func setParticipant(f *fakeFetcher, total float64, count int) {
	f.objects[participantURL] = map[string]any{
		"displayName":     "Eric",
		"sumDonations":    total,
		"numDonations":    float64(count),
		"fundraisingGoal": 500.0,
	}
}

func setDonations(f *fakeFetcher, donations ...map[string]any) {
	f.lists[listKey(participantURL+"/donations", fetch.Options{})] = donations
	f.lists[listKey(participantURL+"/donations", fetch.Options{Order: fetch.OrderAmountDesc})] = donations
}

func donationJSON(name string, amount float64) map[string]any {
	return map[string]any{"displayName": name, "amount": amount}
}

func TestParticipantFirstCycle(t *testing.T) {
	f := newFakeFetcher()
	setParticipant(f, 150, 3)
	setDonations(f, donationJSON("Ana", 100), donationJSON("Ben", 25), donationJSON("Cal", 25))
	f.lists[listKey(participantURL+"/donors", fetch.Options{})] = []map[string]any{
		{"displayName": "Ana", "sumDonations": 100.0},
	}
	f.lists[listKey(participantURL+"/donors", fetch.Options{Order: fetch.OrderSumDonationsDesc})] = []map[string]any{
		{"displayName": "Ana", "sumDonations": 100.0},
	}

	p := NewParticipant(testConfig(false), f, zap.NewNop())
	state := p.Run(context.Background())

	if state.NewDonation {
		t.Fatal("first cycle raised new_donation")
	}
	if got := state.AverageDonation.StringFixed(2); got != "50.00" {
		t.Fatalf("AverageDonation = %s, want 50.00", got)
	}
	if len(state.Donations) != 3 || state.Donations[0].Name != "Ana" {
		t.Fatalf("Donations = %+v", state.Donations)
	}
	if len(state.Donors) != 1 {
		t.Fatalf("Donors = %+v", state.Donors)
	}
	if got := state.Outputs.Totals["totalRaised"]; got != "$150.00" {
		t.Fatalf("totalRaised = %q", got)
	}
	if got := state.Outputs.Donations["LastDonationNameAmnt"]; got != "Ana - $100.00" {
		t.Fatalf("LastDonationNameAmnt = %q", got)
	}
}

func TestNewDonationEdgeAcrossCycles(t *testing.T) {
	f := newFakeFetcher()
	setParticipant(f, 0, 0)

	p := NewParticipant(testConfig(false), f, zap.NewNop())
	ctx := context.Background()

	// Cycle 1: no donations, first cycle.
	if state := p.Run(ctx); state.NewDonation {
		t.Fatal("cycle 1 raised new_donation")
	}

	// Cycle 2: a donation arrived.
	setParticipant(f, 25, 1)
	setDonations(f, donationJSON("Jane", 25))
	if state := p.Run(ctx); !state.NewDonation {
		t.Fatal("cycle 2 did not raise new_donation")
	}

	// Cycle 3: nothing changed.
	if state := p.Run(ctx); state.NewDonation {
		t.Fatal("cycle 3 raised new_donation with an unchanged count")
	}
}

func TestParticipantFetchFailureKeepsPreviousValues(t *testing.T) {
	f := newFakeFetcher()
	setParticipant(f, 150, 3)
	setDonations(f, donationJSON("Ana", 100))

	p := NewParticipant(testConfig(false), f, zap.NewNop())
	ctx := context.Background()
	first := p.Run(ctx)

	// Participant endpoint goes dark; the snapshot keeps the old scalars.
	f.errs[participantURL] = fmt.Errorf("boom")
	second := p.Run(ctx)
	if !second.Info.TotalRaised.Equal(first.Info.TotalRaised) {
		t.Fatalf("TotalRaised = %v, want previous %v", second.Info.TotalRaised, first.Info.TotalRaised)
	}
	if second.Info.NumDonations != first.Info.NumDonations {
		t.Fatalf("NumDonations = %d, want %d", second.Info.NumDonations, first.Info.NumDonations)
	}

	// Scalars recover, the count grows, but the donation endpoint fails:
	// the donation list carries over from the last good cycle.
	delete(f.errs, participantURL)
	setParticipant(f, 175, 4)
	f.errs[listKey(participantURL+"/donations", fetch.Options{})] = fmt.Errorf("boom")
	third := p.Run(ctx)
	if !reflect.DeepEqual(third.Donations, first.Donations) {
		t.Fatalf("Donations = %+v, want previous cycle's list", third.Donations)
	}
}

func TestSteadyStateSkipsExpensiveRefreshes(t *testing.T) {
	f := newFakeFetcher()
	setParticipant(f, 150, 3)
	setDonations(f, donationJSON("Ana", 100))

	p := NewParticipant(testConfig(false), f, zap.NewNop())
	ctx := context.Background()
	p.Run(ctx)

	donationsKey := listKey(participantURL+"/donations", fetch.Options{})
	badgesKey := listKey(participantURL+"/badges", fetch.Options{})
	activityKey := listKey(participantURL+"/activity", fetch.Options{})
	donationCalls := f.calls[donationsKey]
	badgeCalls := f.calls[badgesKey]
	activityCalls := f.calls[activityKey]

	// Unchanged count: activities still refresh, donations and badges don't.
	p.Run(ctx)
	if f.calls[donationsKey] != donationCalls {
		t.Fatal("donations re-fetched without a count increase")
	}
	if f.calls[badgesKey] != badgeCalls {
		t.Fatal("badges re-fetched without a count increase")
	}
	if f.calls[activityKey] != activityCalls+1 {
		t.Fatal("activities did not refresh on the steady-state cycle")
	}
}

func TestParticipantZeroDonationsUsesPlaceholders(t *testing.T) {
	f := newFakeFetcher()
	setParticipant(f, 0, 0)

	p := NewParticipant(testConfig(false), f, zap.NewNop())
	state := p.Run(context.Background())

	if f.calls[listKey(participantURL+"/donations", fetch.Options{})] != 0 {
		t.Fatal("donation endpoint hit with zero donations")
	}
	for key, value := range state.Outputs.Donations {
		if value != format.NoDonations {
			t.Fatalf("key %s = %q, want placeholder", key, value)
		}
	}
	for key, value := range state.Outputs.Donors {
		if value != format.NoDonors {
			t.Fatalf("key %s = %q, want placeholder", key, value)
		}
	}
	if got := state.Outputs.Totals["averageDonation"]; got != "$0.00" {
		t.Fatalf("averageDonation = %q, want $0.00", got)
	}
}

func TestAnonymousDonorGuard(t *testing.T) {
	f := newFakeFetcher()
	setParticipant(f, 25, 1)
	setDonations(f, donationJSON("Anonymous", 25))
	// The donor endpoint legitimately returns nothing: anonymous donors
	// don't populate it.
	f.lists[listKey(participantURL+"/donors", fetch.Options{})] = []map[string]any{}

	p := NewParticipant(testConfig(false), f, zap.NewNop())
	state := p.Run(context.Background())

	if len(state.Donors) != 0 {
		t.Fatalf("Donors = %+v, want empty", state.Donors)
	}
	if f.calls[listKey(participantURL+"/donors", fetch.Options{Order: fetch.OrderSumDonationsDesc})] != 0 {
		t.Fatal("top donor view fetched for an empty donor list")
	}
	if got := state.Outputs.Donors["TopDonorNameAmnt"]; got != format.NoDonors {
		t.Fatalf("TopDonorNameAmnt = %q, want placeholder", got)
	}
}

func setTeam(f *fakeFetcher, total float64, count int) {
	f.objects[teamURL] = map[string]any{
		"fundraisingGoal":    1000.0,
		"captainDisplayName": "Cap",
		"sumDonations":       total,
		"numDonations":       float64(count),
	}
}

func TestTeamRefreshGating(t *testing.T) {
	f := newFakeFetcher()
	setTeam(f, 500, 5)
	participantsKey := listKey(teamURL+"/participants", fetch.Options{})
	topKey := listKey(teamURL+"/participants", fetch.Options{Order: fetch.OrderSumDonationsDesc, Limit: 5})
	donationsKey := listKey(teamURL+"/donations", fetch.Options{})
	f.lists[participantsKey] = []map[string]any{{"displayName": "Stef", "sumDonations": 300.0}}
	f.lists[topKey] = []map[string]any{{"displayName": "Stef", "sumDonations": 300.0}}
	f.lists[donationsKey] = []map[string]any{donationJSON("Jane", 25)}

	team := NewTeam(testConfig(true), f, zap.NewNop())
	ctx := context.Background()

	// First cycle: count goes 0 -> 5, views refresh.
	first := team.Run(ctx)
	if len(first.TopParticipants) != 1 || len(first.Donations) != 1 {
		t.Fatalf("first cycle did not refresh views: %+v", first)
	}

	// Count unchanged: no participant/donation re-fetch, lists identical.
	participantCalls := f.calls[participantsKey]
	donationCalls := f.calls[donationsKey]
	second := team.Run(ctx)
	if f.calls[participantsKey] != participantCalls {
		t.Fatal("team participants re-fetched with an unchanged count")
	}
	if f.calls[donationsKey] != donationCalls {
		t.Fatal("team donations re-fetched with an unchanged count")
	}
	if !reflect.DeepEqual(first.Participants, second.Participants) {
		t.Fatal("participant list changed with an unchanged count")
	}
	if !reflect.DeepEqual(first.Donations, second.Donations) {
		t.Fatal("donation list changed with an unchanged count")
	}

	// Count increases: views refresh again.
	setTeam(f, 525, 6)
	f.lists[donationsKey] = []map[string]any{donationJSON("New", 25), donationJSON("Jane", 25)}
	third := team.Run(ctx)
	if len(third.Donations) != 2 {
		t.Fatalf("third cycle did not refresh donations: %+v", third.Donations)
	}
}

func TestTeamScalarsRefreshUnconditionally(t *testing.T) {
	f := newFakeFetcher()
	setTeam(f, 500, 5)

	team := NewTeam(testConfig(true), f, zap.NewNop())
	ctx := context.Background()
	team.Run(ctx)

	badgesKey := listKey(teamURL+"/badges", fetch.Options{})
	badgeCalls := f.calls[badgesKey]
	setTeam(f, 600, 5) // total moved, count didn't
	second := team.Run(ctx)

	if f.calls[badgesKey] != badgeCalls+1 {
		t.Fatal("team badges did not refresh on the second cycle")
	}
	if got := second.Outputs.Totals["Team_totalRaised"]; got != "$600.00" {
		t.Fatalf("Team_totalRaised = %q, want $600.00", got)
	}
}

func TestParticipantRunsOwnedTeam(t *testing.T) {
	f := newFakeFetcher()
	setParticipant(f, 0, 0)
	setTeam(f, 500, 5)

	p := NewParticipant(testConfig(true), f, zap.NewNop())
	if p.Team() == nil {
		t.Fatal("configured team was not created")
	}
	p.Run(context.Background())

	teamState := p.Team().State()
	if got := teamState.Outputs.Totals["Team_captain"]; got != "Cap" {
		t.Fatalf("Team_captain = %q, want Cap", got)
	}
}

func TestNoTeamWithoutID(t *testing.T) {
	p := NewParticipant(testConfig(false), newFakeFetcher(), zap.NewNop())
	if p.Team() != nil {
		t.Fatal("team created without a team ID")
	}
}
