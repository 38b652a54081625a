package model

import "github.com/shopspring/decimal"

// Milestone is a fundraising-goal threshold configured by the participant.
// Not every DonorDrive instance exposes milestones.
type Milestone struct {
	ID              string
	Description     string
	FundraisingGoal decimal.NullDecimal
	IsActive        bool
	IsComplete      bool
	Links           map[string]any
	StartDateUTC    string
	EndDateUTC      string
}

// NewMilestone builds a Milestone from a decoded JSON object.
func NewMilestone(data map[string]any) Milestone {
	return Milestone{
		ID:              str(data, "milestoneID"),
		Description:     str(data, "description"),
		FundraisingGoal: money(data, "fundraisingGoal"),
		IsActive:        boolean(data, "isActive"),
		IsComplete:      boolean(data, "isComplete"),
		Links:           object(data, "links"),
		StartDateUTC:    str(data, "startDateUTC"),
		EndDateUTC:      str(data, "endDateUTC"),
	}
}

// Incentive is a reward offered at a donation amount threshold.
type Incentive struct {
	ID              string
	Amount          decimal.NullDecimal
	Description     string
	IsActive        bool
	ImageURL        string
	Links           map[string]any
	StartDateUTC    string
	EndDateUTC      string
	Quantity        int
	QuantityClaimed int
}

// NewIncentive builds an Incentive from a decoded JSON object.
func NewIncentive(data map[string]any) Incentive {
	return Incentive{
		ID:              str(data, "incentiveID"),
		Amount:          money(data, "amount"),
		Description:     str(data, "description"),
		IsActive:        boolean(data, "isActive"),
		ImageURL:        str(data, "incentiveImageURL"),
		Links:           object(data, "links"),
		StartDateUTC:    str(data, "startDateUTC"),
		EndDateUTC:      str(data, "endDateUTC"),
		Quantity:        integer(data, "quantity"),
		QuantityClaimed: integer(data, "quantityClaimed"),
	}
}
