package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ActivityKind tags the variant of an Activity record.
type ActivityKind int

const (
	ActivityGeneric ActivityKind = iota
	ActivityDonation
	ActivityParticipantBadge
	ActivityTeamBadge
)

// Activity feed entry type tags as they appear on the wire.
const (
	activityTypeDonation         = "donation"
	activityTypeParticipantBadge = "participantBadge"
	activityTypeTeamBadge        = "teamBadge"
)

// Activity is one entry from the /activity endpoint. The endpoint mixes
// donation, badge, and other events in one feed, so Activity is a tagged
// union: Kind selects the variant, and the variant-specific fields are
// zero-valued for the other kinds.
type Activity struct {
	Kind           ActivityKind
	Type           string
	CreatedDateUTC string
	ImageURL       string

	// Donation variant.
	Amount      decimal.NullDecimal
	IsIncentive bool

	// Donation and badge variants.
	Message string
	Title   string
}

// NewActivity builds an Activity from a decoded JSON object, dispatching
// on the type tag. Unrecognized tags produce a Generic activity.
func NewActivity(data map[string]any) Activity {
	a := Activity{
		Type:           str(data, "type"),
		CreatedDateUTC: str(data, "createdDateUTC"),
		ImageURL:       str(data, "imageURL"),
	}
	switch a.Type {
	case activityTypeDonation:
		a.Kind = ActivityDonation
		a.Amount = money(data, "amount")
		a.IsIncentive = boolean(data, "isIncentive")
		a.Message = str(data, "message")
		a.Title = str(data, "title")
	case activityTypeParticipantBadge:
		a.Kind = ActivityParticipantBadge
		a.Message = str(data, "message")
		a.Title = str(data, "title")
	case activityTypeTeamBadge:
		a.Kind = ActivityTeamBadge
		a.Message = str(data, "message")
		a.Title = str(data, "title")
	default:
		a.Kind = ActivityGeneric
	}
	return a
}

// String renders a one-line description of the activity for feed display.
func (a Activity) String() string {
	switch a.Kind {
	case ActivityDonation:
		amt := a.Amount.Decimal.StringFixed(2)
		if a.IsIncentive {
			return fmt.Sprintf("Incentive reached: %s with %s donation of $%s.", a.Message, a.Title, amt)
		}
		return fmt.Sprintf("%s donation in the amount of $%s.", a.Title, amt)
	case ActivityParticipantBadge, ActivityTeamBadge:
		return fmt.Sprintf("%s: %q badge earned!", a.Message, a.Title)
	default:
		return fmt.Sprintf("%s activity.", a.Type)
	}
}
