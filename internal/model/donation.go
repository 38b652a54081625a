package model

import "github.com/shopspring/decimal"

// AnonymousName is substituted when a donation or donor record has no
// display name. Donors can opt out of being named on DonorDrive.
const AnonymousName = "Anonymous"

// Donation is a single donation from the /donations endpoint.
type Donation struct {
	ID             string
	Name           string
	Message        string
	Amount         decimal.NullDecimal
	CreatedDateUTC string
	AvatarImageURL string
	Recurring      bool
}

// NewDonation builds a Donation from a decoded JSON object.
func NewDonation(data map[string]any) Donation {
	return Donation{
		ID:             str(data, "donationID"),
		Name:           strDefault(data, "displayName", AnonymousName),
		Message:        str(data, "message"),
		Amount:         money(data, "amount"),
		CreatedDateUTC: str(data, "createdDateUTC"),
		AvatarImageURL: str(data, "avatarImageURL"),
		Recurring:      boolean(data, "isFromRecurringDonation"),
	}
}

func (d Donation) EntryName() string { return d.Name }

func (d Donation) EntryAmount() (decimal.Decimal, bool) { return d.Amount.Decimal, d.Amount.Valid }

func (d Donation) EntryMessage() string { return d.Message }

// Donor is a cumulative donor record from the /donors endpoint.
type Donor struct {
	Name           string
	Amount         decimal.NullDecimal
	AvatarImageURL string
}

// NewDonor builds a Donor from a decoded JSON object.
func NewDonor(data map[string]any) Donor {
	return Donor{
		Name:           strDefault(data, "displayName", AnonymousName),
		Amount:         money(data, "sumDonations"),
		AvatarImageURL: str(data, "avatarImageURL"),
	}
}

func (d Donor) EntryName() string { return d.Name }

func (d Donor) EntryAmount() (decimal.Decimal, bool) { return d.Amount.Decimal, d.Amount.Valid }

func (d Donor) EntryMessage() string { return "" }
