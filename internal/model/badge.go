package model

// Badge is an achievement earned by a participant or team.
type Badge struct {
	Title           string
	BadgeImageURL   string
	UnlockedDateUTC string
}

// NewBadge builds a Badge from a decoded JSON object.
func NewBadge(data map[string]any) Badge {
	return Badge{
		Title:           str(data, "title"),
		BadgeImageURL:   str(data, "badgeImageURL"),
		UnlockedDateUTC: str(data, "unlockedDateUTC"),
	}
}
