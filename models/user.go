package models

// SkillLevel picks which lesson track a user is shown.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// User mirrors the backend user document. Every successful mutation on the
// backend returns the whole updated user, and callers replace their local
// copy with it rather than merging field by field.
type User struct {
	MongoID          string          `json:"_id,omitempty"`
	ID               string          `json:"id,omitempty"`
	Username         string          `json:"username,omitempty"`
	Email            string          `json:"email,omitempty"`
	Points           int             `json:"points"`
	StreakSaves      int             `json:"streakSaves"`
	LcUsername       *string         `json:"lcUsername,omitempty"`
	LeetcodeProfile  map[string]any  `json:"leetcodeProfile,omitempty"`
	Avatar           *string         `json:"avatar,omitempty"`
	RoomItems        []RoomItemState `json:"roomItems,omitempty"`
	SkillLevel       *SkillLevel     `json:"skillLevel,omitempty"`
	CompletedLessons []string        `json:"completedLessons,omitempty"`
}

// Key returns whichever id the backend populated. Registration responses use
// the Mongo alias, everything else the plain id.
func (u User) Key() string {
	if u.MongoID != "" {
		return u.MongoID
	}
	return u.ID
}

// DisplayName falls back to the linked LeetCode handle, then a placeholder.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.LcUsername != nil && *u.LcUsername != "" {
		return *u.LcUsername
	}
	return "Player"
}
