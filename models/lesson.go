package models

// LessonStatus is where a lesson sits in the user's track.
type LessonStatus string

const (
	LessonDone    LessonStatus = "done"
	LessonCurrent LessonStatus = "current"
	LessonLocked  LessonStatus = "locked"
)

// LessonType distinguishes plain lessons from checkpoints and projects.
type LessonType string

const (
	LessonTypeLesson     LessonType = "lesson"
	LessonTypeCheckpoint LessonType = "checkpoint"
	LessonTypeProject    LessonType = "project"
)

type Lesson struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Duration string       `json:"duration"`
	Points   int          `json:"points"`
	Focus    string       `json:"focus"`
	Icon     string       `json:"icon"`
	URL      string       `json:"url,omitempty"`
	Status   LessonStatus `json:"status"`
	Type     LessonType   `json:"type,omitempty"`
}

// LessonTrack is the backend-assembled curriculum for one skill level,
// including the viewer's progress through it. The track is server
// authoritative; completing a lesson returns a fresh track.
type LessonTrack struct {
	SkillLevel    SkillLevel `json:"skillLevel"`
	Lessons       []Lesson   `json:"lessons"`
	Points        int        `json:"points"`
	PointsAwarded int        `json:"pointsAwarded"`
}
