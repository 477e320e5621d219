// services/lessons.go
package services

import (
	"context"
	"sync"

	"leeterboard-client/models"
)

// LessonAPI is the slice of the backend client the lesson tracker needs.
type LessonAPI interface {
	GetLessons(ctx context.Context, userID string) (*models.LessonTrack, error)
	CompleteLesson(ctx context.Context, userID, lessonID string) (*models.LessonTrack, error)
	SetSkillLevel(ctx context.Context, userID string, level models.SkillLevel) (*models.User, error)
}

// LessonTracker holds one lessons screen's track. The track is server
// authoritative: loading, completing a lesson and switching skill level all
// replace it wholesale.
type LessonTracker struct {
	mu sync.Mutex

	api    LessonAPI
	userID string
	track  *models.LessonTrack
}

func NewLessonTracker(api LessonAPI, userID string) *LessonTracker {
	return &LessonTracker{api: api, userID: userID}
}

func (t *LessonTracker) Load(ctx context.Context) error {
	track, err := t.api.GetLessons(ctx, t.userID)
	if err != nil {
		return err
	}
	t.setTrack(track)
	return nil
}

// Complete marks a lesson done on the backend and swaps in the fresh track.
// Locked and already-done lessons are rejected locally.
func (t *LessonTracker) Complete(ctx context.Context, lessonID string) error {
	t.mu.Lock()
	lesson := findLesson(t.track, lessonID)
	if lesson == nil || lesson.Status != models.LessonCurrent {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	track, err := t.api.CompleteLesson(ctx, t.userID, lessonID)
	if err != nil {
		return err
	}
	t.setTrack(track)
	return nil
}

// SetSkillLevel switches tracks, then reloads the lesson list for the new
// level.
func (t *LessonTracker) SetSkillLevel(ctx context.Context, level models.SkillLevel) error {
	if _, err := t.api.SetSkillLevel(ctx, t.userID, level); err != nil {
		return err
	}
	return t.Load(ctx)
}

func (t *LessonTracker) Track() *models.LessonTrack {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.track == nil {
		return nil
	}
	copied := *t.track
	copied.Lessons = append([]models.Lesson(nil), t.track.Lessons...)
	return &copied
}

func (t *LessonTracker) setTrack(track *models.LessonTrack) {
	t.mu.Lock()
	t.track = track
	t.mu.Unlock()
}

func findLesson(track *models.LessonTrack, lessonID string) *models.Lesson {
	if track == nil {
		return nil
	}
	for i := range track.Lessons {
		if track.Lessons[i].ID == lessonID {
			return &track.Lessons[i]
		}
	}
	return nil
}

// CurrentLesson is the lesson the user should do next, nil when the track is
// finished or empty.
func CurrentLesson(track *models.LessonTrack) *models.Lesson {
	if track == nil {
		return nil
	}
	for i := range track.Lessons {
		if track.Lessons[i].Status == models.LessonCurrent {
			return &track.Lessons[i]
		}
	}
	return nil
}

// CompletedLessonCount counts done lessons in a track.
func CompletedLessonCount(track *models.LessonTrack) int {
	if track == nil {
		return 0
	}
	done := 0
	for _, lesson := range track.Lessons {
		if lesson.Status == models.LessonDone {
			done++
		}
	}
	return done
}
