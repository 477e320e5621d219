package services

import (
	"context"
	"sync"
	"testing"

	"leeterboard-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLessonAPI struct {
	mu            sync.Mutex
	track         *models.LessonTrack
	completeCalls int
	skillCalls    []models.SkillLevel
}

func (f *fakeLessonAPI) GetLessons(_ context.Context, _ string) (*models.LessonTrack, error) {
	return f.track, nil
}

func (f *fakeLessonAPI) CompleteLesson(_ context.Context, _, lessonID string) (*models.LessonTrack, error) {
	f.mu.Lock()
	f.completeCalls++
	f.mu.Unlock()
	fresh := *f.track
	fresh.Lessons = append([]models.Lesson(nil), f.track.Lessons...)
	for i := range fresh.Lessons {
		if fresh.Lessons[i].ID == lessonID {
			fresh.Lessons[i].Status = models.LessonDone
			if i+1 < len(fresh.Lessons) {
				fresh.Lessons[i+1].Status = models.LessonCurrent
			}
		}
	}
	fresh.PointsAwarded = 40
	return &fresh, nil
}

func (f *fakeLessonAPI) SetSkillLevel(_ context.Context, _ string, level models.SkillLevel) (*models.User, error) {
	f.mu.Lock()
	f.skillCalls = append(f.skillCalls, level)
	f.mu.Unlock()
	f.track = &models.LessonTrack{SkillLevel: level, Lessons: f.track.Lessons}
	return &models.User{ID: "ada"}, nil
}

func beginnerTrack() *models.LessonTrack {
	return &models.LessonTrack{
		SkillLevel: models.SkillBeginner,
		Lessons: []models.Lesson{
			{ID: "arrays-101", Title: "Arrays", Status: models.LessonDone},
			{ID: "two-pointers", Title: "Two Pointers", Status: models.LessonCurrent},
			{ID: "sliding-window", Title: "Sliding Window", Status: models.LessonLocked},
		},
	}
}

func TestLessonTrackerCompleteAdvancesTrack(t *testing.T) {
	api := &fakeLessonAPI{track: beginnerTrack()}
	tracker := NewLessonTracker(api, "ada")
	require.NoError(t, tracker.Load(context.Background()))

	require.NoError(t, tracker.Complete(context.Background(), "two-pointers"))
	assert.Equal(t, 1, api.completeCalls)

	track := tracker.Track()
	require.NotNil(t, track)
	assert.Equal(t, models.LessonDone, track.Lessons[1].Status)
	assert.Equal(t, models.LessonCurrent, track.Lessons[2].Status)
	assert.Equal(t, 40, track.PointsAwarded)
}

func TestLessonTrackerRejectsLockedAndDoneLocally(t *testing.T) {
	api := &fakeLessonAPI{track: beginnerTrack()}
	tracker := NewLessonTracker(api, "ada")
	require.NoError(t, tracker.Load(context.Background()))

	require.NoError(t, tracker.Complete(context.Background(), "sliding-window"))
	require.NoError(t, tracker.Complete(context.Background(), "arrays-101"))
	require.NoError(t, tracker.Complete(context.Background(), "no-such-lesson"))
	assert.Zero(t, api.completeCalls, "only the current lesson can be completed")
}

func TestLessonTrackerSetSkillLevelReloads(t *testing.T) {
	api := &fakeLessonAPI{track: beginnerTrack()}
	tracker := NewLessonTracker(api, "ada")
	require.NoError(t, tracker.Load(context.Background()))

	require.NoError(t, tracker.SetSkillLevel(context.Background(), models.SkillAdvanced))
	assert.Equal(t, []models.SkillLevel{models.SkillAdvanced}, api.skillCalls)

	track := tracker.Track()
	require.NotNil(t, track)
	assert.Equal(t, models.SkillAdvanced, track.SkillLevel)
}

func TestCurrentLessonAndCompletedCount(t *testing.T) {
	track := beginnerTrack()
	current := CurrentLesson(track)
	require.NotNil(t, current)
	assert.Equal(t, "two-pointers", current.ID)
	assert.Equal(t, 1, CompletedLessonCount(track))

	assert.Nil(t, CurrentLesson(nil))
	assert.Zero(t, CompletedLessonCount(nil))

	finished := &models.LessonTrack{Lessons: []models.Lesson{{ID: "a", Status: models.LessonDone}}}
	assert.Nil(t, CurrentLesson(finished))
}

func TestTrackReturnsACopy(t *testing.T) {
	api := &fakeLessonAPI{track: beginnerTrack()}
	tracker := NewLessonTracker(api, "ada")
	require.NoError(t, tracker.Load(context.Background()))

	copied := tracker.Track()
	copied.Lessons[0].Status = models.LessonLocked

	assert.Equal(t, models.LessonDone, tracker.Track().Lessons[0].Status)
}
