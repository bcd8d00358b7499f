package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTutoringSession_LearningPoints(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected []string
	}{
		{
			name:     "JSONEncodedString",
			raw:      map[string]any{"whatTheyWillLearn": `["a","b"]`},
			expected: []string{"a", "b"},
		},
		{
			name:     "UnparsableStringWrapped",
			raw:      map[string]any{"whatTheyWillLearn": "not json"},
			expected: []string{"not json"},
		},
		{
			name:     "MissingDefaultsToEmpty",
			raw:      map[string]any{},
			expected: []string{},
		},
		{
			name:     "PlainList",
			raw:      map[string]any{"whatTheyWillLearn": []any{"x", "y"}},
			expected: []string{"x", "y"},
		},
		{
			name:     "NestedMappingValuesExtracted",
			raw:      map[string]any{"whatTheyWillLearn": map[string]any{"0": "first", "1": "second"}},
			expected: []string{"first", "second"},
		},
		{
			name:     "SnakeCaseFallback",
			raw:      map[string]any{"what_they_will_learn": []any{"z"}},
			expected: []string{"z"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NewTutoringSession(tc.raw).WhatTheyWillLearn)
		})
	}
}

func TestNewTutoringSession_Defaults(t *testing.T) {
	session := NewTutoringSession(map[string]any{})

	assert.Equal(t, "", session.Title)
	assert.Equal(t, "", session.Description)
	assert.Equal(t, float64(0), session.Price)
	assert.Equal(t, "", session.TutorID)
	assert.Empty(t, session.AvailableTimes)
}

func TestNewTutoringSession_CamelBeforeSnake(t *testing.T) {
	session := NewTutoringSession(map[string]any{
		"tutorId":  "camel",
		"tutor_id": "snake",
		"price":    "25.5",
	})

	assert.Equal(t, "camel", session.TutorID)
	assert.Equal(t, 25.5, session.Price)
}

func TestNewTutoringSession_NumericIDCoerced(t *testing.T) {
	session := NewTutoringSession(map[string]any{"id": 42.0, "courseId": 7.0})

	assert.Equal(t, "42", session.ID)
	assert.Equal(t, "7", session.CourseID)
}

func TestNewUser_Defaults(t *testing.T) {
	user := NewUser(map[string]any{})

	assert.Equal(t, 1, user.SemesterNumber)
	assert.Equal(t, "", user.FirstName)
	assert.Equal(t, Role(""), user.Role)
}

func TestNewTutoringReview_NestedStudent(t *testing.T) {
	review := NewTutoringReview(map[string]any{
		"id":         "r1",
		"tutoringId": "s1",
		"student_id": "u1",
		"rating":     5.0,
		"comment":    "great explanations",
		"student":    map[string]any{"id": "u1", "firstName": "Ada"},
	})

	assert.Equal(t, "u1", review.StudentID)
	assert.Equal(t, 5, review.Rating)
	if assert.NotNil(t, review.Student) {
		assert.Equal(t, "Ada", review.Student.FirstName)
	}
}

func TestNewAvailableTimeSlot_StringDay(t *testing.T) {
	slot := NewAvailableTimeSlot(map[string]any{
		"day_of_week": "3",
		"start_time":  "14:00",
		"end_time":    "15:00",
	})

	assert.Equal(t, 3, slot.DayOfWeek)
	assert.Equal(t, "14:00", slot.StartTime)
}

func TestNewCourse(t *testing.T) {
	course := NewCourse(map[string]any{"id": "c1", "name": "Calculus", "semester_number": 2.0})

	assert.Equal(t, Course{ID: "c1", Name: "Calculus", SemesterNumber: 2}, course)
}
