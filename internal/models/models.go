// Package models holds the domain records and the coercion rules that
// turn loosely-typed backend payloads into fully-defaulted instances.
// Constructors expect camelCase keys (see internal/wire) but still fall
// back to the snake_case key before applying a default.
package models

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

type AvailableTimeSlot struct {
	ID         string `json:"id"`
	TutoringID string `json:"tutoring_id"`
	DayOfWeek  int    `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type TutoringSession struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Price             float64             `json:"price"`
	WhatTheyWillLearn []string            `json:"what_they_will_learn"`
	ImageURL          string              `json:"image_url"`
	TutorID           string              `json:"tutor_id"`
	CourseID          string              `json:"course_id"`
	AvailableTimes    []AvailableTimeSlot `json:"available_times"`
	CreatedAt         string              `json:"created_at,omitempty"`
	UpdatedAt         string              `json:"updated_at,omitempty"`
}

type TutoringReview struct {
	ID         string `json:"id"`
	TutoringID string `json:"tutoring_id"`
	StudentID  string `json:"student_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Student    *User  `json:"student,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type TutoringMaterial struct {
	ID         string `json:"id"`
	TutoringID string `json:"tutoring_id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
}

type Course struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SemesterNumber int    `json:"semester_number"`
}

// Semester is a read-time grouping of courses; it is never persisted
// from this service.
type Semester struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Courses []Course `json:"courses"`
}

type User struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	Status         string `json:"status"`
	SemesterNumber int    `json:"semester_number"`
	AcademicYear   string `json:"academic_year"`
	Avatar         string `json:"avatar,omitempty"`
}

func NewAvailableTimeSlot(raw map[string]any) AvailableTimeSlot {
	return AvailableTimeSlot{
		ID:         stringField(raw, "id", "id", ""),
		TutoringID: stringField(raw, "tutoringId", "tutoring_id", ""),
		DayOfWeek:  intField(raw, "dayOfWeek", "day_of_week", 0),
		StartTime:  stringField(raw, "startTime", "start_time", ""),
		EndTime:    stringField(raw, "endTime", "end_time", ""),
		CreatedAt:  stringField(raw, "createdAt", "created_at", ""),
		UpdatedAt:  stringField(raw, "updatedAt", "updated_at", ""),
	}
}

func NewTutoringSession(raw map[string]any) TutoringSession {
	var slots []AvailableTimeSlot
	if times, ok := listField(raw, "availableTimes", "available_times"); ok {
		slots = make([]AvailableTimeSlot, 0, len(times))
		for _, item := range times {
			if rec, ok := item.(map[string]any); ok {
				slots = append(slots, NewAvailableTimeSlot(rec))
			}
		}
	}

	return TutoringSession{
		ID:                stringField(raw, "id", "id", ""),
		Title:             stringField(raw, "title", "title", ""),
		Description:       stringField(raw, "description", "description", ""),
		Price:             numberField(raw, "price", "price", 0),
		WhatTheyWillLearn: learningPoints(fieldValue(raw, "whatTheyWillLearn", "what_they_will_learn")),
		ImageURL:          stringField(raw, "imageUrl", "image_url", ""),
		TutorID:           stringField(raw, "tutorId", "tutor_id", ""),
		CourseID:          stringField(raw, "courseId", "course_id", ""),
		AvailableTimes:    slots,
		CreatedAt:         stringField(raw, "createdAt", "created_at", ""),
		UpdatedAt:         stringField(raw, "updatedAt", "updated_at", ""),
	}
}

func NewTutoringReview(raw map[string]any) TutoringReview {
	review := TutoringReview{
		ID:         stringField(raw, "id", "id", ""),
		TutoringID: stringField(raw, "tutoringId", "tutoring_id", ""),
		StudentID:  stringField(raw, "studentId", "student_id", ""),
		Rating:     intField(raw, "rating", "rating", 0),
		Comment:    stringField(raw, "comment", "comment", ""),
		CreatedAt:  stringField(raw, "createdAt", "created_at", ""),
	}

	if student, ok := fieldValue(raw, "student", "student").(map[string]any); ok {
		u := NewUser(student)
		review.Student = &u
	}

	return review
}

func NewTutoringMaterial(raw map[string]any) TutoringMaterial {
	return TutoringMaterial{
		ID:         stringField(raw, "id", "id", ""),
		TutoringID: stringField(raw, "tutoringId", "tutoring_id", ""),
		Name:       stringField(raw, "name", "name", ""),
		URL:        stringField(raw, "url", "url", ""),
	}
}

func NewCourse(raw map[string]any) Course {
	return Course{
		ID:             stringField(raw, "id", "id", ""),
		Name:           stringField(raw, "name", "name", ""),
		SemesterNumber: intField(raw, "semesterNumber", "semester_number", 0),
	}
}

func NewUser(raw map[string]any) User {
	return User{
		ID:             stringField(raw, "id", "id", ""),
		FirstName:      stringField(raw, "firstName", "first_name", ""),
		LastName:       stringField(raw, "lastName", "last_name", ""),
		Email:          stringField(raw, "email", "email", ""),
		Role:           Role(stringField(raw, "role", "role", "")),
		Status:         stringField(raw, "status", "status", ""),
		SemesterNumber: intField(raw, "semesterNumber", "semester_number", 1),
		AcademicYear:   stringField(raw, "academicYear", "academic_year", ""),
		Avatar:         stringField(raw, "avatar", "avatar", ""),
	}
}

// learningPoints coerces the three wire shapes the backend is known to
// send: a JSON-encoded string, a nested key-value mapping, or a plain
// list. A string that fails to parse becomes a single-element list.
func learningPoints(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []any:
		points := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := asString(item); ok {
				points = append(points, s)
			}
		}
		return points
	case []string:
		return val
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		points := make([]string, 0, len(keys))
		for _, k := range keys {
			if s, ok := asString(val[k]); ok {
				points = append(points, s)
			}
		}
		return points
	case string:
		var parsed []any
		if err := json.Unmarshal([]byte(val), &parsed); err != nil {
			return []string{val}
		}
		points := make([]string, 0, len(parsed))
		for _, item := range parsed {
			if s, ok := asString(item); ok {
				points = append(points, s)
			}
		}
		return points
	default:
		return []string{}
	}
}

// fieldValue resolves a field by its camelCase key first, then the
// snake_case key. This priority matches the mixed-shape responses the
// backend produces and must not change.
func fieldValue(raw map[string]any, camel, snake string) any {
	if v, ok := raw[camel]; ok && v != nil {
		return v
	}
	if v, ok := raw[snake]; ok && v != nil {
		return v
	}
	return nil
}

func listField(raw map[string]any, camel, snake string) ([]any, bool) {
	items, ok := fieldValue(raw, camel, snake).([]any)
	return items, ok
}

func stringField(raw map[string]any, camel, snake, def string) string {
	if s, ok := asString(fieldValue(raw, camel, snake)); ok {
		return s
	}
	return def
}

func numberField(raw map[string]any, camel, snake string, def float64) float64 {
	switch n := fieldValue(raw, camel, snake).(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return def
}

func intField(raw map[string]any, camel, snake string, def int) int {
	switch n := fieldValue(raw, camel, snake).(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return def
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatInt(int64(s), 10), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	}
	return "", false
}
