package api

import "strings"

// Request DTOs for the browser-facing API. Validate methods implement
// the pre-network checks: a non-empty result means the request never
// reaches the backend.

type TutoringCreateRequest struct {
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Price             float64             `json:"price"`
	WhatTheyWillLearn []string            `json:"what_they_will_learn"`
	CourseID          string              `json:"course_id"`
	Availability      map[string][]string `json:"availability"`
}

func (r *TutoringCreateRequest) Validate() map[string]string {
	problems := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		problems["title"] = "title is required"
	}
	if r.Price < 0 {
		problems["price"] = "price must not be negative"
	}

	return problems
}

type TutoringUpdateRequest struct {
	Description       string              `json:"description"`
	Price             float64             `json:"price"`
	WhatTheyWillLearn []string            `json:"what_they_will_learn"`
	Availability      map[string][]string `json:"availability"`
}

func (r *TutoringUpdateRequest) Validate() map[string]string {
	problems := make(map[string]string)

	if r.Price < 0 {
		problems["price"] = "price must not be negative"
	}

	return problems
}

type ReviewCreateRequest struct {
	TutoringID string `json:"tutoring_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (r *ReviewCreateRequest) Validate() map[string]string {
	problems := make(map[string]string)

	if r.TutoringID == "" {
		problems["tutoring_id"] = "tutoring_id is required"
	}
	validateReviewFields(r.Rating, r.Comment, problems)

	return problems
}

type ReviewUpdateRequest struct {
	TutoringID string `json:"tutoring_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (r *ReviewUpdateRequest) Validate() map[string]string {
	problems := make(map[string]string)

	if r.TutoringID == "" {
		problems["tutoring_id"] = "tutoring_id is required"
	}
	validateReviewFields(r.Rating, r.Comment, problems)

	return problems
}

func validateReviewFields(rating int, comment string, problems map[string]string) {
	if rating < 1 || rating > 5 {
		problems["rating"] = "rating must be between 1 and 5"
	}
	if len(strings.TrimSpace(comment)) < 10 {
		problems["comment"] = "comment must be at least 10 characters"
	}
}

type SessionRequest struct {
	UserID string `json:"user_id"`
}
