package backend

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorhub-service/internal/config"
	"tutorhub-service/pkg/response"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(config.Backend{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
		UploadTimeout:  5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return client, server
}

func TestGetTutoring_NormalizesSnakeCaseResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tutoring-sessions/s1", r.URL.Path)
		w.Write([]byte(`{
			"id": "s1",
			"title": "Algebra",
			"price": 20,
			"tutor_id": "t1",
			"image_url": "http://img",
			"what_they_will_learn": "[\"limits\"]",
			"available_times": [
				{"id": "a1", "day_of_week": 1, "start_time": "14:00", "end_time": "15:00"}
			]
		}`))
	}))

	session, err := client.GetTutoring(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "t1", session.TutorID)
	assert.Equal(t, "http://img", session.ImageURL)
	assert.Equal(t, []string{"limits"}, session.WhatTheyWillLearn)
	require.Len(t, session.AvailableTimes, 1)
	assert.Equal(t, 1, session.AvailableTimes[0].DayOfWeek)
	assert.Equal(t, "14:00", session.AvailableTimes[0].StartTime)
}

func TestCreateTutoring_SendsSnakeCaseBody(t *testing.T) {
	var received map[string]any

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"id": "s1"}`))
	}))

	_, err := client.CreateTutoring(context.Background(), map[string]any{
		"title":             "Algebra",
		"tutorId":           "t1",
		"whatTheyWillLearn": []string{"limits"},
		"availableTimes": []any{
			map[string]any{"dayOfWeek": 1, "startTime": "14:00", "endTime": "15:00"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, received, "tutor_id")
	assert.Contains(t, received, "what_they_will_learn")
	assert.NotContains(t, received, "tutorId")

	times, ok := received["available_times"].([]any)
	require.True(t, ok)
	rec, ok := times[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, rec, "day_of_week")
	assert.Contains(t, rec, "start_time")
}

func TestGetTutoring_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetTutoring(context.Background(), "missing")

	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestListTutorings_UpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListTutorings(context.Background())

	assert.ErrorIs(t, err, response.ErrUpstream)
}

func TestListAvailableTimes_ReturnsCamelizedRawRecords(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tutoring-sessions/s1/available-times", r.URL.Path)
		w.Write([]byte(`[{"day_of_week": "2", "start_time": "9:00", "end_time": "11:00"}]`))
	}))

	records, err := client.ListAvailableTimes(context.Background(), "s1")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "2", records[0]["dayOfWeek"])
	assert.Equal(t, "9:00", records[0]["startTime"])
}

func TestUploadTutoringImage_RejectsBeforeNetwork(t *testing.T) {
	hits := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))

	t.Run("Oversize", func(t *testing.T) {
		_, err := client.UploadTutoringImage(context.Background(), "s1", "a.png", "image/png", MaxUploadSize+1, strings.NewReader("x"))
		assert.ErrorIs(t, err, response.ErrValidation)
	})

	t.Run("BadContentType", func(t *testing.T) {
		_, err := client.UploadTutoringImage(context.Background(), "s1", "a.pdf", "application/pdf", 10, strings.NewReader("x"))
		assert.ErrorIs(t, err, response.ErrValidation)
	})

	assert.Zero(t, hits)
}

func TestUploadTutoringImage_MultipartFields(t *testing.T) {
	var gotTutoringID, gotFileName, gotPart string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(MaxUploadSize))
		gotTutoringID = r.FormValue("tutoringId")
		gotFileName = r.FormValue("fileName")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotPart = header.Filename

		w.WriteHeader(http.StatusCreated)
	}))

	url, err := client.UploadTutoringImage(context.Background(), "s1", "pic.png", "image/png", 4, strings.NewReader("data"))
	require.NoError(t, err)

	assert.Equal(t, "s1", gotTutoringID)
	assert.Equal(t, "pic.png", gotFileName)
	assert.Equal(t, "pic.png", gotPart)
	assert.Equal(t, client.ImageURL("s1", "pic.png"), url)
	assert.Contains(t, url, "/storage/tutoring-images/s1/pic.png")
}

func TestUploadTutoringImage_GeneratesFileName(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	url, err := client.UploadTutoringImage(context.Background(), "s1", "", "image/webp", 4, strings.NewReader("data"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(url, ".webp"))
}
