// Package availability models a tutor's weekly recurring availability.
// The flat wire representation (day / start / end records, possibly
// spanning several clock hours) is projected onto a fixed catalogue of
// one-hour slots: a boolean grid for editing and a day-to-label list
// for read-only display. Flattening the grid back always emits one
// unit-hour record per selected slot and never merges contiguous
// hours; downstream consumers depend on unit-hour granularity.
package availability

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"tutorhub-service/internal/models"
)

type HourSlot struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type Section struct {
	Name  string     `json:"name"`
	Slots []HourSlot `json:"slots"`
}

// Catalogue is the full set of selectable hour slots: 08:00-22:00 in
// three sections, with the 12-13 and 17-18 gaps excluded. Hours
// outside the catalogue are silently dropped during grid construction.
var Catalogue = []HourSlot{
	{Label: "8-9", Start: 8, End: 9},
	{Label: "9-10", Start: 9, End: 10},
	{Label: "10-11", Start: 10, End: 11},
	{Label: "11-12", Start: 11, End: 12},
	{Label: "13-14", Start: 13, End: 14},
	{Label: "14-15", Start: 14, End: 15},
	{Label: "15-16", Start: 15, End: 16},
	{Label: "16-17", Start: 16, End: 17},
	{Label: "18-19", Start: 18, End: 19},
	{Label: "19-20", Start: 19, End: 20},
	{Label: "20-21", Start: 20, End: 21},
	{Label: "21-22", Start: 21, End: 22},
}

var Sections = []Section{
	{Name: "morning", Slots: Catalogue[0:4]},
	{Name: "afternoon", Slots: Catalogue[4:8]},
	{Name: "evening", Slots: Catalogue[8:12]},
}

// DayNames indexes day-of-week 0..6, Sunday first.
var DayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var labelIndex = make(map[string]int, len(Catalogue))

func init() {
	for i, slot := range Catalogue {
		labelIndex[slot.Label] = i
	}
}

func DayIndex(name string) (int, bool) {
	for i, day := range DayNames {
		if day == name {
			return i, true
		}
	}
	return 0, false
}

// Grid is the editing projection: one boolean per (day, catalogue slot).
type Grid struct {
	selected [7][12]bool
}

func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) Select(day int, label string) bool {
	idx, ok := labelIndex[label]
	if !ok || day < 0 || day > 6 {
		return false
	}
	g.selected[day][idx] = true
	return true
}

func (g *Grid) IsSelected(day int, label string) bool {
	idx, ok := labelIndex[label]
	if !ok || day < 0 || day > 6 {
		return false
	}
	return g.selected[day][idx]
}

// GridFromWire builds the editing grid from raw availability records.
// Malformed records are skipped with a warning and never abort the
// rest of the list.
func GridFromWire(records []map[string]any, log *slog.Logger) *Grid {
	g := NewGrid()

	for _, rec := range records {
		day, startHour, endHour, ok := resolveSpan(rec, log)
		if !ok {
			continue
		}
		g.markRange(day, startHour, endHour)
	}

	return g
}

// GridFromSelection builds the grid from the day-name keyed label
// lists submitted by the edit form.
func GridFromSelection(selection map[string][]string, log *slog.Logger) *Grid {
	g := NewGrid()

	for dayName, labels := range selection {
		day, ok := DayIndex(dayName)
		if !ok {
			log.Warn("Skipping availability selection for unknown day", slog.String("day", dayName))
			continue
		}
		for _, label := range labels {
			if !g.Select(day, label) {
				log.Warn("Skipping hour label outside the catalogue", slog.String("label", label))
			}
		}
	}

	return g
}

// Flatten serializes the grid for submission: one unit-hour record per
// selected slot, in catalogue order per day. Contiguous hours are
// deliberately not merged.
func (g *Grid) Flatten(tutoringID string) []models.AvailableTimeSlot {
	var slots []models.AvailableTimeSlot

	for day := 0; day < 7; day++ {
		for i, slot := range Catalogue {
			if !g.selected[day][i] {
				continue
			}
			slots = append(slots, models.AvailableTimeSlot{
				TutoringID: tutoringID,
				DayOfWeek:  day,
				StartTime:  fmt.Sprintf("%d:00", slot.Start),
				EndTime:    fmt.Sprintf("%d:00", slot.End),
			})
		}
	}

	return slots
}

// Selection is the inverse of GridFromSelection, used to prefill the
// edit form.
func (g *Grid) Selection() map[string][]string {
	selection := make(map[string][]string, len(DayNames))

	for day, name := range DayNames {
		labels := []string{}
		for i, slot := range Catalogue {
			if g.selected[day][i] {
				labels = append(labels, slot.Label)
			}
		}
		selection[name] = labels
	}

	return selection
}

// ScheduleFromWire aggregates raw availability records into the
// read-only display projection: every day name mapped to its sorted
// hour labels. Resolution and rounding rules match GridFromWire.
func ScheduleFromWire(records []map[string]any, log *slog.Logger) map[string][]string {
	hours := make(map[string]map[int]bool, len(DayNames))
	for _, name := range DayNames {
		hours[name] = make(map[int]bool)
	}

	for _, rec := range records {
		day, startHour, endHour, ok := resolveSpan(rec, log)
		if !ok {
			continue
		}
		for _, slot := range Catalogue {
			if slot.Start >= startHour && slot.End <= endHour {
				hours[DayNames[day]][slot.Start] = true
			}
		}
	}

	schedule := make(map[string][]string, len(DayNames))
	for _, name := range DayNames {
		starts := make([]int, 0, len(hours[name]))
		for h := range hours[name] {
			starts = append(starts, h)
		}
		sort.Ints(starts)

		labels := make([]string, 0, len(starts))
		for _, h := range starts {
			labels = append(labels, fmt.Sprintf("%d-%d", h, h+1))
		}
		schedule[name] = labels
	}

	return schedule
}

func (g *Grid) markRange(day, startHour, endHour int) {
	for i, slot := range Catalogue {
		if slot.Start >= startHour && slot.End <= endHour {
			g.selected[day][i] = true
		}
	}
}

// resolveSpan extracts (day, startHour, endHour) from a raw record,
// accepting either key casing, numeric or numeric-string days, and
// H:MM/HH:MM times. An end time with a nonzero minute component is
// treated as inclusive of the partial hour.
func resolveSpan(rec map[string]any, log *slog.Logger) (day, startHour, endHour int, ok bool) {
	day, ok = resolveDay(rec)
	if !ok {
		log.Warn("Skipping availability record with invalid day of week", slog.Any("day_of_week", rawField(rec, "dayOfWeek", "day_of_week")))
		return 0, 0, 0, false
	}

	startHour, _, ok = resolveClock(rec, "startTime", "start_time")
	if !ok {
		log.Warn("Skipping availability record with missing start time", slog.Int("day_of_week", day))
		return 0, 0, 0, false
	}

	endHour, endMinute, ok := resolveClock(rec, "endTime", "end_time")
	if !ok {
		log.Warn("Skipping availability record with missing end time", slog.Int("day_of_week", day))
		return 0, 0, 0, false
	}

	if endMinute > 0 {
		endHour++
	}

	return day, startHour, endHour, true
}

func resolveDay(rec map[string]any) (int, bool) {
	switch v := rawField(rec, "dayOfWeek", "day_of_week").(type) {
	case float64:
		day := int(v)
		return day, day >= 0 && day <= 6
	case int:
		return v, v >= 0 && v <= 6
	case string:
		day, err := strconv.Atoi(v)
		return day, err == nil && day >= 0 && day <= 6
	}
	return 0, false
}

func resolveClock(rec map[string]any, camel, snake string) (hour, minute int, ok bool) {
	s, ok := rawField(rec, camel, snake).(string)
	if !ok {
		return 0, 0, false
	}

	parts := strings.Split(s, ":")
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}

	if len(parts) > 1 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return 0, 0, false
		}
	}

	return hour, minute, true
}

func rawField(rec map[string]any, camel, snake string) any {
	if v, ok := rec[camel]; ok && v != nil {
		return v
	}
	return rec[snake]
}
