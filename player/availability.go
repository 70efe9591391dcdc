package player

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var (
	ErrInvalidSchedule   = errors.New(`invalid schedule format, try "19:00-22:00, Mon-Fri"`)
	ErrPlayerUnavailable = errors.New("player is unavailable for games right now")
)

// Schedule restricts when a player may be pulled into a match.
type Schedule struct {
	Windows []Window `json:"windows"`
}

// Window is a daily time range on a set of weekdays (Monday = 1).
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  []int  `json:"days"`
}

// Availability stores the per-player opt-in flag and optional schedule.
type Availability struct {
	rdclient *redis.Client
}

func NewAvailability(rdclient *redis.Client) *Availability {
	return &Availability{rdclient: rdclient}
}

// Toggle flips the player's availability flag and returns the new value.
// Players are unavailable until they opt in.
func (a *Availability) Toggle(ctx context.Context, phone string) (bool, error) {
	current, err := a.rdclient.Get(ctx, availabilityKey(phone)).Result()
	if err != nil && err != redis.Nil {
		return false, errors.Wrap(err, "Unable to read availability")
	}
	newState := !(strings.ToLower(current) == "true")
	err = a.rdclient.Set(ctx, availabilityKey(phone), strconv.FormatBool(newState), 0).Err()
	if err != nil {
		return false, errors.Wrap(err, "Unable to store availability")
	}
	return newState, nil
}

// SetSchedule parses and stores a schedule string such as
// "19:00-22:00, Mon-Fri".
func (a *Availability) SetSchedule(ctx context.Context, phone string, scheduleStr string) (*Schedule, error) {
	schedule, err := ParseSchedule(scheduleStr)
	if err != nil {
		return nil, err
	}
	scheduleBytes, err := jsoniter.Marshal(schedule)
	if err != nil {
		return nil, err
	}
	err = a.rdclient.Set(ctx, scheduleKey(phone), scheduleBytes, 0).Err()
	if err != nil {
		return nil, errors.Wrap(err, "Unable to store schedule")
	}
	return schedule, nil
}

// IsAvailable reports whether the player has opted in and, if a schedule is
// set, whether now falls inside one of its windows.
func (a *Availability) IsAvailable(ctx context.Context, phone string, now time.Time) bool {
	flag, err := a.rdclient.Get(ctx, availabilityKey(phone)).Result()
	if err != nil || strings.ToLower(flag) != "true" {
		return false
	}
	scheduleBytes, err := a.rdclient.Get(ctx, scheduleKey(phone)).Result()
	if err != nil {
		// No schedule set: available whenever the flag is on.
		return true
	}
	var schedule Schedule
	if err := jsoniter.Unmarshal([]byte(scheduleBytes), &schedule); err != nil {
		return true
	}
	return schedule.Covers(now)
}

// Covers reports whether now falls inside any window of the schedule.
func (s *Schedule) Covers(now time.Time) bool {
	for _, window := range s.Windows {
		if window.covers(now) {
			return true
		}
	}
	return false
}

func (w Window) covers(now time.Time) bool {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	dayMatch := false
	for _, day := range w.Days {
		if day == weekday {
			dayMatch = true
			break
		}
	}
	if !dayMatch {
		return false
	}
	start, err1 := minutesOfDay(w.Start)
	end, err2 := minutesOfDay(w.End)
	if err1 != nil || err2 != nil {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	return start <= current && current <= end
}

// ParseSchedule parses the user-facing schedule shorthand: a time range,
// a comma, then a day range ("Mon-Fri") or a single day.
func ParseSchedule(scheduleStr string) (*Schedule, error) {
	parts := strings.SplitN(scheduleStr, ",", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidSchedule
	}
	times := strings.Split(strings.TrimSpace(parts[0]), "-")
	if len(times) != 2 {
		return nil, ErrInvalidSchedule
	}
	start := strings.TrimSpace(times[0])
	end := strings.TrimSpace(times[1])
	if _, err := minutesOfDay(start); err != nil {
		return nil, ErrInvalidSchedule
	}
	if _, err := minutesOfDay(end); err != nil {
		return nil, ErrInvalidSchedule
	}

	days, err := parseDays(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	return &Schedule{
		Windows: []Window{
			{Start: start, End: end, Days: days},
		},
	}, nil
}

var dayNameToNum = map[string]int{
	"Mon": 1, "Tue": 2, "Wed": 3, "Thu": 4, "Fri": 5, "Sat": 6, "Sun": 7,
}

func parseDays(daysStr string) ([]int, error) {
	bounds := strings.Split(daysStr, "-")
	switch len(bounds) {
	case 1:
		day, ok := dayNameToNum[strings.TrimSpace(bounds[0])]
		if !ok {
			return nil, ErrInvalidSchedule
		}
		return []int{day}, nil
	case 2:
		first, ok1 := dayNameToNum[strings.TrimSpace(bounds[0])]
		last, ok2 := dayNameToNum[strings.TrimSpace(bounds[1])]
		if !ok1 || !ok2 || last < first {
			return nil, ErrInvalidSchedule
		}
		days := make([]int, 0, last-first+1)
		for day := first; day <= last; day++ {
			days = append(days, day)
		}
		return days, nil
	default:
		return nil, ErrInvalidSchedule
	}
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func availabilityKey(phone string) string {
	return "user_availability:" + phone
}

func scheduleKey(phone string) string {
	return phone + ":schedule"
}
