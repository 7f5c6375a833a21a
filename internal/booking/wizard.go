package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"biteaffair/internal/guests"
)

var (
	ErrBackAtFirstStep  = errors.New("cannot go back from the first step")
	ErrLastStep         = errors.New("already at the last step")
	ErrWrongStep        = errors.New("action not allowed at the current step")
	ErrLocationRequired = errors.New("location is required")
	ErrUnknownOccasion  = errors.New("unknown occasion")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime      = errors.New("time must be HH:MM")
	ErrUnknownMealType  = errors.New("unknown meal type")
	ErrStepIncomplete   = errors.New("current step is not complete")
)

const (
	dateLayout  = "2006-01-02"
	inputLayout = "15:04"
	rangeLayout = "03:04 PM"
)

// CompleteFunc receives the booking once the meal type has been chosen.
type CompleteFunc func(Config) error

// Wizard is the four step booking flow. It is plain data so that it can be
// snapshotted as is; the completion callback is attached after restore.
type Wizard struct {
	Step      Step `json:"step"`
	Data      Data `json:"data"`
	Completed bool `json:"completed"`

	onComplete CompleteFunc
	now        func() time.Time
}

func NewWizard(onComplete CompleteFunc) *Wizard {
	return &Wizard{onComplete: onComplete, now: time.Now}
}

// Attach sets the completion callback on a restored wizard.
func (w *Wizard) Attach(onComplete CompleteFunc) {
	w.onComplete = onComplete
	if w.now == nil {
		w.now = time.Now
	}
}

// StepTitle is the label of the current step.
func (w *Wizard) StepTitle() string {
	return w.Step.Title()
}

// --------------------------------------------------
// Step 0
// --------------------------------------------------

func (w *Wizard) SelectLocation(location string) error {
	if w.Step != StepLocation {
		return ErrWrongStep
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return ErrLocationRequired
	}
	w.Data.Location = location
	return nil
}

func (w *Wizard) SelectOccasion(key string) error {
	if w.Step != StepLocation {
		return ErrWrongStep
	}
	key = strings.ToLower(strings.TrimSpace(key))
	for _, o := range Occasions {
		if o.Key == key {
			w.Data.Occasion = key
			return nil
		}
	}
	return ErrUnknownOccasion
}

// SetSchedule records the event date and time window and moves to step 1.
// The date and time fields only exist once a location is chosen. An empty
// end time defaults to one hour after the start.
func (w *Wizard) SetSchedule(date, start, end string) error {
	if w.Step != StepLocation {
		return ErrWrongStep
	}
	if w.Data.Location == "" {
		return ErrLocationRequired
	}

	if _, err := time.Parse(dateLayout, strings.TrimSpace(date)); err != nil {
		return ErrInvalidDate
	}
	from, err := time.Parse(inputLayout, strings.TrimSpace(start))
	if err != nil {
		return ErrInvalidTime
	}

	to := from.Add(time.Hour)
	if strings.TrimSpace(end) != "" {
		if to, err = time.Parse(inputLayout, strings.TrimSpace(end)); err != nil {
			return ErrInvalidTime
		}
	}

	w.Data.Date = strings.TrimSpace(date)
	w.Data.StartTime = from.Format(inputLayout)
	w.Data.EndTime = to.Format(inputLayout)
	w.Data.TimeRange = FormatTimeRange(from, to)
	w.Step = StepMenuSelection
	return nil
}

// FormatTimeRange renders "hh:mm AM - hh:mm PM".
func FormatTimeRange(from, to time.Time) string {
	return fmt.Sprintf("%s - %s", from.Format(rangeLayout), to.Format(rangeLayout))
}

// --------------------------------------------------
// Step 1
// --------------------------------------------------

// SelectMeal completes step 1. The wizard does not advance to the price step;
// it finishes here and hands the accumulated booking to the completion
// callback.
func (w *Wizard) SelectMeal(label string, counts guests.Count) (Config, error) {
	if w.Step != StepMenuSelection {
		return Config{}, ErrWrongStep
	}
	meal, ok := mealKey(label)
	if !ok {
		return Config{}, ErrUnknownMealType
	}

	w.Data.MealType = meal
	w.Data.Guests = SeedFor(meal, counts)

	now := time.Now
	if w.now != nil {
		now = w.now
	}

	cfg := Config{
		Location:    w.Data.Location,
		Occasion:    w.Data.Occasion,
		EventDate:   w.Data.Date,
		EventTime:   w.Data.TimeRange,
		Menu:        NormalizeMeal(label),
		MealType:    meal,
		Guests:      guests.Seeded(w.Data.Guests),
		CompletedAt: now().UTC(),
	}

	if w.onComplete != nil {
		if err := w.onComplete(cfg); err != nil {
			return Config{}, err
		}
	}
	w.Completed = true

	log.WithFields(log.Fields{
		"location": cfg.Location,
		"menu":     cfg.Menu,
	}).Info("booking completed")

	return cfg, nil
}

// --------------------------------------------------
// Navigation
// --------------------------------------------------

// Next advances one step once the current step has what it needs.
func (w *Wizard) Next() error {
	switch w.Step {
	case StepLocation:
		if w.Data.Location == "" || w.Data.Date == "" || w.Data.TimeRange == "" {
			return ErrStepIncomplete
		}
	case StepMenuSelection:
		if w.Data.MealType == "" {
			return ErrStepIncomplete
		}
	case StepPayment:
		return ErrLastStep
	}
	w.Step++
	return nil
}

func (w *Wizard) Back() error {
	if w.Step <= StepLocation {
		return ErrBackAtFirstStep
	}
	w.Step--
	w.Completed = false
	return nil
}

// Reset starts a new booking, keeping the callback.
func (w *Wizard) Reset() {
	w.Step = StepLocation
	w.Data = Data{}
	w.Completed = false
}
