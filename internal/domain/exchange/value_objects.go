package exchange

import (
	"errors"
	"time"
)

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// Meetup describes where and when the parties hand the book over.
type Meetup struct {
	location string
	start    time.Time
	end      time.Time
}

func NewMeetup(location string, start, end time.Time) (Meetup, error) {
	if location == "" {
		return Meetup{}, errors.New("meetup location is required")
	}
	if !start.Before(end) {
		return Meetup{}, errors.New("meetup window start must be before end")
	}
	return Meetup{location: location, start: start, end: end}, nil
}

func (m Meetup) Location() string { return m.location }
func (m Meetup) Start() time.Time { return m.start }
func (m Meetup) End() time.Time   { return m.end }

// StateChange is one timestamped entry in a transaction's history.
type StateChange struct {
	State      State
	OccurredAt time.Time
}
