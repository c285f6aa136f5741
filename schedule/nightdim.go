package schedule

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"lautenbacher.net/lavalamp/config"
	"lautenbacher.net/lavalamp/lamp"
)

// polarRetry is how long to wait when the sun neither rises nor sets.
const polarRetry = 6 * time.Hour

// Poster queues a plan change for the cycle loop.
type Poster interface {
	Post(kind lamp.CommandKind, index int, source string)
}

// NightDimmer selects one brightness plan after sunset and another one after
// sunrise.
type NightDimmer struct {
	latitude  float64
	longitude float64
	night     int
	day       int
	poster    Poster
	now       func() time.Time
	stop      chan bool
	wg        sync.WaitGroup
}

func NewNightDimmer(cfg config.NightDimConfig, poster Poster) *NightDimmer {
	return &NightDimmer{
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		night:     cfg.NightBrightness,
		day:       cfg.DayBrightness,
		poster:    poster,
		now:       time.Now,
		stop:      make(chan bool),
	}
}

// IsNight reports whether now lies between sunset and sunrise at the given
// place, and when that changes next. When the sun does not rise or set on
// that day it reports day and a recheck in a few hours.
func IsNight(latitude, longitude float64, now time.Time) (bool, time.Time) {
	rise, set := sunrise.SunriseSunset(latitude, longitude, now.Year(), now.Month(), now.Day())
	if rise.IsZero() || set.IsZero() {
		return false, now.Add(polarRetry)
	}
	switch {
	case now.Before(rise):
		// after midnight, before sunrise
		return true, rise
	case now.Before(set):
		return false, set
	default:
		next := now.Add(24 * time.Hour)
		riseNext, _ := sunrise.SunriseSunset(latitude, longitude, next.Year(), next.Month(), next.Day())
		if riseNext.IsZero() {
			return true, now.Add(polarRetry)
		}
		return true, riseNext
	}
}

func (n *NightDimmer) Start() {
	n.wg.Add(1)
	go n.runner()
}

func (n *NightDimmer) Stop() {
	close(n.stop)
	n.wg.Wait()
}

// apply posts the plan for now and returns when to look again.
func (n *NightDimmer) apply() time.Duration {
	now := n.now()
	night, next := IsNight(n.latitude, n.longitude, now)
	plan := n.day
	if night {
		plan = n.night
	}
	slog.Info("Night dimmer", "night", night, "brightnessPlan", plan, "next", next.Format(time.RFC3339))
	n.poster.Post(lamp.SelectBrightness, plan, "nightdim")
	// a second past the transition so the next check is on the other side
	return next.Sub(now) + time.Second
}

func (n *NightDimmer) runner() {
	defer n.wg.Done()
	timer := time.NewTimer(n.apply())
	defer timer.Stop()
	for {
		select {
		case <-n.stop:
			slog.Info("Ending NightDimmer go-routine")
			return
		case <-timer.C:
			timer.Reset(n.apply())
		}
	}
}
