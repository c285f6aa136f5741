package platform

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"lautenbacher.net/lavalamp/config"
	"lautenbacher.net/lavalamp/lamp"
	"lautenbacher.net/lavalamp/util"
)

// AbstractPlatform holds what the real and the simulated platform share:
// the latest frame mailbox, the display goroutine and a virtual button.
type AbstractPlatform struct {
	config          *config.Config
	frames          *util.Latest[lamp.Frame]
	displayFunc     func(lamp.Frame)
	displayWg       sync.WaitGroup
	displayStopChan chan bool
	readyChan       chan bool
	isShuttingDown  atomic.Bool
	button          atomic.Bool
}

func newAbstractPlatform(conf *config.Config, displayFunc func(lamp.Frame)) *AbstractPlatform {
	return &AbstractPlatform{
		config:          conf,
		frames:          util.NewLatest[lamp.Frame](),
		displayFunc:     displayFunc,
		displayStopChan: make(chan bool),
		readyChan:       make(chan bool),
	}
}

func (s *AbstractPlatform) Ready() <-chan bool {
	return s.readyChan
}

// DisplayLeds copies frame into the mailbox; the display goroutine picks it up.
func (s *AbstractPlatform) DisplayLeds(frame lamp.Frame) {
	if s.isShuttingDown.Load() {
		return
	}
	out := make(lamp.Frame, len(frame))
	copy(out, frame)
	s.frames.Put(out)
}

// ButtonPressed reports the virtual button. The Raspberry Pi platform reads
// the GPIO pin instead.
func (s *AbstractPlatform) ButtonPressed() bool {
	return s.button.Load()
}

// SetButton presses or releases the virtual button.
func (s *AbstractPlatform) SetButton(pressed bool) {
	s.button.Store(pressed)
}

func (s *AbstractPlatform) startDisplayDriver() {
	s.displayWg.Add(1)
	go s.displayDriver()
}

func (s *AbstractPlatform) stopDisplayDriver() {
	if s.isShuttingDown.Swap(true) {
		return
	}
	close(s.displayStopChan)
	s.displayWg.Wait()
}

func (s *AbstractPlatform) displayDriver() {
	defer s.displayWg.Done()
	for {
		select {
		case <-s.displayStopChan:
			slog.Info("Ending DisplayDriver go-routine...")
			return
		case <-s.frames.Updated():
			if !s.isShuttingDown.Load() {
				s.displayFunc(s.frames.Value())
			}
		}
	}
}
