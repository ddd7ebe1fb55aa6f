// Package console drives a cpu.EMU in real time: it runs the clock, the 60Hz
// timers and frame refreshes, copies key state into the machine and forwards
// beeps to the speaker.
package console

import (
	"context"
	"sync"
	"time"

	"github.com/beanboi7/chyp8/emu/cpu"

	"github.com/sirupsen/logrus"
)

const (
	DefaultClockSpeed  = 500
	DefaultRefreshRate = 60
	timerRate          = 60

	// MaxRate is the fastest clock or refresh rate a ticker can run at.
	MaxRate = int(time.Second)
)

// Display shows the framebuffer. Update is called once per frame whether or
// not Draw was.
type Display interface {
	Draw(fb [cpu.Width * cpu.Height]bool)
	Update()
	Closed() bool
}

// Keypad reports the state of the 16 CHIP-8 keys.
type Keypad interface {
	Pressed(key int) bool
}

// Beeper renders the sound timer's tone.
type Beeper interface {
	Beep()
}

type Console struct {
	emu     *cpu.EMU
	display Display
	keypad  Keypad
	beeper  Beeper

	clockSpeed  int
	refreshRate int
	maxCycles   uint64
	cycles      uint64

	audioChannel    chan struct{}
	shutdownChannel chan struct{}
	shutdownOnce    sync.Once

	log *logrus.Entry
}

// Opt configures a Console.
type Opt func(c *Console)

func WithKeypad(k Keypad) Opt {
	return func(c *Console) {
		c.keypad = k
	}
}

func WithBeeper(b Beeper) Opt {
	return func(c *Console) {
		c.beeper = b
	}
}

// WithClockSpeed sets the instruction rate in Hz. Rates outside 1..MaxRate
// are ignored.
func WithClockSpeed(hz int) Opt {
	return func(c *Console) {
		if hz > 0 && hz <= MaxRate {
			c.clockSpeed = hz
		}
	}
}

// WithRefreshRate sets the display refresh rate in Hz. Rates outside
// 1..MaxRate are ignored.
func WithRefreshRate(hz int) Opt {
	return func(c *Console) {
		if hz > 0 && hz <= MaxRate {
			c.refreshRate = hz
		}
	}
}

// WithMaxCycles stops Run after n instructions. 0 means no limit.
func WithMaxCycles(n uint64) Opt {
	return func(c *Console) {
		c.maxCycles = n
	}
}

func WithLogger(log *logrus.Entry) Opt {
	return func(c *Console) {
		c.log = log
	}
}

// New returns a console driving emu and showing it on display.
func New(emu *cpu.EMU, display Display, opts ...Opt) *Console {
	c := &Console{
		emu:             emu,
		display:         display,
		clockSpeed:      DefaultClockSpeed,
		refreshRate:     DefaultRefreshRate,
		audioChannel:    make(chan struct{}, 1),
		shutdownChannel: make(chan struct{}),
		log:             logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cycles returns the number of instructions executed so far.
func (c *Console) Cycles() uint64 {
	return c.cycles
}

// Step copies the keypad into the machine and executes one instruction.
func (c *Console) Step() error {
	if c.keypad != nil {
		for k := 0; k < cpu.NumKeys; k++ {
			c.emu.Keypress(k, c.keypad.Pressed(k))
		}
	}
	if err := c.emu.Tick(); err != nil {
		return err
	}
	c.cycles++
	return nil
}

// TickTimers ages the machine timers and queues a beep when the sound timer
// runs out. A beep is dropped if one is already pending.
func (c *Console) TickTimers() {
	if !c.emu.TickTimers() {
		return
	}
	select {
	case c.audioChannel <- struct{}{}:
	default:
	}
}

// Frame redraws the display if the machine changed it, then updates it.
func (c *Console) Frame() {
	if c.emu.ShouldDraw() {
		c.display.Draw(c.emu.Framebuffer())
	}
	c.display.Update()
}

// Shutdown makes Run return. Safe to call more than once.
func (c *Console) Shutdown() {
	c.shutdownOnce.Do(func() {
		close(c.shutdownChannel)
	})
}

// ManageAudio plays a beep for every queued tone until ctx is done.
func (c *Console) ManageAudio(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.audioChannel:
			if c.beeper == nil {
				c.log.Debug("BEEP!")
				continue
			}
			c.beeper.Beep()
		}
	}
}

// Run drives the machine until ctx is done, Shutdown is called, the display
// is closed or the cycle limit is reached. A machine error stops the run and
// is returned.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.ManageAudio(ctx)

	clock := time.NewTicker(time.Second / time.Duration(c.clockSpeed))
	defer clock.Stop()
	timers := time.NewTicker(time.Second / timerRate)
	defer timers.Stop()
	frames := time.NewTicker(time.Second / time.Duration(c.refreshRate))
	defer frames.Stop()

	c.log.WithFields(logrus.Fields{
		"clock":   c.clockSpeed,
		"refresh": c.refreshRate,
	}).Debug("console running")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.shutdownChannel:
			return nil
		case <-clock.C:
			if err := c.Step(); err != nil {
				c.log.WithError(err).WithField("cycles", c.cycles).Error("machine halted")
				return err
			}
			if c.maxCycles > 0 && c.cycles >= c.maxCycles {
				c.log.WithField("cycles", c.cycles).Debug("cycle limit reached")
				c.Frame()
				return nil
			}
		case <-timers.C:
			c.TickTimers()
		case <-frames.C:
			c.Frame()
			if c.display.Closed() {
				return nil
			}
		}
	}
}
