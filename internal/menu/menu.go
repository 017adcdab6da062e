// Package menu drives the interactive survey session.
//
// The session is a small tree of menus: Main -> {Insert, Extract, View, Exit}.
// Every leaf action ends with a "press enter" prompt and then returns to the
// menu it was started from. Each menu level is a loop; leaving a level is a
// plain return.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/BerylCAtieno/product-survey/internal/profiler"
	"github.com/BerylCAtieno/product-survey/internal/prompt"
	"github.com/BerylCAtieno/product-survey/internal/store"
	"github.com/fatih/color"
)

const clearScreen = "\033[H\033[2J"

var (
	successText = color.New(color.FgGreen)
	infoText    = color.New(color.FgCyan)
	titleText   = color.New(color.FgHiWhite, color.Bold)
)

// Controller runs one interactive session against a store.
type Controller struct {
	store     store.Store
	p         *prompt.Prompter
	out       io.Writer
	describer profiler.Describer
}

type Option func(*Controller)

// WithDescriber enables generated customer sketches after persona lookups.
func WithDescriber(d profiler.Describer) Option {
	return func(c *Controller) { c.describer = d }
}

func New(s store.Store, in io.Reader, out io.Writer, opts ...Option) *Controller {
	c := &Controller{
		store: s,
		p:     prompt.New(in, out),
		out:   out,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run shows the main menu until the user exits or the input is closed.
func (c *Controller) Run(ctx context.Context) error {
	err := c.mainMenu(ctx)
	if errors.Is(err, prompt.ErrInputClosed) {
		log.Printf("STATE: input closed, ending session")
		fmt.Fprintln(c.out)
		return nil
	}
	return err
}

func (c *Controller) mainMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.clear()
		c.welcome()

		choice, err := c.p.Line("Enter your choice: \n")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.insertData(ctx)
		case "2":
			err = c.extractMenu(ctx)
		case "3":
			err = c.viewMenu(ctx)
		case "4":
			fmt.Fprintln(c.out, "Exiting the program...")
			return nil
		default:
			c.p.Invalid("Invalid choice...\n")
			err = c.p.WaitForEnter("Press Enter to try again....")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) welcome() {
	fmt.Fprintln(c.out)
	titleText.Fprintln(c.out, "Apple Vision Pro Product Survey!")
	fmt.Fprintln(c.out)
	infoText.Fprintln(c.out, "This survey aims to gather insights into the likelihood of purchasing the Apple Vision Pro.")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "1. Insert Data")
	fmt.Fprintln(c.out, "2. Extract Analyzed Data")
	fmt.Fprintln(c.out, "3. View Stored Data")
	fmt.Fprintln(c.out, "4. Exit")
	fmt.Fprintln(c.out)
}

func (c *Controller) clear() {
	fmt.Fprint(c.out, clearScreen)
}

// failed reports a store error and keeps the session alive.
func (c *Controller) failed(action string, err error) {
	log.Printf("ERROR: failed to %s: %v", action, err)
	c.p.Invalid(fmt.Sprintf("Error: could not %s: %v\n", action, err))
}
