// Package prompt reads validated answers from an interactive terminal.
//
// Every reader loops until the input satisfies its enumeration or range,
// printing an error and re-prompting on each failure. There is no retry
// limit; the loop only ends early when the input stream is closed.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/fatih/color"
)

// ErrInputClosed is returned once the input stream reaches EOF.
var ErrInputClosed = errors.New("input closed")

var (
	errorText     = color.New(color.FgRed)
	underlineText = color.New(color.Underline)
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints label and returns the next input line, trimmed.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Invalid prints msg as an error line.
func (p *Prompter) Invalid(msg string) {
	errorText.Fprintln(p.out, msg)
}

// Heading prints an underlined heading.
func (p *Prompter) Heading(text string) {
	underlineText.Fprintln(p.out, text)
}

// WaitForEnter blocks until the user presses Enter.
func (p *Prompter) WaitForEnter(label string) error {
	_, err := p.Line(label + "\n")
	return err
}

// choose loops until the (normalised) answer is a key of choices.
func (p *Prompter) choose(label string, choices models.Choices, normalize func(string) string, invalid string) (string, error) {
	for {
		answer, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if normalize != nil {
			answer = normalize(answer)
		}
		if v, ok := choices.Lookup(answer); ok {
			return v, nil
		}
		p.Invalid(invalid)
	}
}

// Gender asks for M or F, case-insensitively.
func (p *Prompter) Gender() (string, error) {
	return p.choose(
		"Enter the gender (M for Male, F for Female): \n",
		models.GenderChoices,
		strings.ToUpper,
		"Invalid choice. Please choose either 'M' or 'F'.\n",
	)
}

// AgeGroup lists the age groups and asks for a number between 1 and 6.
func (p *Prompter) AgeGroup() (string, error) {
	return p.numbered("Age Group", "age group", models.AgeGroupChoices)
}

// IncomeBracket lists the income brackets and asks for a number between 1 and 5.
func (p *Prompter) IncomeBracket() (string, error) {
	return p.numbered("Income Bracket", "income bracket", models.IncomeBracketChoices)
}

func (p *Prompter) numbered(title, noun string, choices models.Choices) (string, error) {
	p.Heading("\nChoose " + title + ":\n")
	for _, ch := range choices {
		fmt.Fprintf(p.out, "%s: %s\n", ch.Key, ch.Value)
	}
	return p.choose(
		"\nEnter the number corresponding to the "+noun+": \n",
		choices,
		nil,
		fmt.Sprintf("Invalid choice. Please choose a number between 1 and %d.\n", len(choices)),
	)
}

// Likelihood asks for an integer on the 0-10 scale. Only plain digits are accepted.
func (p *Prompter) Likelihood() (int, error) {
	for {
		answer, err := p.Line("Enter a number between 0 and 10: \n")
		if err != nil {
			return 0, err
		}
		if v, ok := ParseLikelihood(answer); ok {
			return v, nil
		}
		p.Invalid("Invalid input. Please enter a number between 0 and 10.")
	}
}

// ParseLikelihood accepts a string of ASCII digits whose value lies in 0..10.
func ParseLikelihood(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < models.MinLikelihood || v > models.MaxLikelihood {
		return 0, false
	}
	return v, true
}

// YesNo accepts y, yes, n or no in any case.
func (p *Prompter) YesNo(label string) (bool, error) {
	for {
		answer, err := p.Line(label)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Invalid("Invalid choice. Please enter 'Y' or 'N'.\n")
	}
}

// Persona asks for gender, age group and income bracket in turn.
func (p *Prompter) Persona() (models.Persona, error) {
	var persona models.Persona
	var err error
	p.Heading("\nChoose Gender:\n")
	if persona.Gender, err = p.Gender(); err != nil {
		return persona, err
	}
	if persona.AgeGroup, err = p.AgeGroup(); err != nil {
		return persona, err
	}
	if persona.IncomeBracket, err = p.IncomeBracket(); err != nil {
		return persona, err
	}
	return persona, nil
}
