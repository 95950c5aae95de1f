// Package console is the blocking input collaborator for the interactive
// menu. Every prompt re-asks until the typed value satisfies its constraint;
// the core operations only ever see valid values.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s looks like a phone number.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

type Input struct {
	in  *bufio.Reader
	out io.Writer
}

func NewInput() *Input {
	return &Input{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewInputFrom exists for tests that script the prompts.
func NewInputFrom(in io.Reader, out io.Writer) *Input {
	return &Input{in: bufio.NewReader(in), out: out}
}

func (i *Input) line() (string, error) {
	s, err := i.in.ReadString('\n')
	if err != nil && s == "" {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// ReadInt prompts until an integer within [min, max] is entered.
func (i *Input) ReadInt(prompt string, min, max int) (int, error) {
	for {
		fmt.Fprint(i.out, prompt)
		s, err := i.line()
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil && v >= min && v <= max {
			return v, nil
		}
		fmt.Fprintf(i.out, "Invalid input! Please enter a number between %d and %d.\n", min, max)
	}
}

// ReadAmount prompts until a monetary amount within [min, max] with at most
// two decimal places is entered.
func (i *Input) ReadAmount(prompt string, min, max decimal.Decimal) (decimal.Decimal, error) {
	for {
		fmt.Fprint(i.out, prompt)
		s, err := i.line()
		if err != nil {
			return decimal.Zero, err
		}
		v, err := decimal.NewFromString(strings.TrimSpace(s))
		if err == nil &&
			v.Mul(decimal.NewFromInt(100)).IsInteger() &&
			v.GreaterThanOrEqual(min) && v.LessThanOrEqual(max) {
			return v, nil
		}
		fmt.Fprintf(i.out, "Invalid input! Please enter an amount between $%s and $%s.\n",
			min.StringFixed(2), max.StringFixed(2))
	}
}

// ReadLine prompts until a non-empty trimmed line of at most maxLen bytes is
// entered.
func (i *Input) ReadLine(prompt string, maxLen int) (string, error) {
	for {
		fmt.Fprint(i.out, prompt)
		s, err := i.line()
		if err != nil {
			return "", err
		}
		s = strings.TrimSpace(s)
		if s != "" && len(s) <= maxLen {
			return s, nil
		}
		fmt.Fprintf(i.out, "Invalid input! Please enter up to %d characters.\n", maxLen)
	}
}

func (i *Input) ReadEmail(prompt string, maxLen int) (string, error) {
	for {
		s, err := i.ReadLine(prompt, maxLen)
		if err != nil {
			return "", err
		}
		if ValidEmail(s) {
			return s, nil
		}
		fmt.Fprintln(i.out, "Invalid email address, please try again.")
	}
}

func (i *Input) ReadPhone(prompt string, maxLen int) (string, error) {
	for {
		s, err := i.ReadLine(prompt, maxLen)
		if err != nil {
			return "", err
		}
		if ValidPhone(s) {
			return s, nil
		}
		fmt.Fprintln(i.out, "Invalid phone number, please try again.")
	}
}

// ReadPassword prompts without echoing when stdin is a terminal. Outside a
// terminal (tests, pipes) it falls back to a plain line read.
func (i *Input) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(i.out, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(i.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return i.line()
}

// Confirm prompts until y or n is entered.
func (i *Input) Confirm(prompt string) (bool, error) {
	for {
		fmt.Fprint(i.out, prompt)
		s, err := i.line()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(i.out, "Please answer y or n.")
	}
}
