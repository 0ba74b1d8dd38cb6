package review

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/desertthunder/plx/internal/shared"
)

// Prompter asks the user for one answer at a time.
type Prompter interface {
	Confirm(label string, def bool) (bool, error)
	Input(label, def string) (string, error)
}

// NewPrompter picks a [SurveyPrompter] when in is a terminal and a [LinePrompter] otherwise.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &SurveyPrompter{opts: []survey.AskOpt{survey.WithStdio(in, asFile(out), os.Stderr)}}
	}
	return NewLinePrompter(in, out)
}

func asFile(w io.Writer) terminal.FileWriter {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return os.Stdout
}

// LinePrompter reads answers line by line. Empty lines take the default.
type LinePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewScanner(in), out: out}
}

func (p *LinePrompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintf(p.out, "%v: answer y or n\n", shared.ErrInvalidSelection)
	}
}

func (p *LinePrompter) Input(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *LinePrompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrInputClosed, err)
		}
		return "", shared.ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// SurveyPrompter asks through interactive terminal prompts.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

func (p *SurveyPrompter) Confirm(label string, def bool) (bool, error) {
	ok := def
	err := survey.AskOne(&survey.Confirm{Message: label, Default: def}, &ok, p.opts...)
	return ok, surveyError(err)
}

func (p *SurveyPrompter) Input(label, def string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: label, Default: def}, &answer, p.opts...)
	return strings.TrimSpace(answer), surveyError(err)
}

func surveyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, terminal.InterruptErr), errors.Is(err, io.EOF):
		return fmt.Errorf("%w: %v", shared.ErrInputClosed, err)
	default:
		return err
	}
}
