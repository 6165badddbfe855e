// Package selection asks the operator which regions to analyze.
package selection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeSingle  Mode = "S"
	ModeCompare Mode = "D"
	ModeAll     Mode = "A"
)

var ErrAborted = errors.New("selection aborted: input closed")

type Prompt struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewScanner(in), out: out}
}

// Select lists regions sorted and numbered and returns the operator's choice.
func (p *Prompt) Select(regions []string) ([]string, error) {
	if len(regions) == 0 {
		return nil, errors.New("no regions available for selection")
	}

	sorted := slices.Clone(regions)
	slices.Sort(sorted)

	p.printf("\nRegions available for analysis:\n")
	for i, region := range sorted {
		p.printf("%d. %s\n", i+1, region)
	}
	p.printf("%d regions in total.\n\n", len(sorted))
	p.printf("Choose the analysis mode:\n")
	p.printf("S - analyze one region\n")
	p.printf("D - compare two regions\n")
	p.printf("A - analyze all regions\n")

	for {
		answer, err := p.ask("Mode: ")
		if err != nil {
			return nil, err
		}

		switch Mode(strings.ToUpper(answer)) {
		case ModeSingle:
			return p.selectSingle(sorted)
		case ModeCompare:
			return p.selectPair(sorted)
		case ModeAll:
			p.printf("\nAll regions selected\n")
			return sorted, nil
		default:
			p.printf("\nInvalid mode. Try again.\n\n")
		}
	}
}

func (p *Prompt) selectSingle(sorted []string) ([]string, error) {
	for {
		n, err := p.askNumber("Region number: ", len(sorted))
		if err != nil {
			return nil, err
		}
		if n == 0 {
			p.printf("\nInvalid region. Try again.\n\n")
			continue
		}
		region := sorted[n-1]
		p.printf("\nSelected for analysis: %s\n", region)
		return []string{region}, nil
	}
}

func (p *Prompt) selectPair(sorted []string) ([]string, error) {
	for {
		first, err := p.askNumber("First region number: ", len(sorted))
		if err != nil {
			return nil, err
		}
		second, err := p.askNumber("Second region number: ", len(sorted))
		if err != nil {
			return nil, err
		}
		if first == 0 || second == 0 || first == second {
			p.printf("\nInvalid regions. Try again.\n\n")
			continue
		}
		selected := []string{sorted[first-1], sorted[second-1]}
		p.printf("\nSelected for comparison: %s and %s\n", selected[0], selected[1])
		return selected, nil
	}
}

// askNumber returns 0 for anything outside 1..count.
func (p *Prompt) askNumber(question string, count int) (int, error) {
	answer, err := p.ask(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > count {
		return 0, nil
	}
	return n, nil
}

func (p *Prompt) ask(question string) (string, error) {
	p.printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompt) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
