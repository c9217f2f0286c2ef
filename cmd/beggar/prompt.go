package main

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/signalnine/beggar/gosim/config"
	"github.com/signalnine/beggar/gosim/engine"
)

const (
	modeCheck  = "check"
	modeRandom = "random"
	modeSearch = "search"
	modeBatch  = "batch"
)

// menu labels, in display order
var modeOptions = []struct {
	label string
	mode  string
}{
	{"Check a specific game", modeCheck},
	{"Generate a random game", modeRandom},
	{"Generate a bunch of random games and track the best", modeSearch},
	{"Play a fixed batch of random games and show statistics", modeBatch},
}

// promptFunc shows a prompt and returns the user's answer
type promptFunc func(text ...string) (string, error)

func selectMode() (string, error) {
	labels := make([]string, len(modeOptions))
	for i, o := range modeOptions {
		labels[i] = o.label
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("What would you like to do?").
		WithOptions(labels).
		Show()
	if err != nil {
		return "", err
	}
	return modeForLabel(choice)
}

func modeForLabel(label string) (string, error) {
	for _, o := range modeOptions {
		if o.label == label {
			return o.mode, nil
		}
	}
	return "", fmt.Errorf("unknown option %q", label)
}

// deckOrPrompt parses text if given, otherwise asks until a valid
// 26-card deck is entered.
func deckOrPrompt(text, message string, prompt promptFunc) (engine.Deck, error) {
	if text != "" {
		return engine.ParseDeck(text)
	}
	for {
		answer, err := prompt(message)
		if err != nil {
			return nil, err
		}
		deck, err := engine.ParseDeck(answer)
		if err == nil {
			return deck, nil
		}
		pterm.Error.Println(err)
	}
}

func promptWorkers(prompt promptFunc) (int, error) {
	cores := runtime.NumCPU()
	message := fmt.Sprintf("How many workers would you like to spawn? You have %d cores and one of them "+
		"coordinates the others, so %d or %d is recommended", cores, max(cores-1, 1), cores)
	for {
		answer, err := prompt(message)
		if err != nil {
			return 0, err
		}
		n, err := parseWorkers(answer)
		if err == nil {
			return n, nil
		}
		pterm.Error.Println(err)
	}
}

func parseWorkers(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("need at least one worker, got %d", n)
	}
	return n, nil
}

// setFlags returns the names of the flags given on the command line
func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags lets explicitly set flags override the loaded config
func applyFlags(cfg *config.Config, set map[string]bool) {
	if set["workers"] {
		cfg.Search.Workers = workers
	}
	if set["seed"] {
		cfg.Search.Seed = seed
	}
	if set["max-deals"] {
		cfg.Search.MaxDeals = maxDeals
	}
	if set["log-level"] {
		cfg.Log.Level = logLevel
	}
	if set["log-format"] {
		cfg.Log.Format = logFormat
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
}
