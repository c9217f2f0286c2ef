package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/beggar/gosim/config"
	"github.com/signalnine/beggar/gosim/engine"
)

// scripted answers prompts from a fixed list
func scripted(answers ...string) (promptFunc, *int) {
	calls := 0
	return func(...string) (string, error) {
		if calls >= len(answers) {
			return "", errors.New("out of answers")
		}
		calls++
		return answers[calls-1], nil
	}, &calls
}

func TestModeForLabel(t *testing.T) {
	for _, o := range modeOptions {
		got, err := modeForLabel(o.label)
		require.NoError(t, err)
		assert.Equal(t, o.mode, got)
	}

	_, err := modeForLabel("Quit")
	assert.Error(t, err)
}

func TestDeckOrPrompt_FromFlag(t *testing.T) {
	prompt, calls := scripted()
	text := "A" + strings.Repeat("-", engine.HandSize-1)

	deck, err := deckOrPrompt(text, "deck?", prompt)
	require.NoError(t, err)
	assert.Equal(t, text, deck.String())
	assert.Zero(t, *calls)
}

func TestDeckOrPrompt_BadFlag(t *testing.T) {
	prompt, _ := scripted()
	_, err := deckOrPrompt("AK", "deck?", prompt)
	assert.ErrorIs(t, err, engine.ErrCardCount)
}

func TestDeckOrPrompt_RepromptsUntilValid(t *testing.T) {
	good := strings.Repeat("-", engine.HandSize-1) + "K"
	prompt, calls := scripted("x", "AKQJ", good)

	deck, err := deckOrPrompt("", "deck?", prompt)
	require.NoError(t, err)
	assert.Equal(t, good, deck.String())
	assert.Equal(t, 3, *calls)
}

func TestDeckOrPrompt_PromptError(t *testing.T) {
	prompt, _ := scripted()
	_, err := deckOrPrompt("", "deck?", prompt)
	assert.Error(t, err)
}

func TestParseWorkers(t *testing.T) {
	n, err := parseWorkers(" 8 ")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = parseWorkers("eight")
	assert.Error(t, err)
	_, err = parseWorkers("0")
	assert.Error(t, err)
}

func TestPromptWorkers(t *testing.T) {
	prompt, calls := scripted("-1", "3")
	n, err := promptWorkers(prompt)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, *calls)
}

func TestApplyFlags(t *testing.T) {
	workers, seed, maxDeals, logLevel, logFormat, verbose = 5, 77, 10, "warn", "json", false
	t.Cleanup(func() {
		workers, seed, maxDeals, logLevel, logFormat, verbose = 0, 0, 0, "", "", false
	})

	cfg := config.Default()
	applyFlags(cfg, map[string]bool{"workers": true, "seed": true, "log-format": true})

	assert.Equal(t, 5, cfg.Search.Workers)
	assert.Equal(t, uint64(77), cfg.Search.Seed)
	assert.Zero(t, cfg.Search.MaxDeals, "unset flags keep config values")
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	verbose = true
	applyFlags(cfg, nil)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, uint64(9), resolveSeed(9))
	assert.NotZero(t, resolveSeed(0))
}
