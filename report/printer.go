// Package report renders exploration results for a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/signalnine/beggar/gosim/engine"
	"github.com/signalnine/beggar/gosim/simulation"
)

// Printer prints results with pterm. It satisfies simulation.Reporter.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	info    *pterm.PrefixPrinter
}

var _ simulation.Reporter = (*Printer)(nil)

// NewPrinter writes to w, or stdout if w is nil
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		w:       w,
		success: pterm.Success.WithWriter(w),
		warning: pterm.Warning.WithWriter(w),
		info:    pterm.Info.WithWriter(w),
	}
}

// NewBest announces a finite deal longer than any seen before
func (p *Printer) NewBest(res engine.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.success.Println("New best found!")
	fmt.Fprintln(p.w, res.String())
	fmt.Fprintln(p.w)
}

// InfiniteFound announces a deal that never ends
func (p *Printer) InfiniteFound(res engine.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.warning.Println("Found an infinite solution!")
	fmt.Fprintln(p.w, res.String())
	fmt.Fprintln(p.w)
}

// Result prints a single simulated deal
func (p *Printer) Result(res engine.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if res.Infinite {
		p.warning.Println("This game never ends")
	} else if winner, ok := res.Winner(); ok {
		p.info.Printfln("Player %s wins", winner)
	}
	fmt.Fprintln(p.w, res.String())
}

// Summary prints the totals of an exploration run as a table
func (p *Printer) Summary(s simulation.Summary) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rate := 0.0
	if secs := s.Elapsed.Seconds(); secs > 0 {
		rate = float64(s.Deals) / secs
	}
	best := "none"
	if s.Best != nil {
		best = fmt.Sprintf("%d cards, %d tricks", s.Best.Cards, s.Best.Tricks)
	}

	table, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Run", s.RunID.String()},
		{"Seed", fmt.Sprint(s.Seed)},
		{"Workers", fmt.Sprint(s.Workers)},
		{"Deals", fmt.Sprint(s.Deals)},
		{"Deals/sec", fmt.Sprintf("%.0f", rate)},
		{"Infinite", fmt.Sprint(s.Infinite)},
		{"Best", best},
		{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
	}).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, table)
	if err == nil && s.Best != nil {
		_, err = fmt.Fprintln(p.w, s.Best.String())
	}
	return err
}

// Stats prints the statistics of a fixed batch of deals
func (p *Printer) Stats(stats simulation.AggregatedStats) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Games", "P1 wins", "P2 wins", "Infinite", "Avg cards", "Median", "Max cards", "Max tricks"},
		{
			fmt.Sprint(stats.TotalGames),
			fmt.Sprint(stats.Player1Wins),
			fmt.Sprint(stats.Player2Wins),
			fmt.Sprint(stats.Infinite),
			fmt.Sprintf("%.1f", stats.AvgCards),
			fmt.Sprint(stats.MedianCards),
			fmt.Sprint(stats.MaxCards),
			fmt.Sprint(stats.MaxTricks),
		},
	}).Srender()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.w, table); err != nil {
		return err
	}
	if stats.Best != nil {
		p.success.Println("Longest game")
		fmt.Fprintln(p.w, stats.Best.String())
	}
	for _, res := range stats.InfiniteDeals {
		p.warning.Println("Infinite game")
		fmt.Fprintln(p.w, res.String())
	}
	return nil
}
