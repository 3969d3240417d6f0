package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

type progressPrinter struct {
	total       int
	mu          sync.Mutex
	reachable   int
	unreachable int
	updates     chan struct{}
	done        chan struct{}
	stopOnce    sync.Once
}

func newProgressPrinter(total int) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		total:   total,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

func (p *progressPrinter) Increment(reachable bool) {
	p.mu.Lock()
	if reachable {
		p.reachable++
	} else {
		p.unreachable++
	}
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", 80))
	p.print()
	fmt.Fprintln(os.Stdout)
}

func (p *progressPrinter) loop() {
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.print()
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	p.mu.Lock()
	reachable := p.reachable
	unreachable := p.unreachable
	p.mu.Unlock()

	completed := reachable + unreachable
	if completed > p.total {
		p.total = completed
	}

	percent := (float64(completed) / float64(p.total)) * 100
	fmt.Fprintf(os.Stdout, "\r[scan] Progress: %d/%d (%.1f%%) OK:%d Unreachable:%d",
		completed, p.total, percent, reachable, unreachable)
}
