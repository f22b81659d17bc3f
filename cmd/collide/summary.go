package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/collide/internal/core"
	"github.com/vovakirdan/collide/internal/sim"
)

// topEntities is how many entities the summary ranks.
const topEntities = 5

type styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
}

func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{Title: plain, Label: plain, Value: plain, Muted: plain}
}

func colorStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value: lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// summary is what `collide run` prints after a run.
type summary struct {
	Title   string
	Runtime core.RuntimeConfig
	Workers int
	Stats   sim.Stats
	Hash    uint64
	RunID   string // Empty unless recorded
	Names   func(core.EntityID) string
}

type entityCount struct {
	id    core.EntityID
	count int
}

// ranked returns the entities with the most collisions, ties by ID.
func (s summary) ranked() []entityCount {
	counts := make([]entityCount, 0, len(s.Stats.ByEntity))
	for id, n := range s.Stats.ByEntity {
		counts = append(counts, entityCount{id: id, count: n})
	}
	slices.SortFunc(counts, func(a, b entityCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	if len(counts) > topEntities {
		counts = counts[:topEntities]
	}
	return counts
}

func (s summary) name(id core.EntityID) string {
	if s.Names != nil {
		if n := s.Names(id); n != "" {
			return n + id.String()
		}
	}
	return id.String()
}

// Render formats the summary with st.
func (s summary) Render(st styles) string {
	var b strings.Builder

	row := func(label, value string) {
		fmt.Fprintf(&b, "  %s %s\n", st.Label.Render(fmt.Sprintf("%-12s", label)), st.Value.Render(value))
	}

	b.WriteString(st.Title.Render(s.Title) + "\n\n")
	row("Seed", fmt.Sprint(s.Runtime.Seed))
	row("Tick rate", fmt.Sprintf("%d/s", s.Runtime.TickRate))
	row("Workers", fmt.Sprint(max(s.Workers, 1)))
	row("Ticks", fmt.Sprint(s.Stats.Ticks))
	row("Elapsed", s.Stats.Elapsed.Round(time.Millisecond).String())
	row("Collisions", fmt.Sprint(s.Stats.Collisions))
	if s.Stats.Busiest > 0 {
		row("Busiest", fmt.Sprintf("%d at tick %d", s.Stats.Busiest, s.Stats.BusiestAt))
	}
	row("Hash", fmt.Sprintf("%016x", s.Hash))
	if s.RunID != "" {
		row("Run", s.RunID)
	}

	if top := s.ranked(); len(top) > 0 {
		b.WriteString("\n" + st.Muted.Render("  Most collisions:") + "\n")
		for _, e := range top {
			fmt.Fprintf(&b, "    %-16s %d\n", s.name(e.id), e.count)
		}
	}
	return b.String()
}
