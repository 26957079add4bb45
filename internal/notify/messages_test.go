package notify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClientInfo(t *testing.T) {
	assert.Equal(t, "Client: Anna (@anna)\nPhone: +375291112233",
		formatClientInfo("Anna", "anna", "+375291112233"))
	assert.Equal(t, "Client: Anna", formatClientInfo("Anna", "", ""))
	assert.Equal(t, "Client: @anna", formatClientInfo("", "anna", ""))
	assert.Equal(t, "Client: (not set)", formatClientInfo("", "", ""))
}

func TestSummaryPagesEmpty(t *testing.T) {
	pages := SummaryPages("2026-08-28", nil)
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0], "No bookings for today")
	assert.Contains(t, pages[0], "2026-08-28")
}

func TestSummaryPagesSingle(t *testing.T) {
	entries := []string{
		SummaryEntry(1, "09:00", "Anna", "Manicure"),
		SummaryEntry(2, "10:30", "Kate", "Peeling"),
	}
	pages := SummaryPages("2026-08-28", entries)
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0], "1. 09:00 — Anna, Manicure")
	assert.Contains(t, pages[0], "2. 10:30 — Kate, Peeling")
	assert.Contains(t, pages[0], "Total: 2")
}

func TestSummaryPagesSplitsLongDigest(t *testing.T) {
	var entries []string
	for i := 0; i < 200; i++ {
		entries = append(entries, SummaryEntry(i+1, "09:00",
			fmt.Sprintf("Client with a fairly long name number %03d", i+1),
			"Extended signature facial treatment"))
	}

	pages := SummaryPages("2026-08-28", entries)
	require.Greater(t, len(pages), 1)

	for _, p := range pages {
		assert.LessOrEqual(t, len(p), summaryCharBudget+100)
	}

	// No entry is lost across the page split.
	joined := strings.Join(pages, "\n")
	assert.Contains(t, joined, "number 001")
	assert.Contains(t, joined, "number 200")
	assert.Contains(t, pages[len(pages)-1], "Total: 200")
}

func TestReminderIncludesAddressWhenKnown(t *testing.T) {
	withAddr := Reminder("Manicure", "10:00", "Main st. 1")
	assert.Contains(t, withAddr, "Address: Main st. 1")

	without := Reminder("Manicure", "10:00", "")
	assert.NotContains(t, without, "Address:")
}
