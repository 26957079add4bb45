package notify

import (
	"fmt"
	"strings"
)

// Telegram rejects messages over 4096 characters; the summary paginator
// stays under a slightly smaller budget to leave room for the footer.
const summaryCharBudget = 4000

// formatClientInfo renders the client block used in staff notifications.
func formatClientInfo(firstName, username, phone string) string {
	var nameLine string
	switch {
	case firstName != "" && username != "":
		nameLine = fmt.Sprintf("Client: %s (@%s)", firstName, username)
	case firstName != "":
		nameLine = "Client: " + firstName
	case username != "":
		nameLine = "Client: @" + username
	default:
		nameLine = "Client: (not set)"
	}

	lines := []string{nameLine}
	if phone != "" {
		lines = append(lines, "Phone: "+phone)
	}
	return strings.Join(lines, "\n")
}

// AdminNewBooking is the staff notification for a fresh reservation.
func AdminNewBooking(firstName, username, phone, serviceName, date, startTime string) string {
	return fmt.Sprintf(
		"📋 New booking!\n\n%s\nService: %s\nDate: %s\nTime: %s",
		formatClientInfo(firstName, username, phone), serviceName, date, startTime,
	)
}

// AdminCancelledBooking is the staff notification for a cancellation.
func AdminCancelledBooking(firstName, username, phone, serviceName, date, startTime string) string {
	return fmt.Sprintf(
		"❌ Booking cancelled\n\n%s\nService: %s\nDate: %s\nTime: %s",
		formatClientInfo(firstName, username, phone), serviceName, date, startTime,
	)
}

// ClientConfirmed is the confirmation sent to the client after booking.
func ClientConfirmed(serviceName, date, startTime string, remindBeforeHours int, price float64, address, preparation string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ You are booked!\n\nService: %s\nDate: %s\nTime: %s\nPrice: %.2f\nReminder: %d h before the session",
		serviceName, date, startTime, price, remindBeforeHours)
	if address != "" {
		fmt.Fprintf(&b, "\n\nAddress: %s", address)
	}
	if preparation != "" {
		fmt.Fprintf(&b, "\n\n%s", preparation)
	}
	return b.String()
}

// ClientCancelledByStaff tells the client their booking was cancelled by the salon.
func ClientCancelledByStaff(serviceName, date, startTime string) string {
	return fmt.Sprintf(
		"Your booking was cancelled by the salon.\n\nService: %s\nDate: %s\nTime: %s\n\nOpen the app to book again.",
		serviceName, date, startTime,
	)
}

// ClientRescheduled tells the client their booking moved to a new slot.
func ClientRescheduled(serviceName, oldDate, oldTime, newDate, newTime string) string {
	return fmt.Sprintf(
		"🔁 Your booking was rescheduled.\n\nService: %s\nWas: %s %s\nNow: %s %s",
		serviceName, oldDate, oldTime, newDate, newTime,
	)
}

// AdminRescheduled is the staff record of a reschedule.
func AdminRescheduled(firstName, username, phone, serviceName, oldDate, oldTime, newDate, newTime string) string {
	return fmt.Sprintf(
		"🔁 Booking rescheduled\n\n%s\nService: %s\nWas: %s %s\nNow: %s %s",
		formatClientInfo(firstName, username, phone), serviceName, oldDate, oldTime, newDate, newTime,
	)
}

// Reminder is the pre-visit reminder sent to the client.
func Reminder(serviceName, startTime, address string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⏰ Reminder!\n\nYou have a booking today:\nService: %s\nTime: %s", serviceName, startTime)
	if address != "" {
		fmt.Fprintf(&b, "\n\nAddress: %s", address)
	}
	b.WriteString("\n\nSee you soon!")
	return b.String()
}

// PostSession is the thank-you message sent after a completed visit.
func PostSession(serviceName string) string {
	return fmt.Sprintf(
		"Thank you for your visit! 🙏\n\nWe hope you enjoyed your “%s” session.\nOpen the app to book again.",
		serviceName,
	)
}

// SummaryPages builds the morning digest, split into messages that stay
// under the character budget. Entries must already be ordered by start
// time.
func SummaryPages(date string, entries []string) []string {
	if len(entries) == 0 {
		return []string{fmt.Sprintf("☀️ Good morning!\n\nNo bookings for today (%s).", date)}
	}

	header := fmt.Sprintf("☀️ Good morning!\n\nBookings for today (%s):\n", date)
	footer := fmt.Sprintf("\nTotal: %d", len(entries))

	var pages []string
	current := header
	for _, line := range entries {
		if len(current)+len(line)+len(footer)+1 > summaryCharBudget {
			pages = append(pages, strings.TrimRight(current, "\n"))
			current = ""
		}
		current += line + "\n"
	}
	current += footer
	return append(pages, current)
}

// SummaryEntry renders one digest line.
func SummaryEntry(index int, startTime, clientName, serviceName string) string {
	return fmt.Sprintf("%d. %s — %s, %s", index, startTime, clientName, serviceName)
}
