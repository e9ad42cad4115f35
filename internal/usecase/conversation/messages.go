package conversation

const (
	msgInvalidInput = "Sorry, I couldn't read that message. Please send a text message."
	msgApology      = "Sorry, something went wrong on our side. Please try again in a moment."

	msgHelp = "Here's what I can do:\n" +
		"- \"join queue\" to join the waiting list\n" +
		"- \"queue status\" to see your position\n" +
		"- \"leave queue\" to give up your spot\n" +
		"- \"make booking\" to book a table\n" +
		"- \"my booking\" to see your bookings\n" +
		"- \"cancel booking\" to cancel your latest booking\n" +
		"Reply \"cancel\" at any time to stop a request."

	msgAskLocation        = "Which restaurant would you like to queue at?"
	msgAskLocationAgain   = "Please send the restaurant name (at least 3 characters)."
	msgLocationUnreadable = "I couldn't read that restaurant name. Please send it using letters or numbers."
	msgAskPartySize       = "How many people are in your party? (1-20)"
	msgAskPartySizeAgain  = "Please reply with a number between 1 and 20."
	msgAskSpecialRequests = "Any special requests? Reply \"none\" if not."
	msgQueueCancelled     = "Your queue request has been cancelled. Type \"join queue\" to start again."
	msgQueueReset         = "Sorry, I lost track of your queue request. Type \"join queue\" to start again."

	msgAskDate          = "What date would you like to book? (today, tomorrow or YYYY-MM-DD)"
	msgAskDateAgain     = "Please send the date as today, tomorrow or YYYY-MM-DD."
	msgAskTime          = "What time? (e.g. 19:30 or 7pm)"
	msgAskTimeAgain     = "Please send a time like 19:30 or 7pm."
	msgAskBookLocation  = "Which restaurant would you like to book?"
	msgAskSection       = "Which section would you prefer? (e.g. inside, patio)"
	msgAskSectionAgain  = "Please send a section name (at least 2 characters)."
	msgAskGuests        = "How many guests? (1-20)"
	msgBookingCancelled = "Your booking request has been cancelled. Type \"make booking\" to start again."
	msgBookingReset     = "Sorry, I lost track of your booking request. Type \"make booking\" to start again."

	msgNotInQueue       = "You're not in a queue today. Type \"join queue\" to join."
	msgLeftQueue        = "You've left the queue. Hope to see you soon!"
	msgNoBookings       = "You have no upcoming bookings. Type \"make booking\" to book a table."
	msgNoBookingsCancel = "You have no upcoming bookings to cancel."

	msgAdminNoLocation = "No location is linked to your account."
	msgAdminQueueEmpty = "Nobody is waiting right now."
	msgAdminDenied     = "You can't manage %s on your current plan: %s."
)
