package viewmodel

// NumberPlaceholder stands in for the digit before the first reveal.
const NumberPlaceholder = "-"

// HistoryEntry is one recorded round as sent to clients.
type HistoryEntry struct {
	Period string `json:"period"`
	Number int    `json:"number"`
	Time   string `json:"time"`
}

// State is the body of GET /state and of every live push.
// Number is an int once a round is revealed, NumberPlaceholder before.
type State struct {
	Date      string         `json:"date"`
	Time      string         `json:"time"`
	Countdown int            `json:"countdown"`
	Period    string         `json:"period"`
	Number    any            `json:"number"`
	History   []HistoryEntry `json:"history"`
}

// Result is the body of GET /api/result.
type Result struct {
	Period  string         `json:"period"`
	Number  any            `json:"number"`
	Preview bool           `json:"preview"`
	Seconds int            `json:"seconds"`
	History []HistoryEntry `json:"history"`
}

// HistoryPage holds data for the HTML history page.
type HistoryPage struct {
	Title     string
	Date      string
	Time      string
	Period    string
	Countdown int
	Number    string
	Policy    string
	Entries   []HistoryEntry
}
