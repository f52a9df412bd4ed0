package views

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"digitdraw/internal/viewmodel"
)

// HistoryPage renders the standalone history table.
func HistoryPage(data viewmodel.HistoryPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<meta http-equiv="refresh" content="15">`+
			`<title>`+templ.EscapeString(data.Title)+`</title>`+
			`<link rel="stylesheet" href="/app.css"></head><body><main class="history">`); err != nil {
			return err
		}
		if err := CurrentPanel(data).Render(ctx, w); err != nil {
			return err
		}
		if err := HistoryTable(data.Entries).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// CurrentPanel renders the period, countdown and revealed digit.
func CurrentPanel(data viewmodel.HistoryPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="current"><h1>%s</h1><p class="date">%s %s</p>`+
				`<p class="period">Period <strong>%s</strong></p>`+
				`<p class="countdown">%ds</p><p class="number">%s</p>`+
				`<p class="policy">%s</p></section>`,
			templ.EscapeString(data.Title),
			templ.EscapeString(data.Date),
			templ.EscapeString(data.Time),
			templ.EscapeString(data.Period),
			data.Countdown,
			templ.EscapeString(data.Number),
			templ.EscapeString(data.Policy),
		)
		return err
	})
}

// HistoryTable renders recorded rounds, newest first.
func HistoryTable(entries []viewmodel.HistoryEntry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(entries) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No rounds recorded yet.</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<table><thead><tr><th>Period</th><th>Number</th><th>Time</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := io.WriteString(w, `<tr><td>`+templ.EscapeString(e.Period)+
				`</td><td class="n`+strconv.Itoa(e.Number)+`">`+strconv.Itoa(e.Number)+
				`</td><td>`+templ.EscapeString(e.Time)+`</td></tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}
