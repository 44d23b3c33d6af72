package dashboard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0xPuncker/cron-dashboard/pkg/utils"
	"golang.org/x/text/cases"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	ansiReset   = "\x1b[0m"
	ansiDim     = "\x1b[2m"
	ansiBold    = "\x1b[1m"

	// neon-400, the badge and countdown color.
	highlight = "#4de3a2"
)

var icons = map[string]string{
	"bell":  "🔔",
	"cake":  "🎂",
	"clock": "🕒",
}

// Icon returns the glyph for a category icon identifier.
func Icon(name string) string {
	if glyph, ok := icons[name]; ok {
		return glyph
	}
	return icons["clock"]
}

// TerminalRenderer redraws the whole dashboard on every render.
type TerminalRenderer struct {
	out   io.Writer
	color bool
	upper cases.Caser
}

func NewTerminalRenderer(out io.Writer, color bool) *TerminalRenderer {
	return &TerminalRenderer{
		out:   out,
		color: color,
		upper: cases.Upper(utils.Locale),
	}
}

func (r *TerminalRenderer) Render(s Snapshot) error {
	w := bufio.NewWriter(r.out)

	if r.color {
		w.WriteString(clearScreen)
	}

	fmt.Fprintf(w, "%s📅 %s%s\n", r.style(ansiDim), r.upper.String("Cron Dashboard"), r.style(ansiReset))
	fmt.Fprintf(w, "%sAktive Cron-Jobs%s\n", r.style(ansiBold), r.style(ansiReset))
	fmt.Fprintf(w, "%sBehalte anstehende Aufgaben im Blick. Alle Zeiten werden in deutscher Zeit angezeigt.%s\n\n",
		r.style(ansiDim), r.style(ansiReset))

	if len(s.Cards) == 0 {
		fmt.Fprintf(w, "%sKeine aktiven Cron-Jobs.%s\n", r.style(ansiDim), r.style(ansiReset))
		return w.Flush()
	}

	for _, card := range s.Cards {
		r.writeCard(w, card)
	}

	return w.Flush()
}

func (r *TerminalRenderer) writeCard(w io.Writer, card Card) {
	icon := Icon(card.Category.Icon)

	fmt.Fprintf(w, "%s%s%s %s%s%s  %s[%s]%s\n",
		r.accent(card.Category.Accent), icon, r.style(ansiReset),
		r.style(ansiBold), card.Job.Name, r.style(ansiReset),
		r.accent(highlight), r.upper.String("Aktiv"), r.style(ansiReset))
	fmt.Fprintf(w, "   %sID: %s%s\n", r.style(ansiDim), card.Job.ID, r.style(ansiReset))
	r.writeRow(w, "Kategorie", card.Category.Label, "")
	r.writeRow(w, "Nächste Ausführung", card.NextRun, "")
	r.writeRow(w, "Countdown", card.Countdown, highlight)
	if card.CalendarURL != "" {
		fmt.Fprintf(w, "   %s%s%s\n", r.style(ansiDim), card.CalendarURL, r.style(ansiReset))
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) writeRow(w io.Writer, label, value, color string) {
	valueStyle := r.style(ansiBold)
	if color != "" {
		valueStyle = r.accent(color)
	}
	fmt.Fprintf(w, "   %s%-20s%s %s%s%s\n",
		r.style(ansiDim), r.upper.String(label), r.style(ansiReset),
		valueStyle, value, r.style(ansiReset))
}

func (r *TerminalRenderer) style(code string) string {
	if !r.color {
		return ""
	}
	return code
}

// accent turns a #rrggbb color into a 24-bit foreground escape.
func (r *TerminalRenderer) accent(hex string) string {
	if !r.color {
		return ""
	}
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", rgb>>16&0xff, rgb>>8&0xff, rgb&0xff)
}
