// Package termui renders dashboard data for the terminal with lipgloss.
package termui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"wgdash/internal/app/dashboard"
	"wgdash/internal/app/status"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	selfStyle   = cellStyle.Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)

	livenessColors = map[status.Liveness]lipgloss.AdaptiveColor{
		status.Live:    {Light: "28", Dark: "42"},
		status.Dead:    {Light: "160", Dark: "203"},
		status.Unknown: {Light: "245", Dark: "243"},
	}
)

// Dot returns the colored liveness marker.
func Dot(l status.Liveness) string {
	return lipgloss.NewStyle().Foreground(livenessColors[l]).Render("●")
}

// PeerTable renders one row per peer card.
func PeerTable(peers []dashboard.PeerView) string {
	rows := make([][]string, 0, len(peers))
	for _, p := range peers {
		name := p.Name
		if p.Self {
			name += " (you)"
		}
		rows = append(rows, []string{Dot(p.Liveness), name, p.IPAddress, p.PublicKey, p.LastSeen})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("", "NAME", "IP", "PUBLIC KEY", "LAST SEEN").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(peers) && peers[row].Self:
				return selfStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

// RenderView writes the account header and the peer table.
func RenderView(w io.Writer, v *dashboard.View) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", v.User.Name(), v.User.DiscordID)))
	b.WriteString("\n")

	if v.Self != nil {
		fmt.Fprintf(&b, "IP %s  %s\n", v.Self.IPAddress, Dot(v.Self.Liveness))
	}

	if len(v.Peers) == 0 {
		b.WriteString(mutedStyle.Render("No peers."))
		b.WriteString("\n")
	} else {
		b.WriteString(PeerTable(v.Peers))
		b.WriteString("\n")
	}

	if !v.StatusLoaded {
		b.WriteString(mutedStyle.Render("Waiting for live status..."))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
