package tui

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/felixgeelhaar/studiorate/pkg/domain/social"
)

// RenderSocialButton draws b as a coloured block wrapped in an OSC 8
// hyperlink, so terminals that support it open Href on click.
func RenderSocialButton(b social.Button, focused bool) string {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1).
		Align(lipgloss.Center)
	if b.Color != "" {
		style = style.Background(lipgloss.Color(b.Color))
	}
	if focused {
		style = style.Underline(true)
	}

	label := b.Label
	if b.HasIcon() {
		label = b.Icon + " " + label
	}
	return ansi.SetHyperlink(b.Href) + style.Render(label) + ansi.ResetHyperlink()
}

// RenderSocialRow lays buttons out horizontally.
func RenderSocialRow(buttons []social.Button, focus int) string {
	cells := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			cells = append(cells, " ")
		}
		cells = append(cells, RenderSocialButton(b, i == focus))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// isValidBrowserURL accepts plain http(s) URLs with nothing a shell could
// interpret.
func isValidBrowserURL(raw string) bool {
	if strings.ContainsAny(raw, " \t\n\r;|&`$<>\"'\\") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// openBrowser hands url to the platform's opener in a new context.
var openBrowser = func(raw string) error {
	if !isValidBrowserURL(raw) {
		return fmt.Errorf("refusing to open %q", raw)
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", raw)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", raw)
	default:
		cmd = exec.Command("xdg-open", raw)
	}
	return cmd.Start()
}
