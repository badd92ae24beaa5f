// Package tui hosts the rating widget in a terminal: a studio page with
// social buttons and a modal rating dialog.
package tui

import "github.com/charmbracelet/lipgloss"

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#1F2937")).
	Padding(1, 2).
	Width(72)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#111827")).
	PaddingLeft(1).
	PaddingRight(1)

var subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

var questionStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("252")).
	Padding(0, 1)

var focusedQuestionStyle = questionStyle.
	BorderForeground(lipgloss.Color("#FDE047"))

var starFilled = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#111827")).
	Background(lipgloss.Color("#FDE047")).
	Padding(0, 1)

var starEmpty = lipgloss.NewStyle().
	Foreground(lipgloss.Color("245")).
	Background(lipgloss.Color("#FFFFFF")).
	Padding(0, 1)

var starCursor = lipgloss.NewStyle().Underline(true)

var primaryButton = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(lipgloss.Color("#374151")).
	Padding(0, 2)

var secondaryButton = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#111827")).
	Background(lipgloss.Color("#F3F4F6")).
	Padding(0, 2)

var disabledButton = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	Padding(0, 2)

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
var successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
