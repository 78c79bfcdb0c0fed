package missions

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/theme"
)

// MissionItem wraps a model.AssignedMission so it can be used in a
// bubbles/list.
type MissionItem struct {
	Assigned model.AssignedMission
}

// FilterValue returns the string used for fuzzy filtering.
func (i MissionItem) FilterValue() string { return i.title() }

func (i MissionItem) title() string {
	if i.Assigned.Mission != nil {
		return i.Assigned.Mission.Title
	}
	return fmt.Sprintf("mission #%d", i.Assigned.MissionID)
}

// ItemDelegate implements list.ItemDelegate for assigned missions.
type ItemDelegate struct {
	// showStudent is set in the professor's validation queue, where the
	// student name matters more than the reward.
	showStudent bool
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single mission line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MissionItem)
	if !ok {
		return
	}

	statusBadge := theme.MissionStatusStyle(mi.Assigned.Status).
		Render(statusLabel(mi.Assigned.Status))

	reward := ""
	if mission := mi.Assigned.Mission; mission != nil {
		reward = theme.DimmedStyle.Render(
			fmt.Sprintf("+%d XP  +%d 🪙", mission.XP, mission.Coins),
		)
	}

	trailer := reward
	if d.showStudent && mi.Assigned.StudentName != "" {
		trailer = theme.DimmedStyle.Render(mi.Assigned.StudentName)
	}

	line := fmt.Sprintf(
		"%s %s  %s  %s",
		statusBadge, mi.title(), trailer,
		theme.DimmedStyle.Render(relativeTime(mi.Assigned.AssignedAt)),
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// statusLabel maps a wire status to a short display label.
func statusLabel(status string) string {
	switch status {
	case model.MissionStatusPending:
		return "TODO"
	case model.MissionStatusSubmitted:
		return "SENT"
	case model.MissionStatusApproved:
		return "DONE"
	case model.MissionStatusRejected:
		return "FAIL"
	default:
		return "????"
	}
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
