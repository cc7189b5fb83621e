package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"plantsel/internal/export"
)

func (m Model) handleRosterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.renaming {
		switch msg.String() {
		case "enter":
			m.renaming = false
			m.renameInput.Blur()
			if ticket, ok := m.selectedRosterTicket(); ok {
				return m, m.renameCmd(ticket.ID, m.renameInput.Value())
			}
			return m, nil
		case "esc":
			m.renaming = false
			m.renameInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.renameInput, cmd = m.renameInput.Update(msg)
		return m, cmd
	}

	role := m.vm.Role()
	switch msg.String() {
	case "esc", "q", "r":
		m.mode = modeBrowse
		m.inviteLink = ""
		return m, nil
	case "up", "k":
		if m.rosterCursor > 0 {
			m.rosterCursor--
		}
		return m, nil
	case "down", "j":
		if m.rosterCursor < len(m.vm.Roster())-1 {
			m.rosterCursor++
		}
		return m, nil
	case "i":
		if role.CanMutateCatalog() {
			return m, m.inviteCmd()
		}
		return m, nil
	case "y":
		if m.inviteLink != "" {
			link := m.inviteLink
			return m, func() tea.Msg {
				return copiedMsg{err: export.CopyText(link)}
			}
		}
		return m, nil
	case "n":
		if role.CanMutateCatalog() {
			if ticket, ok := m.selectedRosterTicket(); ok {
				m.renaming = true
				m.renameInput.SetValue(ticket.OwnerName)
				m.renameInput.Focus()
			}
		}
		return m, nil
	case "d":
		if role.CanMutateCatalog() {
			if ticket, ok := m.selectedRosterTicket(); ok {
				holder := ticket.OwnerName
				if holder == "" {
					holder = "this unclaimed ticket"
				}
				m.confirm = confirmDialog{
					prompt: "Remove " + holder + "? Their favourites will also be deleted.",
					action: m.deleteTicketCmd(ticket.ID),
					back:   modeRoster,
				}
				m.mode = modeConfirm
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) selectedRosterTicket() (ticket rosterTicket, ok bool) {
	roster := m.vm.Roster()
	if m.rosterCursor < 0 || m.rosterCursor >= len(roster) {
		return rosterTicket{}, false
	}
	t := roster[m.rosterCursor]
	return rosterTicket{ID: t.ID, Code: t.Code, OwnerName: t.OwnerName}, true
}

type rosterTicket struct {
	ID        string
	Code      string
	OwnerName string
}
