package tui

import (
	"fmt"
	"strings"

	"plantsel/internal/catalog"
	"plantsel/internal/models"
)

func (m Model) View() string {
	switch m.mode {
	case modeLocked:
		return m.viewLocked()
	case modeClaim:
		return m.viewClaim()
	case modeDetail:
		return m.viewDetail()
	case modeForm:
		return m.viewForm()
	case modeRoster:
		return m.viewRoster()
	case modeConfirm:
		return m.viewConfirm()
	default:
		return m.viewBrowse()
	}
}

func (m Model) viewLocked() string {
	var b strings.Builder
	b.WriteString(lockedStyle.Render("Invitation Only") + "\n\n")
	b.WriteString("This plant library is private. You'll need an invite link to access it.\n")
	b.WriteString(subtitleStyle.Render("Run plantsel browse with an invite address to gain access.") + "\n\n")
	b.WriteString(helpStyle.Render("q quit"))
	return b.String()
}

func (m Model) viewClaim() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome!") + "\n")
	b.WriteString("Please enter your name to claim this ticket\n\n")
	b.WriteString(m.claimInput.View() + "\n\n")
	b.WriteString(helpStyle.Render("enter continue - esc skip for now"))
	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Plant Selector"))
	if ticket := m.vm.Ticket(); ticket != nil && ticket.OwnerName != "" {
		b.WriteString(subtitleStyle.Render("  Welcome, " + ticket.OwnerName))
	}
	if m.vm.AdminView() {
		b.WriteString("  " + adminBadgeStyle.Render("[admin mode]"))
	}
	b.WriteString("\n")

	browse, favs := tabStyle, tabStyle
	if m.view == catalog.ViewBrowse {
		browse = activeTabStyle
	} else {
		favs = activeTabStyle
	}
	b.WriteString(browse.Render("Browse") + favs.Render(fmt.Sprintf("Favourites (%d)", m.vm.FavouriteCount())) + "\n")

	if m.vm.Role().CanMutateCatalog() {
		b.WriteString(m.viewAdminPanel())
	}

	if m.view == catalog.ViewBrowse {
		b.WriteString(m.viewFilterBar())
	}

	plants := m.visible()
	if !m.loaded {
		b.WriteString("\n" + statusStyle.Render("Loading...") + "\n")
	} else if len(plants) == 0 {
		if m.view == catalog.ViewFavourites {
			b.WriteString("\n" + statusStyle.Render("No favourites yet") + "\n")
		} else {
			b.WriteString("\n" + statusStyle.Render("No plants found") + "\n")
		}
	} else {
		b.WriteString("\n")
		for i, plant := range plants {
			b.WriteString(m.renderPlantRow(plant, i == m.cursor))
		}
	}

	b.WriteString("\n" + m.statusLine())
	b.WriteString("\n" + helpStyle.Render(m.browseHelp()))
	return b.String()
}

func (m Model) viewAdminPanel() string {
	claimed := m.vm.ClaimedCount()
	total := len(m.vm.Roster())
	stats := fmt.Sprintf("Plants: %d   Students: %d claimed / %d total", len(m.vm.Plants()), claimed, total)
	return panelStyle.Render(stats) + "\n"
}

func (m Model) viewFilterBar() string {
	var parts []string
	if m.searching {
		parts = append(parts, m.search.View())
	} else if m.filters.Search != "" {
		parts = append(parts, "search: "+m.filters.Search)
	}
	if m.filters.Category != "" {
		parts = append(parts, "category: "+m.filters.Category)
		if m.filters.SubCategory != "" {
			parts = append(parts, "sub: "+m.filters.SubCategory)
		}
	}
	if m.filters.Category == models.CategoryColours && len(m.filters.Colours) > 0 {
		var colours []string
		for _, c := range models.ColourOptions {
			if _, ok := m.filters.Colours[c]; ok {
				colours = append(colours, c)
			}
		}
		parts = append(parts, "colours: "+strings.Join(colours, ","))
	}
	if len(parts) == 0 {
		return ""
	}
	return statusStyle.Render(strings.Join(parts, "   ")) + "\n"
}

func (m Model) renderPlantRow(plant models.Plant, selected bool) string {
	mark := "  "
	if m.vm.IsFavourite(plant.ID) {
		mark = favouriteMarkStyle.Render("♥ ")
	}
	line := fmt.Sprintf("%s%s  %s  %s",
		mark,
		plant.CommonName,
		botanicalStyle.Render(plant.BotanicalName),
		statusStyle.Render(plant.Height+" H x "+plant.Width+" W"))
	if selected {
		line = selectedRowStyle.Render("> ") + line
	} else {
		line = "  " + line
	}
	return line + "\n"
}

func (m Model) viewDetail() string {
	plant := m.detail
	if plant == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(plant.CommonName) + "\n")
	b.WriteString(botanicalStyle.Render(plant.BotanicalName) + "\n\n")
	b.WriteString(fmt.Sprintf("Height: %s   Width: %s\n", plant.Height, plant.Width))
	b.WriteString(chipStyle.Render(plant.Category))
	if plant.SubCategory != "" {
		b.WriteString("  " + chipStyle.Render(plant.SubCategory))
	}
	if len(plant.ColourTags) > 0 {
		b.WriteString("  " + statusStyle.Render(strings.Join(plant.ColourTags, ", ")))
	}
	b.WriteString("\n")
	if plant.Notes != "" {
		b.WriteString("\n" + plant.Notes + "\n")
	}
	if m.vm.IsFavourite(plant.ID) {
		b.WriteString("\n" + favouriteMarkStyle.Render("♥ In your favourites") + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("f favourite - esc back"))
	return b.String()
}

func (m Model) viewForm() string {
	form := m.form
	if form == nil {
		return ""
	}
	var b strings.Builder
	if form.editID != "" {
		b.WriteString(titleStyle.Render("Edit Plant") + "\n")
	} else {
		b.WriteString(titleStyle.Render("Add New Plant") + "\n")
	}
	for i := range form.inputs {
		b.WriteString(m.formRowPrefix(i) + form.inputs[i].View() + "\n")
	}
	b.WriteString(m.formRowPrefix(fieldCategory) + "Category: " + form.category + "\n")
	b.WriteString(m.formRowPrefix(fieldSubCategory) + "Sub-category: " + form.subCategory + "\n")

	var colours []string
	for _, c := range models.ColourOptions {
		if _, ok := form.colours[c]; ok {
			colours = append(colours, chipStyle.Render(c))
		} else {
			colours = append(colours, statusStyle.Render(c))
		}
	}
	b.WriteString(m.formRowPrefix(fieldColours) + "Colours: " + strings.Join(colours, " ") + "\n")

	if m.errText != "" {
		b.WriteString("\n" + dangerStyle.Render(m.errText) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab next field - left/right cycle - 1-7 colours - enter save - esc cancel"))
	return b.String()
}

func (m Model) formRowPrefix(index int) string {
	if m.form.focus == index {
		return selectedRowStyle.Render("> ")
	}
	return "  "
}

func (m Model) viewRoster() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Manage Students") + "\n")
	roster := m.vm.Roster()
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d total, %d claimed", len(roster), m.vm.ClaimedCount())) + "\n\n")

	if len(roster) == 0 {
		b.WriteString(statusStyle.Render("No students yet") + "\n")
	}
	for i, ticket := range roster {
		name := ticket.OwnerName
		if name == "" {
			name = subtitleStyle.Render("Unclaimed")
		}
		line := fmt.Sprintf("%s  %s", name, statusStyle.Render(ticket.Code))
		if i == m.rosterCursor {
			line = selectedRowStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.renaming {
		b.WriteString("\n" + m.renameInput.View() + "\n")
	}
	if m.inviteLink != "" {
		b.WriteString("\n" + panelStyle.Render("Invite: "+m.inviteLink) + "\n")
	}

	b.WriteString("\n" + m.statusLine())
	help := "esc back"
	if m.vm.Role().CanMutateCatalog() {
		help = "i invite - y copy link - n rename - d remove - " + help
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(dangerStyle.Render(m.confirm.prompt) + "\n\n")
	b.WriteString(helpStyle.Render("y confirm - n cancel"))
	return b.String()
}

func (m Model) statusLine() string {
	if m.errText != "" {
		return dangerStyle.Render(m.errText)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) browseHelp() string {
	help := "tab favourites - / search - c category - v sub - f favourite - enter detail - p pdf - y copy - q quit"
	role := m.vm.Role()
	if role.CanViewRoster() {
		help += " - A admin - r roster"
	}
	if role.CanMutateCatalog() {
		help += " - a add - e edit - d delete"
	}
	return help
}
