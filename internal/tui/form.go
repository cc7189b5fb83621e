package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"plantsel/internal/models"
	"plantsel/internal/store"
)

// Form field order: text inputs first, then the cycled category and
// subcategory rows, then the colour row.
const (
	fieldCommon = iota
	fieldBotanical
	fieldHeight
	fieldWidth
	fieldImageURL
	fieldNotes
	fieldCategory
	fieldSubCategory
	fieldColours
	fieldCount
)

type plantForm struct {
	editID      string
	inputs      []textinput.Model
	category    string
	subCategory string
	colours     map[string]struct{}
	focus       int
}

func newPlantForm(plant *models.Plant) *plantForm {
	labels := []string{"Common name *", "Botanical name *", "Height", "Width", "Image URL", "Notes"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		input := textinput.New()
		input.Placeholder = label
		input.CharLimit = 200
		inputs[i] = input
	}

	form := &plantForm{
		inputs:   inputs,
		category: models.CategoryNames[0],
		colours:  make(map[string]struct{}),
	}
	form.subCategory = firstSubCategory(form.category)

	if plant != nil {
		form.editID = plant.ID
		inputs[fieldCommon].SetValue(plant.CommonName)
		inputs[fieldBotanical].SetValue(plant.BotanicalName)
		inputs[fieldHeight].SetValue(plant.Height)
		inputs[fieldWidth].SetValue(plant.Width)
		inputs[fieldImageURL].SetValue(plant.ImageURL)
		inputs[fieldNotes].SetValue(plant.Notes)
		if plant.Category != "" {
			form.category = plant.Category
		}
		form.subCategory = plant.SubCategory
		for _, c := range plant.ColourTags {
			form.colours[c] = struct{}{}
		}
	}

	form.inputs[fieldCommon].Focus()
	return form
}

func firstSubCategory(category string) string {
	if subs := models.SubCategoriesFor(category); len(subs) > 0 {
		return subs[0]
	}
	return ""
}

func (f *plantForm) input() store.PlantInput {
	colours := make([]string, 0, len(f.colours))
	for _, c := range models.ColourOptions {
		if _, ok := f.colours[c]; ok {
			colours = append(colours, c)
		}
	}
	return store.PlantInput{
		CommonName:    f.inputs[fieldCommon].Value(),
		BotanicalName: f.inputs[fieldBotanical].Value(),
		Category:      f.category,
		SubCategory:   f.subCategory,
		Height:        f.inputs[fieldHeight].Value(),
		Width:         f.inputs[fieldWidth].Value(),
		ImageURL:      f.inputs[fieldImageURL].Value(),
		Notes:         f.inputs[fieldNotes].Value(),
		ColourTags:    colours,
	}
}

func (f *plantForm) setFocus(index int) {
	f.focus = index
	for i := range f.inputs {
		if i == index {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// cycleCategory walks the category list; subcategory follows to the
// new category's first entry, colours reset with the change.
func (f *plantForm) cycleCategory(delta int) {
	index := 0
	for i, name := range models.CategoryNames {
		if name == f.category {
			index = i
			break
		}
	}
	index = (index + delta + len(models.CategoryNames)) % len(models.CategoryNames)
	f.category = models.CategoryNames[index]
	f.subCategory = firstSubCategory(f.category)
	f.colours = make(map[string]struct{})
}

func (f *plantForm) cycleSubCategory(delta int) {
	subs := models.SubCategoriesFor(f.category)
	if len(subs) == 0 {
		return
	}
	index := 0
	for i, name := range subs {
		if name == f.subCategory {
			index = i
			break
		}
	}
	f.subCategory = subs[(index+delta+len(subs))%len(subs)]
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.form
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.form = nil
		return m, nil
	case "tab", "down":
		form.setFocus((form.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		form.setFocus((form.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "enter":
		return m, m.saveFormCmd()
	case "left":
		switch form.focus {
		case fieldCategory:
			form.cycleCategory(-1)
			return m, nil
		case fieldSubCategory:
			form.cycleSubCategory(-1)
			return m, nil
		}
	case "right":
		switch form.focus {
		case fieldCategory:
			form.cycleCategory(1)
			return m, nil
		case fieldSubCategory:
			form.cycleSubCategory(1)
			return m, nil
		}
	}

	if form.focus == fieldColours {
		if colour, ok := colourForKey(msg.String()); ok {
			if _, set := form.colours[colour]; set {
				delete(form.colours, colour)
			} else {
				form.colours[colour] = struct{}{}
			}
			return m, nil
		}
	}

	if form.focus < len(form.inputs) {
		var cmd tea.Cmd
		form.inputs[form.focus], cmd = form.inputs[form.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) saveFormCmd() tea.Cmd {
	vm, form := m.vm, m.form
	input := form.input()
	if strings.TrimSpace(input.CommonName) == "" || strings.TrimSpace(input.BotanicalName) == "" {
		// Missing required fields: local no-op, nothing is sent.
		return nil
	}
	return func() tea.Msg {
		if form.editID != "" {
			return plantSavedMsg{err: vm.UpdatePlant(context.Background(), form.editID, input)}
		}
		_, err := vm.CreatePlant(context.Background(), input)
		return plantSavedMsg{err: err}
	}
}
