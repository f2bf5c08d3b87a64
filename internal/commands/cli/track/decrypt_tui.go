package track

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTypeRadio = iota
	fieldTypeHex
)

type option struct {
	value       string
	description string
}

type fieldConfig struct {
	name        string
	description string
	fieldType   int
	options     []option // For radio fields.
	selected    int      // For radio fields.
	hexValue    string   // For hex fields.
	maxLen      int      // For hex fields, 0 means unlimited.
}

// decryptForm holds the values collected by the form.
type decryptForm struct {
	ksn  string
	data string
	mode string
}

type decryptFormModel struct {
	form         decryptForm
	currentField int
	fields       []fieldConfig
	err          string
	done         bool
	cancelled    bool
}

// newDecryptFormModel creates the TUI model, prefilled from the command flags.
func newDecryptFormModel(ksn, data, mode string) decryptFormModel {
	selected := 0
	if strings.EqualFold(mode, "cbc") {
		selected = 1
	}

	fields := []fieldConfig{
		{
			name:        "KSN",
			description: "Key Serial Number (20 hex characters)",
			fieldType:   fieldTypeHex,
			hexValue:    strings.ToUpper(ksn),
			maxLen:      20,
		},
		{
			name:        "Data",
			description: "Encrypted track (hex, multiple of 32 characters)",
			fieldType:   fieldTypeHex,
			hexValue:    strings.ToUpper(data),
		},
		{
			name:        "Mode",
			description: "AES mode",
			fieldType:   fieldTypeRadio,
			options: []option{
				{"ecb", "Electronic Codebook"},
				{"cbc", "Cipher Block Chaining"},
			},
			selected: selected,
		},
	}

	return decryptFormModel{fields: fields}
}

// Init initializes the model.
func (m decryptFormModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m decryptFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	currentField := &m.fields[m.currentField]
	m.err = ""

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true

		return m, tea.Quit
	case "enter":
		if problem := m.validate(currentField); problem != "" {
			m.err = problem

			return m, nil
		}
		if m.currentField >= len(m.fields)-1 {
			m.updateFormFromFields()
			m.done = true

			return m, tea.Quit
		}
		m.currentField++
	case "tab":
		if m.currentField < len(m.fields)-1 {
			m.currentField++
		}
	case "shift+tab":
		if m.currentField > 0 {
			m.currentField--
		}
	case "up":
		if currentField.fieldType == fieldTypeRadio && currentField.selected > 0 {
			currentField.selected--
		}
	case "down":
		if currentField.fieldType == fieldTypeRadio && currentField.selected < len(currentField.options)-1 {
			currentField.selected++
		}
	case "backspace":
		if currentField.fieldType == fieldTypeHex && len(currentField.hexValue) > 0 {
			currentField.hexValue = currentField.hexValue[:len(currentField.hexValue)-1]
		}
	default:
		if currentField.fieldType == fieldTypeHex {
			m.handleHexInput(keyMsg.String())
		}
	}

	return m, nil
}

// handleHexInput appends typed or pasted hex digits to the current field.
func (m *decryptFormModel) handleHexInput(input string) {
	currentField := &m.fields[m.currentField]
	for _, r := range strings.ToUpper(input) {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			continue
		}
		if currentField.maxLen > 0 && len(currentField.hexValue) >= currentField.maxLen {
			return
		}
		currentField.hexValue += string(r)
	}
}

// validate returns a message when the field cannot be confirmed yet.
func (m *decryptFormModel) validate(field *fieldConfig) string {
	if field.fieldType != fieldTypeHex {
		return ""
	}
	switch {
	case field.maxLen > 0 && len(field.hexValue) != field.maxLen:
		return fmt.Sprintf("%s must be %d hex characters", field.name, field.maxLen)
	case field.maxLen == 0 && (len(field.hexValue) == 0 || len(field.hexValue)%32 != 0):
		return fmt.Sprintf("%s must be a non-empty multiple of 32 hex characters", field.name)
	}

	return ""
}

// updateFormFromFields copies the field values into the form.
func (m *decryptFormModel) updateFormFromFields() {
	for _, field := range m.fields {
		switch field.name {
		case "KSN":
			m.form.ksn = field.hexValue
		case "Data":
			m.form.data = field.hexValue
		case "Mode":
			m.form.mode = field.options[field.selected].value
		}
	}
}

// View renders the current state of the model.
func (m decryptFormModel) View() string {
	if m.done {
		return "Inputs captured.\n"
	}

	if m.cancelled {
		return "Operation cancelled.\n"
	}

	var sb strings.Builder
	sb.WriteString("Decrypt Track Data\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&sb, "Field %d of %d\n\n", m.currentField+1, len(m.fields))

	currentField := m.fields[m.currentField]
	fmt.Fprintf(&sb, "▶ %s: %s\n\n", currentField.name, currentField.description)

	switch currentField.fieldType {
	case fieldTypeRadio:
		for j, option := range currentField.options {
			selector := "  ○ "
			if j == currentField.selected {
				selector = "  ● "
			}
			fmt.Fprintf(&sb, "%s%s - %s\n", selector, option.value, option.description)
		}
	case fieldTypeHex:
		fmt.Fprintf(&sb, "  [ %s ] (%d chars)\n", currentField.hexValue, len(currentField.hexValue))
	}

	if m.err != "" {
		fmt.Fprintf(&sb, "\n  ! %s\n", m.err)
	}
	sb.WriteString("\n")

	if m.currentField > 0 {
		sb.WriteString("Completed fields:\n")
		for i := 0; i < m.currentField; i++ {
			field := m.fields[i]
			if field.fieldType == fieldTypeRadio {
				fmt.Fprintf(&sb, "  %s: %s\n", field.name, field.options[field.selected].value)
			} else {
				fmt.Fprintf(&sb, "  %s: %s\n", field.name, field.hexValue)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Navigation:\n")
	sb.WriteString("  Tab/Shift+Tab: Next/Previous field\n")
	sb.WriteString("  Enter: Confirm and continue\n")
	if currentField.fieldType == fieldTypeRadio {
		sb.WriteString("  ↑/↓: Select option\n")
	} else {
		sb.WriteString("  0-9, A-F: Hex input, Backspace: Delete\n")
	}
	sb.WriteString("  Esc or Ctrl+C: Quit\n")

	return sb.String()
}

// runDecryptForm starts the interactive form for the decryption inputs.
func runDecryptForm(ksn, data, mode string) (decryptForm, bool, error) {
	model := newDecryptFormModel(ksn, data, mode)

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return decryptForm{}, false, err
	}

	m, ok := finalModel.(decryptFormModel)
	if !ok {
		return decryptForm{}, false, fmt.Errorf("unexpected model type %T", finalModel)
	}

	return m.form, m.done && !m.cancelled, nil
}
