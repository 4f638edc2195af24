package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallworks/mallboard/internal/action"
	"github.com/mallworks/mallboard/internal/mall"
)

type formKind int

const (
	formUser formKind = iota
	formShop
	formProduct
)

type formField struct {
	label string
	input textinput.Model
}

// formModel is the state of the create/edit modal. It only collects text;
// payload validation happens when the coordinator submits, so a rejected
// form stays open with the rejection message.
type formModel struct {
	kind       formKind
	title      string
	editID     string // empty means create
	fields     []formField
	focus      int
	errMsg     string
	submitting bool
}

func newField(label, value string, secret bool) formField {
	ti := textinput.New()
	ti.Placeholder = strings.ToLower(label)
	ti.CharLimit = 128
	ti.SetValue(value)
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}
	return formField{label: label, input: ti}
}

func newForm(kind formKind, title, editID string, fields []formField) *formModel {
	f := &formModel{kind: kind, title: title, editID: editID, fields: fields}
	f.fields[0].input.Focus()
	return f
}

// newCreateForm builds an empty form for the active view's entity.
func (m Model) newCreateForm() *formModel {
	switch m.currentView {
	case ViewUsers:
		return newForm(formUser, "New user", "", []formField{
			newField("Email", "", false),
			newField("Name", "", false),
			newField("Password", "", true),
			newField("Phone", "", false),
			newField("Role", string(mall.DefaultRole), false),
		})
	case ViewShops:
		ownerID := ""
		if users := m.stores.Users.Items(); len(users) > 0 {
			ownerID = users[0].ID
		}
		return newForm(formShop, "New shop", "", []formField{
			newField("Shop name", "", false),
			newField("Description", "", false),
			newField("Owner user id", ownerID, false),
			newField("Contact number", "", false),
			newField("Address", "", false),
		})
	default:
		shopID := ""
		if shops := m.stores.Shops.Items(); len(shops) > 0 {
			shopID = shops[0].ID
		}
		return newForm(formProduct, "New product", "", []formField{
			newField("Product name", "", false),
			newField("Description", "", false),
			newField("Price", "", false),
			newField("Quantity", "", false),
			newField("Category", "", false),
			newField("Shop id", shopID, false),
		})
	}
}

// newEditForm builds a form prefilled from the highlighted row, or nil when
// nothing is selected.
func (m Model) newEditForm() *formModel {
	sel := m.selected[m.currentView]
	switch m.currentView {
	case ViewUsers:
		users := m.visibleUsers()
		if sel >= len(users) {
			return nil
		}
		u := users[sel]
		return newForm(formUser, "Edit "+u.Name, u.ID, []formField{
			newField("Name", u.Name, false),
			newField("Password (blank keeps current)", "", true),
			newField("Phone", u.Phone, false),
			newField("Role", string(u.Role), false),
		})
	case ViewShops:
		shops := m.visibleShops()
		if sel >= len(shops) {
			return nil
		}
		s := shops[sel]
		return newForm(formShop, "Edit "+s.ShopName, s.ID, []formField{
			newField("Shop name", s.ShopName, false),
			newField("Description", s.Description, false),
			newField("Owner user id", s.OwnerUserID, false),
			newField("Contact number", s.ContactNumber, false),
			newField("Address", s.Address, false),
		})
	default:
		products := m.visibleProducts()
		if sel >= len(products) {
			return nil
		}
		p := products[sel]
		return newForm(formProduct, "Edit "+p.ProductName, p.ID, []formField{
			newField("Product name", p.ProductName, false),
			newField("Description", p.Description, false),
			newField("Price", formatPrice(p.Price), false),
			newField("Quantity", strconv.Itoa(p.Quantity), false),
			newField("Category", p.Category, false),
			newField("Shop id", p.ShopID, false),
		})
	}
}

// handleFormKey processes keyboard input while a form modal is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.mode = modeList
		return m, nil
	}
	if f.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeList
		return m, nil

	case "tab", "down":
		f.setFocus((f.focus + 1) % len(f.fields))
		return m, textinput.Blink

	case "shift+tab", "up":
		f.setFocus((f.focus + len(f.fields) - 1) % len(f.fields))
		return m, textinput.Blink

	case "enter":
		if f.focus < len(f.fields)-1 {
			f.setFocus(f.focus + 1)
			return m, textinput.Blink
		}
		return m.submitForm()

	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return m, cmd
}

func (f *formModel) setFocus(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = i
	f.fields[i].input.Focus()
}

func (f *formModel) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// submitForm builds the payload and hands it to the coordinator. Only
// numeric parsing happens here; the coordinator validates the payload before
// any request goes out.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	run, err := f.buildSubmit(m.ctx, m.coord)
	if err != nil {
		f.errMsg = err.Error()
		return m, nil
	}
	f.submitting = true
	f.errMsg = ""
	return m, mutationCmd(run)
}

type submitFunc func() action.Notice

func (f *formModel) buildSubmit(ctx context.Context, coord *action.Coordinator) (submitFunc, error) {
	switch f.kind {
	case formUser:
		if f.editID == "" {
			payload := mall.CreateUser{
				Email:    f.value(0),
				Name:     f.value(1),
				Password: f.value(2),
				Phone:    f.value(3),
				Role:     mall.Role(f.value(4)),
			}
			return func() action.Notice { return coord.CreateUser(ctx, payload) }, nil
		}
		payload := mall.UpdateUser{
			Name:     f.value(0),
			Password: f.value(1),
			Phone:    f.value(2),
			Role:     mall.Role(f.value(3)),
		}
		id := f.editID
		return func() action.Notice { return coord.UpdateUser(ctx, id, payload) }, nil

	case formShop:
		if f.editID == "" {
			payload := mall.CreateShop{
				ShopName:      f.value(0),
				Description:   f.value(1),
				OwnerUserID:   f.value(2),
				ContactNumber: f.value(3),
				Address:       f.value(4),
			}
			return func() action.Notice { return coord.CreateShop(ctx, payload) }, nil
		}
		payload := mall.UpdateShop{
			ShopName:      f.value(0),
			Description:   f.value(1),
			OwnerUserID:   f.value(2),
			ContactNumber: f.value(3),
			Address:       f.value(4),
		}
		id := f.editID
		return func() action.Notice { return coord.UpdateShop(ctx, id, payload) }, nil

	default:
		price, qty, err := f.parseNumbers(2, 3)
		if err != nil {
			return nil, err
		}
		if f.editID == "" {
			payload := mall.CreateProduct{
				ProductName: f.value(0),
				Description: f.value(1),
				Price:       price,
				Quantity:    qty,
				Category:    f.value(4),
				ShopID:      f.value(5),
			}
			return func() action.Notice { return coord.CreateProduct(ctx, payload) }, nil
		}
		payload := mall.UpdateProduct{
			ProductName: f.value(0),
			Description: f.value(1),
			Price:       price,
			Quantity:    qty,
			Category:    f.value(4),
			ShopID:      f.value(5),
		}
		id := f.editID
		return func() action.Notice { return coord.UpdateProduct(ctx, id, payload) }, nil
	}
}

// parseNumbers converts the price and quantity fields. Empty inputs parse as
// zero so optional fields do not block submission.
func (f *formModel) parseNumbers(priceIdx, qtyIdx int) (float64, int, error) {
	price := 0.0
	if v := f.value(priceIdx); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, errors.New("price must be a number")
		}
		price = p
	}
	qty := 0
	if v := f.value(qtyIdx); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("quantity must be a whole number")
		}
		qty = q
	}
	return price, qty, nil
}

// renderForm renders the create/edit modal body.
func (m Model) renderForm() string {
	f := m.form
	if f == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Bold(true).Render(f.title))
	b.WriteString("\n\n")

	for i, field := range f.fields {
		label := field.label
		if i == f.focus {
			b.WriteString(m.styles.AccentText.Render("> " + label))
		} else {
			b.WriteString(m.styles.MutedText.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render(f.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if f.submitting {
		b.WriteString(m.styles.MutedText.Render("Submitting..."))
	} else {
		b.WriteString(m.styles.FaintText.Render("enter submit · tab next field · esc cancel"))
	}

	return b.String()
}
