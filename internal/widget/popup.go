package widget

import "sync"

type PopupState int

const (
	Closed PopupState = iota
	Open
)

func (s PopupState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Element ids shared by the node tree and the Document side effects.
const (
	ButtonID  = "whatsapp-fab"
	OverlayID = "whatsapp-popup-overlay"
	CloseID   = "whatsapp-popup-close"
	TitleID   = "whatsapp-popup-title"

	activeClass = "active"
)

// Document is the slice of the host page the popup mutates.
type Document interface {
	SetScrollLocked(locked bool)
	SetAttr(id, name, value string)
	SetClass(id, class string, on bool)
	Focus(id string)
	// OnKeyDown registers fn for page-level key presses and returns a
	// function that removes it.
	OnKeyDown(fn func(key string)) (remove func())
}

type nopDocument struct{}

func (nopDocument) SetScrollLocked(bool)                   {}
func (nopDocument) SetAttr(string, string, string)         {}
func (nopDocument) SetClass(string, string, bool)          {}
func (nopDocument) Focus(string)                           {}
func (nopDocument) OnKeyDown(func(string)) (remove func()) { return func() {} }

// Popup is the open/closed state machine of one mounted widget.
type Popup struct {
	mu        sync.Mutex
	doc       Document
	state     PopupState
	removeKey func()
}

func NewPopup(doc Document) *Popup {
	if doc == nil {
		doc = nopDocument{}
	}
	return &Popup{doc: doc}
}

func (p *Popup) State() PopupState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Open shows the popup. Opening an open popup does nothing.
func (p *Popup) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Open {
		return
	}
	p.state = Open
	p.doc.SetClass(OverlayID, activeClass, true)
	p.doc.SetAttr(ButtonID, "aria-expanded", "true")
	p.doc.SetScrollLocked(true)
	p.doc.Focus(CloseID)
	// Escape only matters while open; the listener lives exactly as long.
	p.removeKey = p.doc.OnKeyDown(p.KeyDown)
}

// Close hides the popup and hands focus back to the button. Closing a closed
// popup does nothing.
func (p *Popup) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *Popup) closeLocked() {
	if p.state == Closed {
		return
	}
	p.state = Closed
	p.doc.SetClass(OverlayID, activeClass, false)
	p.doc.SetAttr(ButtonID, "aria-expanded", "false")
	p.doc.SetScrollLocked(false)
	p.doc.Focus(ButtonID)
	if p.removeKey != nil {
		p.removeKey()
		p.removeKey = nil
	}
}

// KeyDown handles a page key press.
func (p *Popup) KeyDown(key string) {
	if key != "Escape" {
		return
	}
	p.Close()
}

// Dispatch runs the action of a declared listener. targetID is the id of the
// element the event originated from; backdrop clicks only close when they
// land on the overlay itself, not inside the panel.
func (p *Popup) Dispatch(action Action, targetID string) {
	switch action {
	case ActionOpen:
		p.Open()
	case ActionClose:
		p.Close()
	case ActionBackdrop:
		if targetID == OverlayID {
			p.Close()
		}
	}
}
