package widget

import "testing"

type recordingDocument struct {
	scrollLocked bool
	attrs        map[string]string
	classes      map[string]bool
	focused      string
	keyHandlers  map[int]func(string)
	nextHandler  int
}

func newRecordingDocument() *recordingDocument {
	return &recordingDocument{
		attrs:       make(map[string]string),
		classes:     make(map[string]bool),
		keyHandlers: make(map[int]func(string)),
	}
}

func (d *recordingDocument) SetScrollLocked(locked bool) { d.scrollLocked = locked }

func (d *recordingDocument) SetAttr(id, name, value string) { d.attrs[id+"."+name] = value }

func (d *recordingDocument) SetClass(id, class string, on bool) { d.classes[id+"."+class] = on }

func (d *recordingDocument) Focus(id string) { d.focused = id }

func (d *recordingDocument) OnKeyDown(fn func(string)) func() {
	id := d.nextHandler
	d.nextHandler++
	d.keyHandlers[id] = fn
	return func() { delete(d.keyHandlers, id) }
}

func (d *recordingDocument) press(key string) {
	for _, fn := range d.keyHandlers {
		fn(key)
	}
}

func TestPopupOpenClose(t *testing.T) {
	doc := newRecordingDocument()
	p := NewPopup(doc)

	p.Dispatch(ActionOpen, ButtonID)
	if p.State() != Open {
		t.Fatalf("state = %s", p.State())
	}
	if !doc.scrollLocked || doc.focused != CloseID || doc.attrs[ButtonID+".aria-expanded"] != "true" || !doc.classes[OverlayID+".active"] {
		t.Fatalf("open side effects missing: %+v", doc)
	}
	if len(doc.keyHandlers) != 1 {
		t.Fatalf("key handlers = %d", len(doc.keyHandlers))
	}

	p.Dispatch(ActionClose, CloseID)
	if p.State() != Closed {
		t.Fatalf("state = %s", p.State())
	}
	if doc.scrollLocked || doc.focused != ButtonID || doc.attrs[ButtonID+".aria-expanded"] != "false" || doc.classes[OverlayID+".active"] {
		t.Fatalf("close side effects missing: %+v", doc)
	}
	if len(doc.keyHandlers) != 0 {
		t.Fatal("escape listener leaked after close")
	}
}

func TestPopupEscape(t *testing.T) {
	doc := newRecordingDocument()
	p := NewPopup(doc)

	// closed: nothing listens, and a direct key press is a no-op
	p.KeyDown("Escape")
	if p.State() != Closed || doc.focused != "" {
		t.Fatal("escape while closed changed something")
	}

	p.Open()
	doc.press("Enter")
	if p.State() != Open {
		t.Fatal("non-escape key closed the popup")
	}
	doc.press("Escape")
	if p.State() != Closed {
		t.Fatal("escape did not close")
	}
	if len(doc.keyHandlers) != 0 {
		t.Fatal("escape listener still attached")
	}
}

func TestPopupBackdrop(t *testing.T) {
	doc := newRecordingDocument()
	p := NewPopup(doc)
	p.Open()

	p.Dispatch(ActionBackdrop, "whatsapp-popup-message")
	if p.State() != Open {
		t.Fatal("click inside the panel closed the popup")
	}
	p.Dispatch(ActionBackdrop, OverlayID)
	if p.State() != Closed {
		t.Fatal("backdrop click did not close")
	}
}

func TestPopupIdempotent(t *testing.T) {
	doc := newRecordingDocument()
	p := NewPopup(doc)

	p.Open()
	p.Open()
	if len(doc.keyHandlers) != 1 {
		t.Fatalf("double open attached %d listeners", len(doc.keyHandlers))
	}

	p.Close()
	doc.focused = ""
	p.Close()
	if doc.focused != "" || doc.scrollLocked {
		t.Fatal("double close repeated side effects")
	}

	// repeated cycles do not accumulate listeners
	for i := 0; i < 5; i++ {
		p.Open()
		p.Close()
	}
	if len(doc.keyHandlers) != 0 {
		t.Fatalf("leaked %d listeners", len(doc.keyHandlers))
	}
}

func TestPopupWithoutDocument(t *testing.T) {
	p := NewPopup(nil)
	p.Open()
	p.KeyDown("Escape")
	if p.State() != Closed {
		t.Fatal("expected closed")
	}
}
