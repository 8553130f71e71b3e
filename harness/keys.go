package harness

// KeyIn is one unit of keyboard input accepted by TestElement.SendKeys:
// either literal text (Chars) or a symbolic special key (Key).
type KeyIn interface {
	keyIn()
}

// Chars is literal text dispatched one character at a time.
type Chars string

func (Chars) keyIn() {}

// Key is a special key from the fixed symbolic table shared by all
// backends. Each backend maps it to its native key descriptor.
type Key int

func (Key) keyIn() {}

const (
	KeyBackspace Key = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeySpace
	KeyPageUp
	KeyPageDown
	KeyEnd
	KeyHome
	KeyArrowLeft
	KeyArrowUp
	KeyArrowRight
	KeyArrowDown
	KeyInsert
	KeyDelete
)

var keyNames = map[Key]string{
	KeyBackspace:  "Backspace",
	KeyTab:        "Tab",
	KeyEnter:      "Enter",
	KeyEscape:     "Escape",
	KeySpace:      " ",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyEnd:        "End",
	KeyHome:       "Home",
	KeyArrowLeft:  "ArrowLeft",
	KeyArrowUp:    "ArrowUp",
	KeyArrowRight: "ArrowRight",
	KeyArrowDown:  "ArrowDown",
	KeyInsert:     "Insert",
	KeyDelete:     "Delete",
}

// Name returns the DOM KeyboardEvent key value for the symbolic key.
func (k Key) Name() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Unidentified"
}
