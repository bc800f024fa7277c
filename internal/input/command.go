// Package input turns key presses into navigation intents.
package input

// ActionKind enumerates navigation intents.
type ActionKind int

const (
	// ActionNone leaves the tree untouched.
	ActionNone ActionKind = iota
	// ActionMoveSelection moves the cursor by Action.Delta lines.
	ActionMoveSelection
	// ActionSelect jumps to the line whose key is Action.Key.
	ActionSelect
	// ActionOpen ends the session reporting the selected entry.
	ActionOpen
	// ActionQuit ends the session without a result.
	ActionQuit
)

// Action is one decoded intent.
type Action struct {
	Kind  ActionKind
	Delta int
	Key   string
}

// MoveSelection returns a relative move intent.
func MoveSelection(delta int) Action {
	return Action{Kind: ActionMoveSelection, Delta: delta}
}

// Select returns a jump-to-key intent.
func Select(key string) Action {
	return Action{Kind: ActionSelect, Key: key}
}

// Command is the state of the input row: the characters typed so far and
// the intent decoded from the latest key press.
type Command struct {
	Raw    string
	Action Action
	// echoed is set when Raw shows the key of a selection reached by a
	// relative move rather than typed characters.
	echoed bool
	// complete is set when Raw matched a whole key.
	complete bool
}

// NewCommand returns an empty command.
func NewCommand() *Command {
	return &Command{}
}

// Echo replaces the input row with key after a relative move. The next typed
// character starts a fresh key.
func (command *Command) Echo(key string) {
	command.Raw = key
	command.echoed = true
	command.complete = false
}

// Complete marks Raw as a whole matched key. The next typed character starts
// a fresh key, while backspace still edits Raw.
func (command *Command) Complete() {
	command.complete = true
}

func (command *Command) appendCharacter(character string) {
	if command.echoed || command.complete {
		command.Raw = ""
		command.echoed = false
		command.complete = false
	}
	command.Raw += character
}

func (command *Command) eraseCharacter() {
	command.complete = false
	if command.echoed {
		command.Raw = ""
		command.echoed = false
		return
	}
	if command.Raw == "" {
		return
	}
	command.Raw = command.Raw[:len(command.Raw)-1]
}
