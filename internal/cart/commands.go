package cart

// Command is a cart mutation. Apply is the only place commands take effect.
type Command interface {
	isCommand()
}

// AddLine merges Line into an existing line with the same product and customization,
// or appends it when there is none.
type AddLine struct {
	Line LineItem
}

// SetQuantity sets a line's quantity. Quantity <= 0 removes the line.
type SetQuantity struct {
	LineID   string
	Quantity int
}

// RemoveLine splices a line out of the list.
type RemoveLine struct {
	LineID string
}

// ClearLines empties the cart.
type ClearLines struct{}

func (AddLine) isCommand()     {}
func (SetQuantity) isCommand() {}
func (RemoveLine) isCommand()  {}
func (ClearLines) isCommand()  {}

// Apply returns the state that results from cmd. The input state is never modified.
// Unknown line ids leave the state unchanged.
func Apply(s State, cmd Command) State {
	switch c := cmd.(type) {
	case AddLine:
		return addLine(s, c.Line)
	case SetQuantity:
		if c.Quantity <= 0 {
			return removeLine(s, c.LineID)
		}
		return setQuantity(s, c.LineID, c.Quantity)
	case RemoveLine:
		return removeLine(s, c.LineID)
	case ClearLines:
		return State{Items: []LineItem{}}
	default:
		return s
	}
}

// findMatch returns the index of the line that shares product and customization with l.
func (s State) findMatch(l LineItem) int {
	for i := range s.Items {
		if s.Items[i].ProductID == l.ProductID && s.Items[i].Customization.Equal(l.Customization) {
			return i
		}
	}
	return -1
}

func addLine(s State, l LineItem) State {
	items := copyItems(s.Items)
	if i := s.findMatch(l); i >= 0 {
		items[i].Quantity = items[i].Quantity + l.Quantity
		return State{Items: items}
	}
	return State{Items: append(items, l)}
}

func setQuantity(s State, lineID string, quantity int) State {
	i := s.indexOf(lineID)
	if i < 0 {
		return s
	}
	items := copyItems(s.Items)
	items[i].Quantity = quantity
	return State{Items: items}
}

func removeLine(s State, lineID string) State {
	i := s.indexOf(lineID)
	if i < 0 {
		return s
	}
	items := make([]LineItem, 0, len(s.Items)-1)
	items = append(items, s.Items[:i]...)
	items = append(items, s.Items[i+1:]...)
	return State{Items: items}
}

func copyItems(in []LineItem) []LineItem {
	out := make([]LineItem, len(in), len(in)+1)
	copy(out, in)
	return out
}
