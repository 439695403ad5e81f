package eventloop

// Event names understood by the community page.
const (
	EventInput   = "input"
	EventBlur    = "blur"
	EventSubmit  = "submit"
	EventClick   = "click"
	EventKeyDown = "keydown"
	EventError   = "error"
)

// Event is a UI event addressed to a logical element.
type Event struct {
	Name   string
	Target string
	Value  string
	Key    string
}

// Handler reacts to one event. Handlers run inside the loop.
type Handler func(Event)

// Dispatcher routes events to the handlers registered for their name, in
// registration order.
type Dispatcher struct {
	handlers map[string][]Handler
}

// NewDispatcher returns a dispatcher with no bindings.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// On binds h to events called name.
func (d *Dispatcher) On(name string, h Handler) {
	d.handlers[name] = append(d.handlers[name], h)
}

// Emit delivers ev to every handler bound to its name.
func (d *Dispatcher) Emit(ev Event) {
	for _, h := range d.handlers[ev.Name] {
		h(ev)
	}
}

// Bindings reports how many handlers are bound to name.
func (d *Dispatcher) Bindings(name string) int {
	return len(d.handlers[name])
}
