package dom

// Event is delivered to listeners registered with Element.On.
type Event struct {
	Name   string
	Target Element
	Detail any
}

// Listener handles an Event.
type Listener func(Event)

// Matcher selects elements during Query.
type Matcher func(Element) bool

// Queryable exposes descendant lookup. Results are in document order and
// never include nodes that live inside template content, so querying a
// template element itself yields nothing.
type Queryable interface {
	Query(match Matcher) []Element
}

// Node is any node that can be positioned in the tree (elements and text).
type Node interface {
	// AsElement returns the node as an Element when it is one.
	AsElement() (Element, bool)
	// InsertBefore moves every node of f in front of the receiver and returns
	// the moved nodes. f is empty afterwards.
	InsertBefore(f Fragment) []Node
	// Remove detaches the node from its parent.
	Remove()
	// Attached reports whether the node currently has a parent.
	Attached() bool
}

// Element is a bindable UI element.
type Element interface {
	Node
	Queryable

	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	Text() string
	SetText(text string)

	// Value and SetValue address the raw form value of input, textarea and
	// select elements.
	Value() string
	SetValue(value string)

	Checked() bool
	SetChecked(checked bool)

	// Content returns a detached deep copy of a template element's content,
	// or nil when the element is not a template.
	Content() Fragment

	// On registers a listener and returns a function removing it.
	On(name string, fn Listener) (off func())
	// Trigger dispatches an event to the element's own listeners. Events do
	// not bubble.
	Trigger(name string, detail any)
}

// Fragment is an ordered list of detached top-level nodes.
type Fragment interface {
	Queryable
	Nodes() []Node
	Elements() []Element
}

// Document is a parsed tree the engine can bind as a whole.
type Document interface {
	Queryable
}

// HasAttr returns a Matcher accepting elements that carry any of names.
func HasAttr(names ...string) Matcher {
	return func(el Element) bool {
		for _, name := range names {
			if _, ok := el.Attr(name); ok {
				return true
			}
		}
		return false
	}
}

// IsTag returns a Matcher accepting elements whose tag is one of tags.
func IsTag(tags ...string) Matcher {
	return func(el Element) bool {
		tag := el.Tag()
		for _, candidate := range tags {
			if tag == candidate {
				return true
			}
		}
		return false
	}
}

// Engine events dispatched on tree elements.
const (
	EventConstruct = "xb-construct"
	EventDestruct  = "xb-destruct"
	EventDestroy   = "xb-destroy"
	// EventChange is the host's native commit event for form fields.
	EventChange = "change"
)
