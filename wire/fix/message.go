package fix

import "strconv"

// Field is one tag=value pair in a message body.
type Field struct {
	Tag   int
	Value string
}

// Message is a decoded or under-construction FIX message: its type plus the
// body fields in emission order. Lookup is by tag; a repeated tag overwrites
// the earlier value in place, extra unexpected tags are simply never asked for.
type Message struct {
	MsgType string

	fields []Field
	index  map[int]int
}

// NewMessage starts a message of the given type.
func NewMessage(msgType string) *Message {
	return &Message{
		MsgType: msgType,
		index:   make(map[int]int),
	}
}

// Set appends a field, or rewrites it when the tag was already set.
func (m *Message) Set(tag int, value string) *Message {
	if i, ok := m.index[tag]; ok {
		m.fields[i].Value = value
		return m
	}
	m.index[tag] = len(m.fields)
	m.fields = append(m.fields, Field{Tag: tag, Value: value})
	return m
}

// SetUint sets a numeric field, with the same append-or-rewrite rule as Set.
func (m *Message) SetUint(tag int, v uint64) *Message {
	return m.Set(tag, strconv.FormatUint(v, 10))
}

// Get returns the value stored for tag.
func (m *Message) Get(tag int) (string, bool) {
	i, ok := m.index[tag]
	if !ok {
		return "", false
	}
	return m.fields[i].Value, true
}

// GetUint parses the field at tag as an unsigned decimal.
func (m *Message) GetUint(tag int) (uint64, bool) {
	s, ok := m.Get(tag)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Fields exposes the body fields in order, for tests and diagnostics.
func (m *Message) Fields() []Field {
	return m.fields
}
