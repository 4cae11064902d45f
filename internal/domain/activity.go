package domain

import (
	"encoding/json"
	"errors"
	"slices"

	"github.com/tidwall/gjson"
)

// ErrNotAnObject is returned when an activity collection document is not a JSON object.
var ErrNotAnObject = errors.New("activity collection must be a JSON object")

// Activity is a single sign-up activity as served by the activities API.
type Activity struct {
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
	// MaxParticipants is nil when the activity has no capacity limit.
	MaxParticipants *int     `json:"max_participants,omitempty"`
	Participants    []string `json:"participants"`
}

// RemainingSpots reports the free capacity of the activity. ok is false when
// the activity has no maximum.
func (a *Activity) RemainingSpots() (remaining int, ok bool) {
	if a.MaxParticipants == nil {
		return 0, false
	}
	return max(0, *a.MaxParticipants-len(a.Participants)), true
}

// HasParticipant reports whether email is already on the participant list.
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a deep copy so callers can hand out snapshots of shared state.
func (a *Activity) Clone() *Activity {
	cp := &Activity{
		Description:  a.Description,
		Schedule:     a.Schedule,
		Participants: slices.Clone(a.Participants),
	}
	if a.MaxParticipants != nil {
		limit := *a.MaxParticipants
		cp.MaxParticipants = &limit
	}
	return cp
}

// Collection maps activity names to activities and remembers the order in
// which the names first appeared. Rendering iterates in that order.
type Collection struct {
	names []string
	items map[string]*Activity
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{items: make(map[string]*Activity)}
}

// ParseCollection decodes the JSON object returned by GET /activities.
// Keys keep their document order. Fields are read leniently: a missing or
// non-numeric max_participants means "no limit", a missing participants list
// means "no participants", and non-string participant entries are skipped.
// A fractional max_participants is truncated toward zero.
func ParseCollection(data []byte) (*Collection, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotAnObject
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrNotAnObject
	}

	c := NewCollection()
	doc.ForEach(func(key, value gjson.Result) bool {
		c.Put(key.String(), parseActivity(value))
		return true
	})
	return c, nil
}

func parseActivity(v gjson.Result) *Activity {
	a := &Activity{
		Description:  v.Get("description").String(),
		Schedule:     v.Get("schedule").String(),
		Participants: []string{},
	}

	if limit := v.Get("max_participants"); limit.Type == gjson.Number {
		n := int(limit.Int())
		a.MaxParticipants = &n
	}

	for _, p := range v.Get("participants").Array() {
		if p.Type == gjson.String {
			a.Participants = append(a.Participants, p.Str)
		}
	}
	return a
}

// Names returns the activity names in collection order.
func (c *Collection) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of activities.
func (c *Collection) Len() int {
	return len(c.names)
}

// Get returns the activity with the given name.
func (c *Collection) Get(name string) (*Activity, bool) {
	a, ok := c.items[name]
	return a, ok
}

// Put inserts or replaces an activity. New names are appended to the order.
func (c *Collection) Put(name string, a *Activity) {
	if c.items == nil {
		c.items = make(map[string]*Activity)
	}
	if _, exists := c.items[name]; !exists {
		c.names = append(c.names, name)
	}
	c.items[name] = a
}

// AddParticipant appends email to the named activity, creating an empty
// activity entry when the name is unknown. An email that is already listed is
// not added a second time. It reports whether the list changed.
func (c *Collection) AddParticipant(name, email string) bool {
	a, ok := c.Get(name)
	if !ok {
		a = &Activity{Participants: []string{}}
		c.Put(name, a)
	}
	if a.HasParticipant(email) {
		return false
	}
	a.Participants = append(a.Participants, email)
	return true
}

// RemoveParticipant removes the first occurrence of email from the named
// activity. It reports whether anything was removed.
func (c *Collection) RemoveParticipant(name, email string) bool {
	a, ok := c.Get(name)
	if !ok {
		return false
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return false
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return true
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	cp := &Collection{
		names: slices.Clone(c.names),
		items: make(map[string]*Activity, len(c.items)),
	}
	for name, a := range c.items {
		cp.items[name] = a.Clone()
	}
	return cp
}

// MarshalJSON encodes the collection as a JSON object in collection order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, name := range c.names {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.items[name])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}
