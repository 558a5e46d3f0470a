package tusk

import (
	"github.com/tuskdb/tusk/schema"
)

// Changeset is the minimal field-level difference between two
// snapshots of the same logical row. Key holds the primary-key values
// identifying the row; Changes holds the fields whose values differ,
// in descriptor field order, primary key excluded.
type Changeset struct {
	Key     []Assign
	Changes []Assign
}

// Empty reports whether the two snapshots were equal. An empty
// changeset is a valid outcome, not an error: callers typically skip
// the update entirely.
func (c *Changeset) Empty() bool { return len(c.Changes) == 0 }

// Diff compares two snapshots of a record and returns the minimal
// change set to turn old into new.
//
// Values compare under the field's semantic type (value equality, not
// representation), and a field that moves between null and non-null is
// always a change. Both snapshots must carry equal primary-key values;
// diffing is only defined for two states of the same logical row, and
// a key mismatch fails with an IdentityError.
func Diff(d *schema.Descriptor, old, new schema.Values) (*Changeset, error) {
	cs := &Changeset{}
	for _, f := range d.Fields() {
		ov, nv := old[f.Name], new[f.Name]
		if f.Key {
			if !schema.Equal(f.Type, ov, nv) {
				return nil, &IdentityError{Entity: d.Name(), Field: f.Name, Old: ov, New: nv}
			}
			cs.Key = append(cs.Key, Assign{Column: f.Name, Value: ov})
			continue
		}
		if !schema.Equal(f.Type, ov, nv) {
			cs.Changes = append(cs.Changes, Assign{Column: f.Name, Value: nv})
		}
	}
	return cs, nil
}

// UpdateFrom builds the targeted update for a changeset: SET one
// assignment per changed field, WHERE equality on every key field.
// For an empty changeset it returns nil; there is nothing to execute.
func UpdateFrom(d *schema.Descriptor, cs *Changeset) *Query {
	if cs.Empty() {
		return nil
	}
	q := Update(d)
	for _, a := range cs.Changes {
		q = q.Set(a.Column, a.Value)
	}
	for _, k := range cs.Key {
		q = q.WhereField(k.Column, k.Value)
	}
	return q
}
