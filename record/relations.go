package record

// Relation is a named container of related records, each a homogeneous
// sequence reachable from the owning record during a cascading save.
type Relation struct {
	Name    string
	Records []*Record
}

// Relate appends records to the named relation container, creating it on
// first use. Declaration order is preserved for the cascade.
func (r *Record) Relate(name string, related ...*Record) {
	for idx := range r.relations {
		if r.relations[idx].Name == name {
			r.relations[idx].Records = append(r.relations[idx].Records, related...)
			return
		}
	}
	r.relations = append(r.relations, Relation{Name: name, Records: related})
}

// Relations returns the declared relation containers in declaration order.
func (r *Record) Relations() []Relation {
	out := make([]Relation, len(r.relations))
	copy(out, r.relations)
	return out
}
