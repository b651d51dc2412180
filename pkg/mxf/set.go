package mxf

// StrongRef is a graph edge from one metadata set to another, encoded on
// the wire as the target's instance UID. Target stays nil until
// ResolveReferences links it; the referenced set is owned by the session's
// object table, never by the referrer.
type StrongRef struct {
	TargetUID UID
	Target    *MetadataSet
}

// Resolved reports whether the reference has been linked to its target.
func (r *StrongRef) Resolved() bool {
	return r != nil && r.Target != nil
}

// MetadataSet is one decoded structural metadata object. Fields the wire
// did not carry are absent from the maps; callers must check presence
// rather than assume it.
type MetadataSet struct {
	// Type is the set type name from its descriptor table.
	Type string
	// Key is the KLV universal label the set was decoded from.
	Key UL
	// InstanceUID identifies the set within the parse session. Nil when
	// the wire omitted it (reported NON_FATAL at decode time).
	InstanceUID *UID
	// Values holds plain decoded field values: uint64 for 1/2/4/8-byte
	// scalars, UID for 16-byte identifiers, []byte otherwise.
	Values map[string]any
	// Refs holds single strong references by field name.
	Refs map[string]*StrongRef
	// RefCollections holds ordered strong-reference collections by field
	// name. A malformed collection is skipped whole at decode time, so a
	// present list carries exactly the wire-declared number of entries.
	RefCollections map[string][]*StrongRef
}

func newMetadataSet(desc SetDescriptor) *MetadataSet {
	return &MetadataSet{
		Type:           desc.Name,
		Key:            desc.Key,
		Values:         make(map[string]any),
		Refs:           make(map[string]*StrongRef),
		RefCollections: make(map[string][]*StrongRef),
	}
}

// UintValue returns the named scalar field.
func (s *MetadataSet) UintValue(name string) (uint64, bool) {
	v, ok := s.Values[name].(uint64)
	return v, ok
}

// UIDValue returns the named 16-byte identifier field.
func (s *MetadataSet) UIDValue(name string) (UID, bool) {
	v, ok := s.Values[name].(UID)
	return v, ok
}

// BytesValue returns the named raw field.
func (s *MetadataSet) BytesValue(name string) ([]byte, bool) {
	v, ok := s.Values[name].([]byte)
	return v, ok
}

// SubDescriptors returns the resolved targets of the set's sub-descriptor
// collection, in wire order. Unresolved entries are skipped.
func (s *MetadataSet) SubDescriptors() []*MetadataSet {
	refs := s.RefCollections["SubDescriptorUIDs"]
	out := make([]*MetadataSet, 0, len(refs))
	for _, ref := range refs {
		if ref.Resolved() {
			out = append(out, ref.Target)
		}
	}
	return out
}

// HeaderMetadata is the object graph produced by one parse session. The
// session exclusively owns every set it creates.
type HeaderMetadata struct {
	// Partition is the decoded header partition pack.
	Partition *PartitionPack
	// Sets lists the decoded sets in wire order.
	Sets []*MetadataSet
	// ByUID indexes the sets whose instance UID is known and unambiguous.
	// Populated by ResolveReferences.
	ByUID map[UID]*MetadataSet
}

// Add appends a decoded set to the session table.
func (hm *HeaderMetadata) Add(set *MetadataSet) {
	hm.Sets = append(hm.Sets, set)
}

// SetsOfType returns the decoded sets with the given type name, in wire
// order.
func (hm *HeaderMetadata) SetsOfType(name string) []*MetadataSet {
	var out []*MetadataSet
	for _, s := range hm.Sets {
		if s.Type == name {
			out = append(out, s)
		}
	}
	return out
}
