package mxf

import (
	"encoding/binary"
	"fmt"

	"mxf-reader/internal/logging"
	"mxf-reader/internal/metrics"
	"mxf-reader/pkg/errorlog"
	"mxf-reader/pkg/resource"
)

// DecodeSet hydrates one metadata set from a local-set value window: a
// sequence of (2-byte local tag, 2-byte length, value) elements. Each tag
// is resolved to a universal label through the primer and matched against
// the set's descriptor table. Unresolvable tags and malformed optional
// elements are NON_FATAL; a truncated element header is FATAL because no
// further framing within the window is possible.
func DecodeSet(desc SetDescriptor, value []byte, tags *LocalTagMap, log *errorlog.Log) (*MetadataSet, error) {
	set := newMetadataSet(desc)

	byLabel := make(map[UL]*FieldDescriptor, len(desc.Fields))
	for i := range desc.Fields {
		byLabel[desc.Fields[i].Label] = &desc.Fields[i]
	}

	cur := resource.NewByteCursor(value)
	for cur.Remaining() > 0 {
		offset := cur.Position()

		tag, err := readUint(cur, 2)
		if err != nil {
			return set, setFatal(log, desc.Name, offset, "truncated element tag", err)
		}
		elemLen, err := readUint(cur, 2)
		if err != nil {
			return set, setFatal(log, desc.Name, offset, "truncated element length", err)
		}
		elem, err := cur.GetBytes(int(elemLen))
		if err != nil {
			return set, setFatal(log, desc.Name, offset,
				fmt.Sprintf("truncated element 0x%04x", tag), err)
		}

		label, ok := tags.Lookup(uint16(tag))
		if !ok {
			log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
				"%s: local tag 0x%04x not in primer, field skipped", desc.Name, tag)
			continue
		}

		field, ok := byLabel[label]
		if !ok {
			// Field not modeled for this set type.
			logging.Debug("%s: skipping unmodeled field %s (%d bytes)", desc.Name, label, len(elem))
			continue
		}

		decodeField(set, field, elem, log)
	}

	if set.InstanceUID == nil {
		log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
			"%s: instance_uid missing", desc.Name)
	}

	metrics.MetadataSetsDecoded.Inc()
	return set, nil
}

// decodeField assigns one element's value according to its descriptor.
func decodeField(set *MetadataSet, field *FieldDescriptor, elem []byte, log *errorlog.Log) {
	switch field.Ref {
	case RefStrong:
		if len(elem) != 16 {
			badFieldLength(set, field, elem, log)
			return
		}
		set.Refs[field.Name] = &StrongRef{TargetUID: uidFrom(elem)}

	case RefWeak:
		if len(elem) != 16 {
			badFieldLength(set, field, elem, log)
			return
		}
		set.Values[field.Name] = uidFrom(elem)

	case RefStrongCollection:
		refs, ok := decodeRefCollection(set, field, elem, log)
		if ok {
			set.RefCollections[field.Name] = refs
		}

	default:
		if field.Size > 0 && uint32(len(elem)) != field.Size {
			badFieldLength(set, field, elem, log)
			return
		}
		decodeValue(set, field, elem)
	}
}

// decodeRefCollection reads an ordered batch of 16-byte target UIDs: a
// 4-byte entry count and a 4-byte entry size precede the entries. A
// malformed header, or a declared count that does not fit the element,
// skips the whole field NON_FATAL; a decoded collection always carries
// every declared entry.
func decodeRefCollection(set *MetadataSet, field *FieldDescriptor, elem []byte, log *errorlog.Log) ([]*StrongRef, bool) {
	cur := resource.NewByteCursor(elem)

	count, err := readUint(cur, 4)
	if err != nil {
		log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
			"%s.%s: truncated collection header, field skipped", set.Type, field.Name)
		return nil, false
	}
	entrySize, err := readUint(cur, 4)
	if err != nil {
		log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
			"%s.%s: truncated collection header, field skipped", set.Type, field.Name)
		return nil, false
	}
	if entrySize != 16 {
		log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
			"%s.%s: collection entry size %d, expected 16, field skipped", set.Type, field.Name, entrySize)
		return nil, false
	}

	// The count comes off the wire; it must fit the element before it is
	// trusted for anything, allocation included.
	if count*16 > uint64(cur.Remaining()) {
		log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
			"%s.%s: collection declares %d entries, only %d bytes remain, field skipped",
			set.Type, field.Name, count, cur.Remaining())
		return nil, false
	}

	refs := make([]*StrongRef, 0, count)
	for i := uint64(0); i < count; i++ {
		b, err := cur.GetBytes(16)
		if err != nil {
			log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
				"%s.%s: collection truncated after %d of %d entries", set.Type, field.Name, i, count)
			return nil, false
		}
		refs = append(refs, &StrongRef{TargetUID: uidFrom(b)})
	}
	return refs, true
}

// decodeValue stores a plain field: big-endian uint for 1/2/4/8 bytes, UID
// for 16 bytes, raw bytes otherwise. The instance UID lands on the set
// itself rather than in Values.
func decodeValue(set *MetadataSet, field *FieldDescriptor, elem []byte) {
	switch len(elem) {
	case 1:
		set.Values[field.Name] = uint64(elem[0])
	case 2:
		set.Values[field.Name] = uint64(binary.BigEndian.Uint16(elem))
	case 4:
		set.Values[field.Name] = uint64(binary.BigEndian.Uint32(elem))
	case 8:
		set.Values[field.Name] = binary.BigEndian.Uint64(elem)
	case 16:
		uid := uidFrom(elem)
		if field.Label == InstanceUIDLabel {
			set.InstanceUID = &uid
			return
		}
		set.Values[field.Name] = uid
	default:
		b := make([]byte, len(elem))
		copy(b, elem)
		set.Values[field.Name] = b
	}
}

func badFieldLength(set *MetadataSet, field *FieldDescriptor, elem []byte, log *errorlog.Log) {
	log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
		"%s.%s: element length %d, expected %d, field skipped", set.Type, field.Name, len(elem), field.Size)
}

func setFatal(log *errorlog.Log, setName string, offset int, message string, err error) error {
	se := &StructuralError{Message: fmt.Sprintf("%s: %s at offset %d", setName, message, offset), Err: err}
	log.Add(errorlog.CodeEssenceMetadata, errorlog.Fatal, se.Error())
	return se
}
