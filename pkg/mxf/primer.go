package mxf

import (
	"fmt"

	"mxf-reader/pkg/errorlog"
	"mxf-reader/pkg/resource"
)

// primerEntrySize is the wire size of one primer entry: a 2-byte local tag
// followed by a 16-byte universal label.
const primerEntrySize = 18

// LocalTagMap resolves the 2-byte local tags of one header partition to
// universal labels. It is built once from the primer pack and then shared
// read-only with every set decode in that partition.
type LocalTagMap struct {
	entries map[uint16]UL
}

// DecodePrimerPack decodes the primer pack value: a 4-byte entry count, a
// 4-byte entry length, then the (local tag, universal label) pairs. A wrong
// entry length or a truncated table is FATAL; nothing downstream can be
// decoded without the complete table.
func DecodePrimerPack(value []byte, log *errorlog.Log) (*LocalTagMap, error) {
	cur := resource.NewByteCursor(value)

	count, err := readUint(cur, 4)
	if err != nil {
		return nil, primerFatal(log, "truncated primer pack header", err)
	}
	entryLen, err := readUint(cur, 4)
	if err != nil {
		return nil, primerFatal(log, "truncated primer pack header", err)
	}
	if entryLen != primerEntrySize {
		return nil, primerFatal(log,
			fmt.Sprintf("primer entry length %d, expected %d", entryLen, primerEntrySize), nil)
	}
	// The count comes off the wire; it must fit the value before it sizes
	// any allocation.
	if count*primerEntrySize > uint64(cur.Remaining()) {
		return nil, primerFatal(log,
			fmt.Sprintf("primer declares %d entries, only %d bytes remain", count, cur.Remaining()), nil)
	}

	entries := make(map[uint16]UL, count)
	for i := uint64(0); i < count; i++ {
		tag, err := readUint(cur, 2)
		if err != nil {
			return nil, primerFatal(log, fmt.Sprintf("truncated primer entry %d", i), err)
		}
		labelBytes, err := cur.GetBytes(16)
		if err != nil {
			return nil, primerFatal(log, fmt.Sprintf("truncated primer entry %d", i), err)
		}
		entries[uint16(tag)] = ulFrom(labelBytes)
	}

	return &LocalTagMap{entries: entries}, nil
}

// Lookup resolves a local tag to its universal label.
func (m *LocalTagMap) Lookup(tag uint16) (UL, bool) {
	ul, ok := m.entries[tag]
	return ul, ok
}

// Len returns the number of mapped tags.
func (m *LocalTagMap) Len() int {
	return len(m.entries)
}

func primerFatal(log *errorlog.Log, message string, err error) error {
	se := &StructuralError{Message: "primer pack: " + message, Err: err}
	if log != nil {
		log.Add(errorlog.CodeEssenceMetadata, errorlog.Fatal, se.Error())
	}
	return se
}
