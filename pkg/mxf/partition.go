package mxf

import (
	"context"
	"fmt"
	"io"

	"mxf-reader/internal/logging"
	"mxf-reader/internal/metrics"
	"mxf-reader/pkg/errorlog"
	"mxf-reader/pkg/resource"
)

// PartitionPack is the decoded fixed-layout value of a partition pack.
type PartitionPack struct {
	Kind   byte // header, body or footer
	Status byte // open/closed, complete/incomplete

	MajorVersion      uint16
	MinorVersion      uint16
	KAGSize           uint32
	ThisPartition     uint64
	PreviousPartition uint64
	FooterPartition   uint64
	HeaderByteCount   uint64
	IndexByteCount    uint64
	IndexSID          uint32
	BodyOffset        uint64
	BodySID           uint32

	OperationalPattern UL
	EssenceContainers  []UL
}

// decodePartitionPack decodes a partition pack value. Any truncation is
// FATAL; the pack's byte counts frame everything that follows.
func decodePartitionPack(key UL, value []byte, log *errorlog.Log) (*PartitionPack, error) {
	pp := &PartitionPack{Kind: key[13], Status: key[14]}
	cur := resource.NewByteCursor(value)

	fail := func(what string, err error) error {
		se := &StructuralError{Message: "partition pack: truncated " + what, Err: err}
		log.Add(errorlog.CodeEssenceMetadata, errorlog.Fatal, se.Error())
		return se
	}

	fields := []struct {
		name  string
		width int
		dst   func(uint64)
	}{
		{"major version", 2, func(v uint64) { pp.MajorVersion = uint16(v) }},
		{"minor version", 2, func(v uint64) { pp.MinorVersion = uint16(v) }},
		{"kag size", 4, func(v uint64) { pp.KAGSize = uint32(v) }},
		{"this partition", 8, func(v uint64) { pp.ThisPartition = v }},
		{"previous partition", 8, func(v uint64) { pp.PreviousPartition = v }},
		{"footer partition", 8, func(v uint64) { pp.FooterPartition = v }},
		{"header byte count", 8, func(v uint64) { pp.HeaderByteCount = v }},
		{"index byte count", 8, func(v uint64) { pp.IndexByteCount = v }},
		{"index sid", 4, func(v uint64) { pp.IndexSID = uint32(v) }},
		{"body offset", 8, func(v uint64) { pp.BodyOffset = v }},
		{"body sid", 4, func(v uint64) { pp.BodySID = uint32(v) }},
	}
	for _, f := range fields {
		v, err := readUint(cur, f.width)
		if err != nil {
			return nil, fail(f.name, err)
		}
		f.dst(v)
	}

	opBytes, err := cur.GetBytes(16)
	if err != nil {
		return nil, fail("operational pattern", err)
	}
	pp.OperationalPattern = ulFrom(opBytes)

	count, err := readUint(cur, 4)
	if err != nil {
		return nil, fail("essence container batch", err)
	}
	entrySize, err := readUint(cur, 4)
	if err != nil {
		return nil, fail("essence container batch", err)
	}
	if entrySize != 16 {
		return nil, fail(fmt.Sprintf("essence container batch (entry size %d)", entrySize), nil)
	}
	for i := uint64(0); i < count; i++ {
		b, err := cur.GetBytes(16)
		if err != nil {
			return nil, fail("essence container entry", err)
		}
		pp.EssenceContainers = append(pp.EssenceContainers, ulFrom(b))
	}

	return pp, nil
}

// ReadHeaderMetadata decodes the structural metadata of one track file: the
// header partition pack at offset zero, the primer pack, every registered
// metadata set in the header metadata extent, and finally the reference
// graph. NON_FATAL diagnostics accumulate in log while decoding continues;
// a FATAL framing failure aborts the artifact and is returned alongside the
// partial result.
func ReadHeaderMetadata(ctx context.Context, res resource.Resource, log *errorlog.Log) (*HeaderMetadata, error) {
	hm, err := readHeaderMetadata(ctx, res, log)
	if err != nil {
		metrics.DecodeSessionsTotal.WithLabelValues("aborted").Inc()
		return hm, err
	}
	metrics.DecodeSessionsTotal.WithLabelValues("success").Inc()
	return hm, nil
}

func readHeaderMetadata(ctx context.Context, res resource.Resource, log *errorlog.Log) (*HeaderMetadata, error) {
	size := res.Size()

	fatal := func(message string, err error) error {
		se := &StructuralError{Message: message, Err: err}
		log.Add(errorlog.CodeEssenceMetadata, errorlog.Fatal, se.Error())
		return se
	}

	// Smallest conceivable header: key + 1-byte BER + empty value.
	if size < 17 {
		return nil, fatal(fmt.Sprintf("resource of %d bytes is too small for a partition pack", size), nil)
	}

	// Key plus the longest BER form.
	probeEnd := int64(16 + 9)
	if probeEnd > size {
		probeEnd = size
	}
	head, err := res.ReadRangeAsBytes(ctx, 0, probeEnd-1)
	if err != nil {
		return nil, readFatal(log, err)
	}

	cur := resource.NewByteCursor(head)
	keyBytes, _ := cur.GetBytes(16)
	key := ulFrom(keyBytes)
	if !IsHeaderPartition(key) {
		return nil, fatal(fmt.Sprintf("expected header partition pack at offset 0, found %s", key), nil)
	}

	packLen, berSize, err := decodeBERLength(cur)
	if err != nil {
		return nil, fatal("bad partition pack length", err)
	}

	packStart := int64(16 + berSize)
	packEnd := packStart + int64(packLen) - 1
	if packEnd >= size {
		return nil, fatal("partition pack extends past end of resource", nil)
	}

	packValue, err := res.ReadRangeAsBytes(ctx, packStart, packEnd)
	if err != nil {
		return nil, readFatal(log, err)
	}
	pp, err := decodePartitionPack(key, packValue, log)
	if err != nil {
		return nil, err
	}

	hm := &HeaderMetadata{Partition: pp}

	if pp.HeaderByteCount == 0 {
		return hm, fatal("partition pack declares no header metadata", nil)
	}

	metaStart := packEnd + 1
	metaEnd := metaStart + int64(pp.HeaderByteCount) - 1
	if metaEnd >= size {
		return hm, fatal("header metadata extends past end of resource", nil)
	}

	window, err := res.ReadRangeAsBytes(ctx, metaStart, metaEnd)
	if err != nil {
		return hm, readFatal(log, err)
	}

	kr := NewKLVReader(resource.NewByteCursor(window), log)

	// The primer must precede every local-set element that uses it.
	tags, err := readPrimer(kr, log)
	if err != nil {
		return hm, err
	}

	for {
		hdr, value, err := kr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return hm, err
		}

		if IsFill(hdr.Key) {
			continue
		}

		desc, ok := DescriptorFor(hdr.Key)
		if !ok {
			logging.Debug("skipping unregistered set %s (%d bytes)", hdr.Key, hdr.ValueLength)
			continue
		}

		set, err := DecodeSet(desc, value, tags, log)
		if set != nil {
			hm.Add(set)
		}
		if err != nil {
			return hm, err
		}
	}

	ResolveReferences(hm, log)
	logging.Debug("decoded %d metadata sets, %d diagnostics", len(hm.Sets), log.Len())
	return hm, nil
}

// readPrimer consumes envelopes up to and including the primer pack.
func readPrimer(kr *KLVReader, log *errorlog.Log) (*LocalTagMap, error) {
	for {
		hdr, value, err := kr.Next()
		if err == io.EOF {
			se := &StructuralError{Message: "header metadata contains no primer pack"}
			log.Add(errorlog.CodeEssenceMetadata, errorlog.Fatal, se.Error())
			return nil, se
		}
		if err != nil {
			return nil, err
		}
		if IsFill(hdr.Key) {
			continue
		}
		if !IsPrimerPack(hdr.Key) {
			se := &StructuralError{Message: fmt.Sprintf("expected primer pack, found %s", hdr.Key)}
			log.Add(errorlog.CodeEssenceMetadata, errorlog.Fatal, se.Error())
			return nil, se
		}
		return DecodePrimerPack(value, log)
	}
}

func readFatal(log *errorlog.Log, err error) error {
	log.Addf(errorlog.CodeResource, errorlog.Fatal, "range read failed: %v", err)
	return err
}
