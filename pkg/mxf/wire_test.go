package mxf

import (
	"encoding/binary"
)

// Test helpers that encode the wire shapes the decoders consume.

// encodeBER encodes a BER length, using the short form when possible.
func encodeBER(length uint64) []byte {
	if length < 0x80 {
		return []byte{byte(length)}
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, length)
	i := 0
	for i < 7 && b[i] == 0 {
		i++
	}
	out := []byte{0x80 | byte(8-i)}
	return append(out, b[i:]...)
}

// encodeKLV frames value under key.
func encodeKLV(key UL, value []byte) []byte {
	out := append([]byte{}, key[:]...)
	out = append(out, encodeBER(uint64(len(value)))...)
	return append(out, value...)
}

// localSetElement encodes one (tag, length, value) element.
func localSetElement(tag uint16, value []byte) []byte {
	out := make([]byte, 4, 4+len(value))
	binary.BigEndian.PutUint16(out[0:2], tag)
	binary.BigEndian.PutUint16(out[2:4], uint16(len(value)))
	return append(out, value...)
}

// primerValue encodes a primer pack value from (tag, label) pairs.
func primerValue(entries map[uint16]UL) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(entries)))
	binary.BigEndian.PutUint32(out[4:8], primerEntrySize)
	// Deterministic order keeps failures readable.
	tags := make([]uint16, 0, len(entries))
	for tag := range entries {
		tags = append(tags, tag)
	}
	for i := 0; i < len(tags); i++ {
		for j := i + 1; j < len(tags); j++ {
			if tags[j] < tags[i] {
				tags[i], tags[j] = tags[j], tags[i]
			}
		}
	}
	for _, tag := range tags {
		label := entries[tag]
		var e [2]byte
		binary.BigEndian.PutUint16(e[:], tag)
		out = append(out, e[:]...)
		out = append(out, label[:]...)
	}
	return out
}

// uidBatch encodes a collection of 16-byte UIDs with its count header.
func uidBatch(uids ...UID) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(uids)))
	binary.BigEndian.PutUint32(out[4:8], 16)
	for _, uid := range uids {
		out = append(out, uid[:]...)
	}
	return out
}

// testUID builds a recognizable UID from a seed byte.
func testUID(seed byte) UID {
	var uid UID
	for i := range uid {
		uid[i] = seed
	}
	return uid
}

// Local tags used by the synthetic primer in tests.
const (
	tagInstanceUID       = 0x3c0a
	tagSubDescriptorUIDs = 0x3f01
	tagSampleRate        = 0x3001
	tagChannelCount      = 0x3d07
	tagAudioSamplingRate = 0x3d03
	tagQuantizationBits  = 0x3d01
)

// testPrimer maps the tags above to their field labels.
func testPrimer() map[uint16]UL {
	return map[uint16]UL{
		tagInstanceUID:       InstanceUIDLabel,
		tagSubDescriptorUIDs: SubDescriptorUIDsLabel,
		tagSampleRate:        SampleRateLabel,
		tagChannelCount:      ChannelCountLabel,
		tagAudioSamplingRate: AudioSamplingRateLabel,
		tagQuantizationBits:  QuantizationBitsLabel,
	}
}

// headerPartitionKey builds a closed-complete header partition pack key.
func headerPartitionKey() UL {
	var key UL
	copy(key[:13], partitionPackPrefix[:])
	key[13] = partitionKindHeader
	key[14] = 0x04 // closed, complete
	return key
}

// partitionValue encodes a partition pack value declaring headerByteCount
// bytes of header metadata and one essence container label.
func partitionValue(headerByteCount uint64) []byte {
	out := make([]byte, 0, 104)
	u16 := func(v uint16) {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], v)
		out = append(out, b[:]...)
	}
	u32 := func(v uint32) {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		out = append(out, b[:]...)
	}
	u64 := func(v uint64) {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v)
		out = append(out, b[:]...)
	}

	u16(1) // major version
	u16(3) // minor version
	u32(1) // kag size
	u64(0) // this partition
	u64(0) // previous partition
	u64(0) // footer partition
	u64(headerByteCount)
	u64(0) // index byte count
	u32(0) // index sid
	u64(0) // body offset
	u32(1) // body sid

	op := parseUL("060e2b34.04010102.0d010201.10000000")
	out = append(out, op[:]...)

	container := parseUL("060e2b34.04010101.0d010301.02060100")
	u32(1)
	u32(16)
	out = append(out, container[:]...)

	return out
}

// waveDescriptorValue encodes a minimal wave audio descriptor local set.
func waveDescriptorValue(uid UID, channels uint32) []byte {
	var ch [4]byte
	binary.BigEndian.PutUint32(ch[:], channels)

	out := localSetElement(tagInstanceUID, uid[:])
	return append(out, localSetElement(tagChannelCount, ch[:])...)
}

// multipleDescriptorValue encodes a multiple descriptor local set pointing
// at subUIDs in order.
func multipleDescriptorValue(uid UID, subUIDs ...UID) []byte {
	out := localSetElement(tagInstanceUID, uid[:])
	return append(out, localSetElement(tagSubDescriptorUIDs, uidBatch(subUIDs...))...)
}

// buildTrackFile assembles a synthetic track file: header partition pack,
// primer, a multiple descriptor and one wave descriptor per sub UID.
func buildTrackFile(mdUID UID, subUIDs ...UID) []byte {
	meta := encodeKLV(PrimerPackKey, primerValue(testPrimer()))
	meta = append(meta, encodeKLV(FillItemKey, make([]byte, 32))...)
	meta = append(meta, encodeKLV(MultipleDescriptorKey, multipleDescriptorValue(mdUID, subUIDs...))...)
	for i, sub := range subUIDs {
		meta = append(meta, encodeKLV(WaveAudioDescriptorKey, waveDescriptorValue(sub, uint32(i+1)))...)
	}

	file := encodeKLV(headerPartitionKey(), partitionValue(uint64(len(meta))))
	return append(file, meta...)
}
