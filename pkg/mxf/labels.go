package mxf

// Set keys from SMPTE ST 377-1 and the file-descriptor registry.
var (
	// PrimerPackKey introduces the local tag table of a header partition.
	PrimerPackKey = parseUL("060e2b34.02050101.0d010201.01050100")

	// FillItemKey pads between KLV envelopes; fill values carry no data.
	FillItemKey = parseUL("060e2b34.01010102.03010210.01000000")

	// MultipleDescriptorKey names the descriptor whose content is an
	// ordered collection of strong references to sub-descriptors.
	MultipleDescriptorKey = parseUL("060e2b34.02530101.0d010101.01014400")

	// CDCIDescriptorKey names the component-depth picture descriptor.
	CDCIDescriptorKey = parseUL("060e2b34.02530101.0d010101.01012800")

	// RGBADescriptorKey names the RGBA picture descriptor.
	RGBADescriptorKey = parseUL("060e2b34.02530101.0d010101.01012900")

	// WaveAudioDescriptorKey names the wave PCM sound descriptor.
	WaveAudioDescriptorKey = parseUL("060e2b34.02530101.0d010101.01014800")
)

// Field labels resolved through the primer.
var (
	InstanceUIDLabel       = parseUL("060e2b34.01010101.01011502.00000000")
	GenerationUIDLabel     = parseUL("060e2b34.01010102.05200701.08000000")
	SubDescriptorUIDsLabel = parseUL("060e2b34.01010104.06010104.060b0000")
	SampleRateLabel        = parseUL("060e2b34.01010101.04060101.00000000")
	EssenceContainerLabel  = parseUL("060e2b34.01010102.06010104.01020000")
	AudioSamplingRateLabel = parseUL("060e2b34.01010105.04020301.01010000")
	ChannelCountLabel      = parseUL("060e2b34.01010105.04020101.04000000")
	QuantizationBitsLabel  = parseUL("060e2b34.01010105.04020303.04000000")
	StoredWidthLabel       = parseUL("060e2b34.01010101.04010502.02000000")
	StoredHeightLabel      = parseUL("060e2b34.01010101.04010502.01000000")
	ComponentDepthLabel    = parseUL("060e2b34.01010102.04010503.0a000000")
)

// partitionPackPrefix is the fixed head of every partition pack key; the
// byte after it distinguishes header, body and footer partitions, and the
// one after that the open/closed and complete/incomplete status.
var partitionPackPrefix = [13]byte{0x06, 0x0e, 0x2b, 0x34, 0x02, 0x05, 0x01, 0x01, 0x0d, 0x01, 0x02, 0x01, 0x01}

// Partition kind bytes.
const (
	partitionKindHeader = 0x02
	partitionKindBody   = 0x03
	partitionKindFooter = 0x04
)

// IsPartitionPack reports whether key names any partition pack.
func IsPartitionPack(key UL) bool {
	if [13]byte(key[:13]) != partitionPackPrefix {
		return false
	}
	return key[13] >= partitionKindHeader && key[13] <= partitionKindFooter
}

// IsHeaderPartition reports whether key names a header partition pack.
func IsHeaderPartition(key UL) bool {
	return IsPartitionPack(key) && key[13] == partitionKindHeader
}

// IsPrimerPack reports whether key names the primer pack.
func IsPrimerPack(key UL) bool {
	return key == PrimerPackKey
}

// IsFill reports whether key names a fill item. The version byte (offset 7)
// is ignored, accepting both the current and the legacy fill key.
func IsFill(key UL) bool {
	for i := range key {
		if i == 7 {
			continue
		}
		if key[i] != FillItemKey[i] {
			return false
		}
	}
	return true
}
