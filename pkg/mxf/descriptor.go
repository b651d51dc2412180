package mxf

// RefKind classifies how a field participates in the reference graph.
type RefKind int

const (
	// RefNone marks a plain value field.
	RefNone RefKind = iota
	// RefStrong marks a single strong reference (target instance UID).
	RefStrong
	// RefWeak marks a weak reference; recorded but never resolved into a
	// link.
	RefWeak
	// RefStrongCollection marks an ordered collection of strong
	// references.
	RefStrongCollection
)

// FieldDescriptor is the static decode rule for one field of a metadata
// set. Descriptors are declared per set type at package load and never
// mutated at runtime.
type FieldDescriptor struct {
	// Name keys the decoded value in the MetadataSet.
	Name string
	// Label is the universal label identifying the field semantic; local
	// set elements are matched to descriptors through it.
	Label UL
	// Size is the expected value size in bytes, or 0 for variable-size and
	// collection fields.
	Size uint32
	// Depends marks a field whose byte span is computed from a preceding
	// count header (collections carry a 4-byte element count and a 4-byte
	// element size before the elements).
	Depends bool
	// Ref is the field's reference kind.
	Ref RefKind
}

// SetDescriptor is the static decode table for one metadata-set type.
type SetDescriptor struct {
	// Name is the set type name.
	Name string
	// Key is the KLV universal label of the set.
	Key UL
	// Fields is the ordered descriptor table.
	Fields []FieldDescriptor
}

// fileDescriptorFields are the common fields shared by every file
// descriptor variant this reader knows.
func fileDescriptorFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "InstanceUID", Label: InstanceUIDLabel, Size: 16},
		{Name: "GenerationUID", Label: GenerationUIDLabel, Size: 16},
		{Name: "SampleRate", Label: SampleRateLabel, Size: 8},
		{Name: "EssenceContainer", Label: EssenceContainerLabel, Size: 16},
	}
}

// setRegistry maps KLV set keys to their decode tables.
var setRegistry = map[UL]SetDescriptor{}

// RegisterSet adds a decode table to the registry, replacing any previous
// table for the same key.
func RegisterSet(desc SetDescriptor) {
	setRegistry[desc.Key] = desc
}

// DescriptorFor returns the decode table registered for key.
func DescriptorFor(key UL) (SetDescriptor, bool) {
	desc, ok := setRegistry[key]
	return desc, ok
}

func init() {
	RegisterSet(SetDescriptor{
		Name: "MultipleDescriptor",
		Key:  MultipleDescriptorKey,
		Fields: append(fileDescriptorFields(),
			FieldDescriptor{Name: "SubDescriptorUIDs", Label: SubDescriptorUIDsLabel, Depends: true, Ref: RefStrongCollection},
		),
	})

	RegisterSet(SetDescriptor{
		Name: "CDCIDescriptor",
		Key:  CDCIDescriptorKey,
		Fields: append(fileDescriptorFields(),
			FieldDescriptor{Name: "StoredWidth", Label: StoredWidthLabel, Size: 4},
			FieldDescriptor{Name: "StoredHeight", Label: StoredHeightLabel, Size: 4},
			FieldDescriptor{Name: "ComponentDepth", Label: ComponentDepthLabel, Size: 4},
		),
	})

	RegisterSet(SetDescriptor{
		Name: "RGBADescriptor",
		Key:  RGBADescriptorKey,
		Fields: append(fileDescriptorFields(),
			FieldDescriptor{Name: "StoredWidth", Label: StoredWidthLabel, Size: 4},
			FieldDescriptor{Name: "StoredHeight", Label: StoredHeightLabel, Size: 4},
		),
	})

	RegisterSet(SetDescriptor{
		Name: "WaveAudioDescriptor",
		Key:  WaveAudioDescriptorKey,
		Fields: append(fileDescriptorFields(),
			FieldDescriptor{Name: "AudioSamplingRate", Label: AudioSamplingRateLabel, Size: 8},
			FieldDescriptor{Name: "ChannelCount", Label: ChannelCountLabel, Size: 4},
			FieldDescriptor{Name: "QuantizationBits", Label: QuantizationBitsLabel, Size: 4},
		),
	})
}
