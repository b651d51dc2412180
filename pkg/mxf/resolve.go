package mxf

import (
	"mxf-reader/pkg/errorlog"
)

// ResolveReferences is the second decode pass: once every set's instance
// UID is known, it replaces pending strong references with direct,
// non-owning links into the session's object table.
//
// A reference whose target UID matches no set, or matches more than one, is
// reported NON_FATAL and left unresolved; consumers treat it as absent
// data. The pass is confluent: resolution order is irrelevant and running
// it again over a fully decoded session produces identical links.
func ResolveReferences(hm *HeaderMetadata, log *errorlog.Log) {
	counts := make(map[UID]int)
	for _, set := range hm.Sets {
		if set.InstanceUID != nil {
			counts[*set.InstanceUID]++
		}
	}

	hm.ByUID = make(map[UID]*MetadataSet)
	for _, set := range hm.Sets {
		if set.InstanceUID == nil {
			continue
		}
		uid := *set.InstanceUID
		if counts[uid] > 1 {
			// Ambiguous identity; nothing may link to it.
			continue
		}
		hm.ByUID[uid] = set
	}

	for uid, n := range counts {
		if n > 1 {
			log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
				"%d metadata sets share instance uid %s; references to it stay unresolved", n, uid)
		}
	}

	for _, set := range hm.Sets {
		for name, ref := range set.Refs {
			resolveRef(hm, log, set, name, ref)
		}
		for name, refs := range set.RefCollections {
			for _, ref := range refs {
				resolveRef(hm, log, set, name, ref)
			}
		}
	}
}

func resolveRef(hm *HeaderMetadata, log *errorlog.Log, from *MetadataSet, field string, ref *StrongRef) {
	target, ok := hm.ByUID[ref.TargetUID]
	if !ok {
		ref.Target = nil
		log.Addf(errorlog.CodeEssenceMetadata, errorlog.NonFatal,
			"%s.%s: unresolved strong reference to %s", from.Type, field, ref.TargetUID)
		return
	}
	ref.Target = target
}
