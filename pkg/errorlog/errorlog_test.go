package errorlog

import "testing"

func TestAddAndLen(t *testing.T) {
	log := NewLog()

	if log.Len() != 0 {
		t.Errorf("Expected empty log, got %d entries", log.Len())
	}

	log.Add(CodeEssenceMetadata, NonFatal, "instance_uid missing")
	log.Addf(CodeResource, Fatal, "read failed at offset %d", 1024)

	if log.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", log.Len())
	}
}

func TestErrorsSnapshotOrder(t *testing.T) {
	log := NewLog()
	log.Add(CodeEssenceMetadata, NonFatal, "first")
	log.Add(CodeEssenceMetadata, Fatal, "second")
	log.Add(CodeResource, NonFatal, "third")

	errs := log.Errors()
	if len(errs) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(errs))
	}

	want := []string{"first", "second", "third"}
	for i, msg := range want {
		if errs[i].Message != msg {
			t.Errorf("Entry %d: expected %q, got %q", i, msg, errs[i].Message)
		}
	}
}

func TestErrorsSnapshotIsCopy(t *testing.T) {
	log := NewLog()
	log.Add(CodeEssenceMetadata, NonFatal, "original")

	errs := log.Errors()
	errs[0].Message = "mutated"

	if got := log.Errors()[0].Message; got != "original" {
		t.Errorf("Expected snapshot mutation not to affect log, got %q", got)
	}
}

func TestBySeverity(t *testing.T) {
	log := NewLog()
	log.Add(CodeEssenceMetadata, NonFatal, "a")
	log.Add(CodeEssenceMetadata, Fatal, "b")
	log.Add(CodeResource, NonFatal, "c")

	nonFatal := log.BySeverity(NonFatal)
	if len(nonFatal) != 2 {
		t.Fatalf("Expected 2 non-fatal entries, got %d", len(nonFatal))
	}
	if nonFatal[0].Message != "a" || nonFatal[1].Message != "c" {
		t.Errorf("Non-fatal entries out of order: %v", nonFatal)
	}

	fatal := log.BySeverity(Fatal)
	if len(fatal) != 1 || fatal[0].Message != "b" {
		t.Errorf("Expected single fatal entry b, got %v", fatal)
	}
}

func TestFatalSince(t *testing.T) {
	log := NewLog()
	log.Add(CodeEssenceMetadata, Fatal, "early fatal")

	mark := log.Len()
	log.Add(CodeEssenceMetadata, NonFatal, "late non-fatal")

	if log.FatalSince(mark) {
		t.Error("Expected no fatal entries after mark")
	}
	if !log.HasFatal() {
		t.Error("Expected HasFatal to see the early fatal entry")
	}

	log.Add(CodeResource, Fatal, "late fatal")
	if !log.FatalSince(mark) {
		t.Error("Expected FatalSince to detect the late fatal entry")
	}
}

func TestErrorObjectError(t *testing.T) {
	e := ErrorObject{Code: CodeEssenceMetadata, Severity: NonFatal, Message: "boom"}
	want := "essence-metadata (non-fatal): boom"
	if e.Error() != want {
		t.Errorf("Expected %q, got %q", want, e.Error())
	}
}
