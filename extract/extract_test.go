package extract

import (
	"testing"
)

// ---------------------------------------------------------------------------
// Registry tests
// ---------------------------------------------------------------------------

func TestRegistryBuiltInExtractors(t *testing.T) {
	reg := NewRegistry()

	formats := []string{"pdf", "docx", "pptx", "xlsx"}

	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			e, err := reg.Get(format)
			if err != nil {
				t.Fatalf("Get(%q) returned error: %v", format, err)
			}
			if e == nil {
				t.Fatalf("Get(%q) returned nil extractor", format)
			}
			// Verify the extractor supports the expected format.
			found := false
			for _, f := range e.SupportedFormats() {
				if f == format {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("extractor for %q does not list %q in SupportedFormats(): %v",
					format, format, e.SupportedFormats())
			}
		})
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()

	unknownFormats := []string{"txt", "csv", "doc", "odt", "html", ""}
	for _, format := range unknownFormats {
		t.Run("format_"+format, func(t *testing.T) {
			e, err := reg.Get(format)
			if err == nil {
				t.Errorf("Get(%q) expected error for unknown format, got extractor: %v", format, e)
			}
			if e != nil {
				t.Errorf("Get(%q) expected nil extractor for unknown format", format)
			}
		})
	}
}

func TestRegistryCustomExtractor(t *testing.T) {
	reg := NewRegistry()

	// Before registration, "custom" should fail.
	if _, err := reg.Get("custom"); err == nil {
		t.Fatal("expected error for unregistered format")
	}

	// Register a custom extractor and verify retrieval.
	reg.Register("custom", &DOCXExtractor{}) // reuse DOCXExtractor as a stand-in
	e, err := reg.Get("custom")
	if err != nil {
		t.Fatalf("Get(\"custom\") after Register returned error: %v", err)
	}
	if e == nil {
		t.Fatal("Get(\"custom\") returned nil after Register")
	}
}
