package familiescmd

import (
	"testing"

	"github.com/google/uuid"
)

func TestInitFamilyCommandValidate(t *testing.T) {
	if err := (InitFamilyCommand{}).Validate(); err == nil {
		t.Fatal("expected error when owner missing")
	}
	if err := (InitFamilyCommand{OwnerUID: "   "}).Validate(); err == nil {
		t.Fatal("expected error when owner is blank")
	}
	if err := (InitFamilyCommand{OwnerUID: "uid-1"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateHomeBodyCommandValidate(t *testing.T) {
	if err := (UpdateHomeBodyCommand{BodyMarkdown: "hi"}).Validate(); err == nil {
		t.Fatal("expected error when family id missing")
	}
	if err := (UpdateHomeBodyCommand{FamilyID: uuid.New()}).Validate(); err != nil {
		t.Fatalf("empty body should be allowed: %v", err)
	}
}

func TestImportHTMLCommandValidate(t *testing.T) {
	if err := (ImportHTMLCommand{FamilyID: uuid.New()}).Validate(); err == nil {
		t.Fatal("expected error when html missing")
	}
	if err := (ImportHTMLCommand{HTML: "<p>x</p>"}).Validate(); err == nil {
		t.Fatal("expected error when family id missing")
	}
	if err := (ImportHTMLCommand{FamilyID: uuid.New(), HTML: "<p>x</p>"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestImportHomesCommandValidate(t *testing.T) {
	if err := (ImportHomesCommand{Directory: " "}).Validate(); err == nil {
		t.Fatal("expected error when directory blank")
	}
	if err := (ImportHomesCommand{Directory: "homes"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
