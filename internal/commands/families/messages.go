package familiescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	initFamilyMessageType     = "famhome.families.init"
	updateHomeBodyMessageType = "famhome.families.update_home_body"
	importHTMLMessageType     = "famhome.families.import_html"
	importHomesMessageType    = "famhome.families.import_homes"
)

// InitFamilyCommand creates the family owned by OwnerUID when it does not
// exist yet.
type InitFamilyCommand struct {
	OwnerUID string `json:"owner_uid"`
	Name     string `json:"name,omitempty"`
}

// Type implements command.Message.
func (InitFamilyCommand) Type() string { return initFamilyMessageType }

// Validate implements command.Message.
func (cmd InitFamilyCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OwnerUID, validation.Required, validation.By(notBlank("famhome.families.init.owner_required", "owner uid is required"))),
		validation.Field(&cmd.Name, validation.Length(0, 120)),
	)
}

// UpdateHomeBodyCommand replaces a family's home page body.
type UpdateHomeBodyCommand struct {
	FamilyID     uuid.UUID `json:"family_id"`
	BodyMarkdown string    `json:"body_markdown"`
}

// Type implements command.Message.
func (UpdateHomeBodyCommand) Type() string { return updateHomeBodyMessageType }

// Validate implements command.Message. An empty body is allowed.
func (cmd UpdateHomeBodyCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.FamilyID, validation.By(requiredUUID("famhome.families.update_home_body.family_required", "family id is required"))),
	)
}

// ImportHTMLCommand converts a legacy HTML page into a family's body.
type ImportHTMLCommand struct {
	FamilyID uuid.UUID `json:"family_id"`
	HTML     string    `json:"html"`
}

// Type implements command.Message.
func (ImportHTMLCommand) Type() string { return importHTMLMessageType }

// Validate implements command.Message.
func (cmd ImportHTMLCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.FamilyID, validation.By(requiredUUID("famhome.families.import_html.family_required", "family id is required"))),
		validation.Field(&cmd.HTML, validation.Required),
	)
}

// ImportHomesCommand loads every home file under Directory and upserts one
// family per file, keyed by the front matter owner.
type ImportHomesCommand struct {
	Directory string `json:"directory"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportHomesCommand) Type() string { return importHomesMessageType }

// Validate implements command.Message.
func (cmd ImportHomesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank("famhome.families.import_homes.directory_required", "directory is required"))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func requiredUUID(code, message string) validation.RuleFunc {
	return func(value any) error {
		if id, _ := value.(uuid.UUID); id == uuid.Nil {
			return validation.NewError(code, message)
		}
		return nil
	}
}
