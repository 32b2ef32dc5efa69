package application

import (
	"time"

	"github.com/example/resort-points-editor/internal/points"
)

// EditorSession represents an authenticated editing session.
type EditorSession struct {
	ID        string
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams carries the editor password presented at login.
type AuthenticateParams struct {
	Password string
}

// AuthenticateResult is the issued session after a successful login.
type AuthenticateResult struct {
	Session EditorSession
}

// ResortInfo is the listing view of a resort. Empty address and timezone
// values are replaced with display fallbacks.
type ResortInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Code        string `json:"code"`
	ResortName  string `json:"resort_name"`
	Address     string `json:"address"`
	Timezone    string `json:"timezone"`
}

// CreateResortParams wraps the data required to create a resort. ID and Code
// are derived from DisplayName when left empty.
type CreateResortParams struct {
	DisplayName string
	Code        string
	ResortName  string
	Address     string
	Timezone    string
}

// RenameResortParams updates a resort's display name; the ID never changes.
type RenameResortParams struct {
	ResortID    string
	DisplayName string
}

// AddSeasonParams names the year and season to create on the selected resort.
type AddSeasonParams struct {
	Year string
	Name string
}

// DeleteSeasonParams addresses a season by position within a year.
type DeleteSeasonParams struct {
	Year  string
	Index int
}

// SetSeasonPeriodsParams replaces the date ranges of one season.
type SetSeasonPeriodsParams struct {
	Year    string
	Index   int
	Periods []points.Period
}

// SetSeasonPointsParams replaces one day category's point table. When
// ApplyToAllYears is set the season's tables are also copied into every
// other year carrying a season with the same name.
type SetSeasonPointsParams struct {
	Year            string
	SeasonName      string
	Category        string
	RoomPoints      map[string]*int
	ApplyToAllYears bool
}

// SetHolidayPointsParams replaces one holiday's point table, optionally
// copying it to matching holidays in other years.
type SetHolidayPointsParams struct {
	Year            string
	HolidayKey      string
	RoomPoints      map[string]*int
	ApplyToAllYears bool
}

// AddRoomTypeParams introduces a room type. With AllResorts set the room is
// zero-filled into every resort of the document instead of the selected one.
type AddRoomTypeParams struct {
	RoomType   string
	AllResorts bool
}

// AddHolidayParams adds a holiday override to every year of the selected
// resort. GlobalReference defaults to Name when left empty.
type AddHolidayParams struct {
	Name            string
	GlobalReference string
}

// SetPeriodsResult reports the periods kept and how many malformed rows were
// dropped.
type SetPeriodsResult struct {
	Periods   []points.Period
	Discarded int
}

// MergeResult reports the outcome of merging another document: resorts
// imported and the IDs skipped because they already existed.
type MergeResult struct {
	Added   int
	Skipped []string
}

// VerifyResult reports whether a payload round-trips byte-exactly against
// the current document state.
type VerifyResult struct {
	Match bool
}

// SaveDocumentParams names a document snapshot to persist.
type SaveDocumentParams struct {
	Name string
}

// SavedDocument is the listing view of a persisted snapshot.
type SavedDocument struct {
	Name     string    `json:"name"`
	Revision int       `json:"revision"`
	SavedAt  time.Time `json:"saved_at"`
}
