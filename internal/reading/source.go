// Package reading is the persistence side of mates: where readings, profiles
// and groups are fetched from and written to. The streak engine never talks
// to it directly; callers fetch a window of readings first and hand the
// snapshot to package streak.
package reading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/palette"
	"github.com/rnwolfe/mates/internal/streak"
)

var (
	// ErrNotFound is returned when a group or profile does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReading is returned for readings missing required fields.
	ErrInvalidReading = errors.New("invalid reading")
	// ErrNoGroup is returned when a user belongs to no group.
	ErrNoGroup = errors.New("not in any group")
)

// Source is what the calendar and day views read from.
type Source interface {
	// FetchReadings returns readings of the given users with dates in
	// [start, end], both inclusive.
	FetchReadings(ctx context.Context, userIDs []string, start, end calendar.Day) ([]streak.ReadingEvent, error)
	// GroupMembers returns a group's mates in join order with colors assigned.
	GroupMembers(ctx context.Context, groupID string) ([]streak.Mate, error)
	// Profile returns the user's profile, or nil when there is none.
	Profile(ctx context.Context, userID string) (*streak.Mate, error)
	// PostReading stores a new reading and returns it with its assigned ID.
	PostReading(ctx context.Context, r NewReading) (streak.ReadingEvent, error)
}

// Directory manages profiles and groups.
type Directory interface {
	SetProfile(ctx context.Context, m streak.Mate) error
	ListProfiles(ctx context.Context) ([]streak.Mate, error)
	CreateGroup(ctx context.Context, name, creatorID string) (Group, error)
	AddMember(ctx context.Context, groupID, userID string) error
	Group(ctx context.Context, groupID string) (Group, error)
	GroupByInvite(ctx context.Context, code string) (Group, error)
	GroupsForUser(ctx context.Context, userID string) ([]Group, error)
}

// Backend is a complete storage implementation.
type Backend interface {
	Source
	Directory
	// DeleteReading removes a reading owned by userID.
	DeleteReading(ctx context.Context, userID, id string) error
	Close() error
}

// DefaultGroup returns preferred if it is set, otherwise the first group
// userID joined.
func DefaultGroup(ctx context.Context, dir Directory, userID, preferred string) (Group, error) {
	if preferred != "" {
		return dir.Group(ctx, preferred)
	}
	groups, err := dir.GroupsForUser(ctx, userID)
	if err != nil {
		return Group{}, err
	}
	if len(groups) == 0 {
		return Group{}, ErrNoGroup
	}
	return groups[0], nil
}

// Group is a set of mates reading together.
type Group struct {
	ID         string
	Name       string
	InviteCode string
	MateIDs    []string // join order
}

// NewReading is a reading before it has been stored.
type NewReading struct {
	UserID  string
	Date    calendar.Day
	Book    string
	Chapter string
	Notes   string
}

// Validate checks required fields.
func (r NewReading) Validate() error {
	var missing []string
	if strings.TrimSpace(r.UserID) == "" {
		missing = append(missing, "user")
	}
	if strings.TrimSpace(r.Book) == "" {
		missing = append(missing, "book")
	}
	if strings.TrimSpace(r.Chapter) == "" {
		missing = append(missing, "chapter")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidReading, strings.Join(missing, ", "))
	}
	return nil
}

func (r NewReading) event(id string) streak.ReadingEvent {
	return streak.ReadingEvent{
		ID:      id,
		UserID:  r.UserID,
		Date:    r.Date,
		Book:    strings.TrimSpace(r.Book),
		Chapter: strings.TrimSpace(r.Chapter),
		Notes:   r.Notes,
	}
}

// colorize assigns palette colors to mates from their join order.
func colorize(mates []streak.Mate, joinOrder []string) {
	colors := palette.ByJoinOrder(joinOrder)
	for i := range mates {
		if c, ok := colors[mates[i].ID]; ok {
			mates[i].Color = c
		} else {
			mates[i].Color = palette.ForUser(mates[i].ID)
		}
	}
}

func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func normalizeInvite(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
