package reading

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/palette"
	"github.com/rnwolfe/mates/internal/store"
	"github.com/rnwolfe/mates/internal/streak"
)

// SQLiteStore keeps everything in the local mates database.
type SQLiteStore struct {
	db    *sql.DB
	owned *store.DB
}

// NewSQLiteStore wraps an open connection. The caller keeps ownership of db.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLite opens the default database and returns a store that closes it.
func OpenSQLite() (*SQLiteStore, error) {
	db, err := store.Open()
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db.Conn(), owned: db}, nil
}

// Close closes the database if the store opened it.
func (s *SQLiteStore) Close() error {
	if s.owned == nil {
		return nil
	}
	return s.owned.Close()
}

// FetchReadings returns readings ordered by date, then by insertion.
func (s *SQLiteStore) FetchReadings(ctx context.Context, userIDs []string, start, end calendar.Day) ([]streak.ReadingEvent, error) {
	if len(userIDs) == 0 || end < start {
		return nil, nil
	}

	args := make([]any, 0, len(userIDs)+2)
	for _, id := range userIDs {
		args = append(args, id)
	}
	args = append(args, start.String(), end.String())

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, date, book, chapter, notes FROM readings
		 WHERE user_id IN (`+placeholders(len(userIDs))+`) AND date >= ? AND date <= ?
		 ORDER BY date ASC, created_at ASC, rowid ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching readings: %w", err)
	}
	defer rows.Close()

	var out []streak.ReadingEvent
	for rows.Next() {
		var e streak.ReadingEvent
		var dateStr string
		if err := rows.Scan(&e.ID, &e.UserID, &dateStr, &e.Book, &e.Chapter, &e.Notes); err != nil {
			return nil, err
		}
		e.Date, err = calendar.ParseDay(dateStr)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PostReading stores r under a fresh UUID.
func (s *SQLiteStore) PostReading(ctx context.Context, r NewReading) (streak.ReadingEvent, error) {
	if err := r.Validate(); err != nil {
		return streak.ReadingEvent{}, err
	}
	e := r.event(uuid.NewString())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO readings (id, user_id, date, book, chapter, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Date.String(), e.Book, e.Chapter, e.Notes,
	)
	if err != nil {
		return streak.ReadingEvent{}, fmt.Errorf("posting reading: %w", err)
	}
	return e, nil
}

// DeleteReading removes one of the user's readings.
func (s *SQLiteStore) DeleteReading(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM readings WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting reading: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("reading %s: %w", id, ErrNotFound)
	}
	return nil
}

// Profile returns the stored profile for userID, colored by the ID hash.
func (s *SQLiteStore) Profile(ctx context.Context, userID string) (*streak.Mate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email FROM profiles WHERE id = ?`, userID)
	var m streak.Mate
	if err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting profile %s: %w", userID, err)
	}
	m.Color = palette.ForUser(m.ID)
	return &m, nil
}

// SetProfile creates or replaces a profile.
func (s *SQLiteStore) SetProfile(ctx context.Context, m streak.Mate) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("profile needs an id")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, first_name, last_name, email) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   first_name = excluded.first_name,
		   last_name = excluded.last_name,
		   email = excluded.email`,
		m.ID, m.FirstName, m.LastName, m.Email,
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// ListProfiles returns every known profile ordered by first name.
func (s *SQLiteStore) ListProfiles(ctx context.Context) ([]streak.Mate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, email FROM profiles ORDER BY first_name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var out []streak.Mate
	for rows.Next() {
		var m streak.Mate
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email); err != nil {
			return nil, err
		}
		m.Color = palette.ForUser(m.ID)
		out = append(out, m)
	}
	return out, rows.Err()
}

// CreateGroup creates a group with the creator as its first member.
func (s *SQLiteStore) CreateGroup(ctx context.Context, name, creatorID string) (Group, error) {
	if strings.TrimSpace(name) == "" {
		return Group{}, errors.New("group needs a name")
	}
	g := Group{ID: uuid.NewString(), Name: name, InviteCode: newInviteCode()}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Group{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reading_groups (id, name, invite_code) VALUES (?, ?, ?)`,
		g.ID, g.Name, g.InviteCode,
	); err != nil {
		return Group{}, fmt.Errorf("creating group: %w", err)
	}
	if creatorID != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id) VALUES (?, ?)`, g.ID, creatorID,
		); err != nil {
			return Group{}, fmt.Errorf("adding creator: %w", err)
		}
		g.MateIDs = []string{creatorID}
	}
	if err := tx.Commit(); err != nil {
		return Group{}, err
	}
	return g, nil
}

// AddMember appends userID to the group. Adding an existing member is a no-op.
func (s *SQLiteStore) AddMember(ctx context.Context, groupID, userID string) error {
	if _, err := s.Group(ctx, groupID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES (?, ?)
		 ON CONFLICT(group_id, user_id) DO NOTHING`,
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("adding member: %w", err)
	}
	return nil
}

// Group returns a group with its members in join order.
func (s *SQLiteStore) Group(ctx context.Context, groupID string) (Group, error) {
	var g Group
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, invite_code FROM reading_groups WHERE id = ?`, groupID,
	).Scan(&g.ID, &g.Name, &g.InviteCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Group{}, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		return Group{}, fmt.Errorf("getting group: %w", err)
	}

	g.MateIDs, err = s.memberIDs(ctx, groupID)
	if err != nil {
		return Group{}, err
	}
	return g, nil
}

// GroupByInvite finds a group by its invite code, ignoring case.
func (s *SQLiteStore) GroupByInvite(ctx context.Context, code string) (Group, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM reading_groups WHERE invite_code = ?`, normalizeInvite(code),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Group{}, fmt.Errorf("invite %s: %w", code, ErrNotFound)
		}
		return Group{}, fmt.Errorf("finding group: %w", err)
	}
	return s.Group(ctx, id)
}

// GroupsForUser lists the groups userID belongs to, oldest membership first.
func (s *SQLiteStore) GroupsForUser(ctx context.Context, userID string) ([]Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id FROM reading_groups g JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ? ORDER BY m.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(ids))
	for _, id := range ids {
		g, err := s.Group(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// GroupMembers returns the group's profiles in join order. Members without a
// profile are skipped.
func (s *SQLiteStore) GroupMembers(ctx context.Context, groupID string) ([]streak.Mate, error) {
	g, err := s.Group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.first_name, p.last_name, p.email
		 FROM group_members m JOIN profiles p ON p.id = m.user_id
		 WHERE m.group_id = ? ORDER BY m.id ASC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var mates []streak.Mate
	for rows.Next() {
		var m streak.Mate
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email); err != nil {
			return nil, err
		}
		mates = append(mates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	colorize(mates, g.MateIDs)
	return mates, nil
}

func (s *SQLiteStore) memberIDs(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM group_members WHERE group_id = ? ORDER BY id ASC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing member ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
