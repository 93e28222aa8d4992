package reading

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/config"
	"github.com/rnwolfe/mates/internal/palette"
	"github.com/rnwolfe/mates/internal/streak"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore collection names shared with the mobile app.
const (
	readingsCollection = "readings"
	usersCollection    = "users"
	groupsCollection   = "groups"
)

// maxInValues is Firestore's limit on values in an "in" filter.
const maxInValues = 30

// CredentialsEnv holds base64-encoded service account JSON. It takes
// precedence over the credentials file in config.
const CredentialsEnv = "MATES_FIREBASE_CREDENTIALS"

// readingDoc carries the poster's first name because the app labels
// calendar cells from it without a users lookup.
type readingDoc struct {
	UserID    string `firestore:"userId"`
	FirstName string `firestore:"firstName"`
	Book      string `firestore:"book"`
	Chapter   string `firestore:"chapter"`
	Notes     string `firestore:"notes,omitempty"`
	Date      string `firestore:"date"`
}

type userDoc struct {
	FirstName string `firestore:"firstName"`
	LastName  string `firestore:"lastName"`
	Email     string `firestore:"email"`
}

type groupDoc struct {
	Name       string   `firestore:"name"`
	MateIDs    []string `firestore:"mateIds"`
	InviteCode string   `firestore:"inviteCode"`
}

// FirestoreSource reads and writes the collections the mobile app uses.
type FirestoreSource struct {
	client *firestore.Client
}

// NewFirestoreSource connects using credentials from CredentialsEnv or the
// configured service account file, in that order.
func NewFirestoreSource(ctx context.Context, cfg config.SourceConfig) (*FirestoreSource, error) {
	var opts []option.ClientOption
	if encoded := os.Getenv(CredentialsEnv); encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", CredentialsEnv, err)
		}
		opts = append(opts, option.WithCredentialsJSON(decoded))
	} else if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			return nil, fmt.Errorf("firebase credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to firestore: %w", err)
	}
	return &FirestoreSource{client: client}, nil
}

// Close releases the Firestore client.
func (f *FirestoreSource) Close() error {
	return f.client.Close()
}

// FetchReadings queries readings in batches of maxInValues users.
func (f *FirestoreSource) FetchReadings(ctx context.Context, userIDs []string, start, end calendar.Day) ([]streak.ReadingEvent, error) {
	if len(userIDs) == 0 || end < start {
		return nil, nil
	}

	var out []streak.ReadingEvent
	for _, batch := range chunk(userIDs, maxInValues) {
		q := f.client.Collection(readingsCollection).
			Where("userId", "in", batch).
			Where("date", ">=", start.String()).
			Where("date", "<=", end.String())

		iter := q.Documents(ctx)
		for {
			snap, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, fmt.Errorf("fetching readings: %w", err)
			}
			var doc readingDoc
			if err := snap.DataTo(&doc); err != nil {
				iter.Stop()
				return nil, fmt.Errorf("reading %s: %w", snap.Ref.ID, err)
			}
			e, err := doc.event(snap.Ref.ID)
			if err != nil {
				iter.Stop()
				return nil, err
			}
			out = append(out, e)
		}
		iter.Stop()
	}
	return out, nil
}

// PostReading adds a document to the readings collection.
func (f *FirestoreSource) PostReading(ctx context.Context, r NewReading) (streak.ReadingEvent, error) {
	if err := r.Validate(); err != nil {
		return streak.ReadingEvent{}, err
	}
	poster, err := f.Profile(ctx, r.UserID)
	if err != nil {
		return streak.ReadingEvent{}, fmt.Errorf("posting reading: %w", err)
	}
	e := r.event("")
	ref, _, err := f.client.Collection(readingsCollection).Add(ctx, newReadingDoc(e, poster))
	if err != nil {
		return streak.ReadingEvent{}, fmt.Errorf("posting reading: %w", err)
	}
	e.ID = ref.ID
	return e, nil
}

// DeleteReading removes one of the user's readings.
func (f *FirestoreSource) DeleteReading(ctx context.Context, userID, id string) error {
	ref := f.client.Collection(readingsCollection).Doc(id)
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("reading %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("getting reading: %w", err)
	}
	var doc readingDoc
	if err := snap.DataTo(&doc); err != nil {
		return fmt.Errorf("reading %s: %w", id, err)
	}
	if doc.UserID != userID {
		return fmt.Errorf("reading %s: %w", id, ErrNotFound)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("deleting reading: %w", err)
	}
	return nil
}

// Profile returns the users document for userID, or nil if there is none.
func (f *FirestoreSource) Profile(ctx context.Context, userID string) (*streak.Mate, error) {
	snap, err := f.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("getting profile %s: %w", userID, err)
	}
	m, err := mateFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	m.Color = palette.ForUser(m.ID)
	return &m, nil
}

// SetProfile writes the users document.
func (f *FirestoreSource) SetProfile(ctx context.Context, m streak.Mate) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("profile needs an id")
	}
	_, err := f.client.Collection(usersCollection).Doc(m.ID).Set(ctx, userDoc{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
	})
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// ListProfiles returns every users document.
func (f *FirestoreSource) ListProfiles(ctx context.Context) ([]streak.Mate, error) {
	snaps, err := f.client.Collection(usersCollection).OrderBy("firstName", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	out := make([]streak.Mate, 0, len(snaps))
	for _, snap := range snaps {
		m, err := mateFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		m.Color = palette.ForUser(m.ID)
		out = append(out, m)
	}
	return out, nil
}

// CreateGroup adds a groups document with the creator as first mate.
func (f *FirestoreSource) CreateGroup(ctx context.Context, name, creatorID string) (Group, error) {
	if strings.TrimSpace(name) == "" {
		return Group{}, errors.New("group needs a name")
	}
	doc := groupDoc{Name: name, InviteCode: newInviteCode(), MateIDs: []string{}}
	if creatorID != "" {
		doc.MateIDs = []string{creatorID}
	}
	ref := f.client.Collection(groupsCollection).NewDoc()
	if _, err := ref.Set(ctx, doc); err != nil {
		return Group{}, fmt.Errorf("creating group: %w", err)
	}
	return doc.group(ref.ID), nil
}

// AddMember appends userID to the group's mateIds.
func (f *FirestoreSource) AddMember(ctx context.Context, groupID, userID string) error {
	if _, err := f.Group(ctx, groupID); err != nil {
		return err
	}
	_, err := f.client.Collection(groupsCollection).Doc(groupID).Update(ctx, []firestore.Update{
		{Path: "mateIds", Value: firestore.ArrayUnion(userID)},
	})
	if err != nil {
		return fmt.Errorf("adding member: %w", err)
	}
	return nil
}

// Group returns one groups document.
func (f *FirestoreSource) Group(ctx context.Context, groupID string) (Group, error) {
	snap, err := f.client.Collection(groupsCollection).Doc(groupID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Group{}, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		return Group{}, fmt.Errorf("getting group: %w", err)
	}
	var doc groupDoc
	if err := snap.DataTo(&doc); err != nil {
		return Group{}, fmt.Errorf("group %s: %w", groupID, err)
	}
	return doc.group(snap.Ref.ID), nil
}

// GroupByInvite finds a group by its invite code, ignoring case.
func (f *FirestoreSource) GroupByInvite(ctx context.Context, code string) (Group, error) {
	snaps, err := f.client.Collection(groupsCollection).
		Where("inviteCode", "==", normalizeInvite(code)).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return Group{}, fmt.Errorf("finding group: %w", err)
	}
	if len(snaps) == 0 {
		return Group{}, fmt.Errorf("invite %s: %w", code, ErrNotFound)
	}
	var doc groupDoc
	if err := snaps[0].DataTo(&doc); err != nil {
		return Group{}, fmt.Errorf("group %s: %w", snaps[0].Ref.ID, err)
	}
	return doc.group(snaps[0].Ref.ID), nil
}

// GroupsForUser lists groups whose mateIds contain userID.
func (f *FirestoreSource) GroupsForUser(ctx context.Context, userID string) ([]Group, error) {
	snaps, err := f.client.Collection(groupsCollection).
		Where("mateIds", "array-contains", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	out := make([]Group, 0, len(snaps))
	for _, snap := range snaps {
		var doc groupDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("group %s: %w", snap.Ref.ID, err)
		}
		out = append(out, doc.group(snap.Ref.ID))
	}
	return out, nil
}

// GroupMembers loads the users documents for a group's mateIds, keeping join
// order. Mates without a users document are skipped.
func (f *FirestoreSource) GroupMembers(ctx context.Context, groupID string) ([]streak.Mate, error) {
	g, err := f.Group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(g.MateIDs) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, len(g.MateIDs))
	for i, id := range g.MateIDs {
		refs[i] = f.client.Collection(usersCollection).Doc(id)
	}
	snaps, err := f.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("loading members: %w", err)
	}

	var mates []streak.Mate
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		m, err := mateFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		mates = append(mates, m)
	}
	colorize(mates, g.MateIDs)
	return mates, nil
}

// newReadingDoc builds the stored form of e. poster may be nil when the user
// has no users document yet.
func newReadingDoc(e streak.ReadingEvent, poster *streak.Mate) readingDoc {
	doc := readingDoc{
		UserID:  e.UserID,
		Book:    e.Book,
		Chapter: e.Chapter,
		Notes:   e.Notes,
		Date:    e.Date.String(),
	}
	if poster != nil {
		doc.FirstName = poster.FirstName
	}
	return doc
}

func (d readingDoc) event(id string) (streak.ReadingEvent, error) {
	day, err := calendar.ParseDay(d.Date)
	if err != nil {
		return streak.ReadingEvent{}, fmt.Errorf("reading %s: %w", id, err)
	}
	return streak.ReadingEvent{
		ID:      id,
		UserID:  d.UserID,
		Date:    day,
		Book:    d.Book,
		Chapter: d.Chapter,
		Notes:   d.Notes,
	}, nil
}

func (d groupDoc) group(id string) Group {
	return Group{ID: id, Name: d.Name, InviteCode: d.InviteCode, MateIDs: d.MateIDs}
}

func mateFromSnapshot(snap *firestore.DocumentSnapshot) (streak.Mate, error) {
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return streak.Mate{}, fmt.Errorf("profile %s: %w", snap.Ref.ID, err)
	}
	return streak.Mate{
		ID:        snap.Ref.ID,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Email:     doc.Email,
	}, nil
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
