package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/library"
	"github.com/phrazzld/wordhoard/internal/redact"
	"github.com/phrazzld/wordhoard/internal/store"
)

const (
	deleteFolderWordlistsSQL    = `DELETE FROM folder_wordlists`
	deleteWordlistFlashcardsSQL = `DELETE FROM wordlist_flashcards`
	deleteFoldersSQL            = `DELETE FROM folders`
	deleteWordlistsSQL          = `DELETE FROM wordlists`
	deleteFlashcardsSQL         = `DELETE FROM flashcards`
	deleteMetaSQL               = `DELETE FROM library_meta`

	insertMetaSQL = `INSERT INTO library_meta (user_id, saved_at) VALUES ($1, $2)`

	insertFlashcardSQL = `
		INSERT INTO flashcards
			(id, word, dictionary_id, meaning, audio_url, comment, frequency, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	insertWordlistSQL = `
		INSERT INTO wordlists
			(id, name, comment, sort_order, shuffle_seed, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	insertFolderSQL = `
		INSERT INTO folders
			(id, name, comment, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertWordlistFlashcardSQL = `
		INSERT INTO wordlist_flashcards (id, wordlist_id, flashcard_id, position, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	insertFolderWordlistSQL = `
		INSERT INTO folder_wordlists (id, folder_id, wordlist_id, position, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	selectMetaSQL = `SELECT user_id FROM library_meta LIMIT 1`

	selectFlashcardsSQL = `
		SELECT id, word, dictionary_id, meaning, audio_url, comment, frequency, created_at, updated_at, created_by
		FROM flashcards`

	selectWordlistsSQL = `
		SELECT id, name, comment, sort_order, shuffle_seed, created_at, updated_at, created_by, updated_by
		FROM wordlists`

	selectFoldersSQL = `
		SELECT id, name, comment, created_at, updated_at, created_by, updated_by
		FROM folders`

	selectWordlistFlashcardsSQL = `
		SELECT id, wordlist_id, flashcard_id, created_at
		FROM wordlist_flashcards
		ORDER BY position`

	selectFolderWordlistsSQL = `
		SELECT id, folder_id, wordlist_id, created_at
		FROM folder_wordlists
		ORDER BY position`
)

// SnapshotStore implements store.SnapshotStore on PostgreSQL. Each Save
// replaces the stored library wholesale inside one transaction.
type SnapshotStore struct {
	db     *sql.DB
	logger *slog.Logger
	nowFn  func() time.Time
}

var _ store.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a SnapshotStore. If logger is nil, slog.Default is used.
func NewSnapshotStore(db *sql.DB, logger *slog.Logger) *SnapshotStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotStore{
		db:     db,
		logger: logger.With(slog.String("component", "snapshot_store")),
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// Save implements store.SnapshotStore.Save.
func (s *SnapshotStore) Save(ctx context.Context, snap library.Snapshot) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, q := range []string{
			deleteFolderWordlistsSQL,
			deleteWordlistFlashcardsSQL,
			deleteFoldersSQL,
			deleteWordlistsSQL,
			deleteFlashcardsSQL,
			deleteMetaSQL,
		} {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				return store.NewStoreError("snapshot", "save", "clear tables", MapError(err))
			}
		}

		if _, err := tx.ExecContext(ctx, insertMetaSQL, snap.UserID, s.nowFn()); err != nil {
			return store.NewStoreError("snapshot", "save", "insert meta", MapError(err))
		}
		return insertSnapshotRows(ctx, tx, snap)
	})
	if err != nil {
		s.logger.Error("failed to save library snapshot",
			slog.String("error", redact.Error(err)),
			slog.Int("flashcards", len(snap.Flashcards)),
			slog.Int("wordlists", len(snap.Wordlists)))
		return err
	}

	s.logger.Debug("library snapshot saved",
		slog.Int("flashcards", len(snap.Flashcards)),
		slog.Int("wordlists", len(snap.Wordlists)),
		slog.Int("folders", len(snap.Folders)))
	return nil
}

// insertSnapshotRows writes entities before join rows so foreign keys hold.
func insertSnapshotRows(ctx context.Context, tx store.DBTX, snap library.Snapshot) error {
	for _, c := range snap.Flashcards {
		if _, err := tx.ExecContext(ctx, insertFlashcardSQL,
			c.ID, c.Word, c.DictionaryID, c.Meaning, c.AudioURL, c.Comment,
			c.Frequency, c.CreatedAt, c.UpdatedAt, c.CreatedBy,
		); err != nil {
			return store.NewStoreError("flashcard", "save", c.ID, MapError(err))
		}
	}

	for _, w := range snap.Wordlists {
		var seed sql.NullFloat64
		if w.ShuffleSeed != nil {
			seed = sql.NullFloat64{Float64: *w.ShuffleSeed, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertWordlistSQL,
			w.ID, w.Name, w.Comment, string(w.Order), seed,
			w.CreatedAt, w.UpdatedAt, w.CreatedBy, w.UpdatedBy,
		); err != nil {
			return store.NewStoreError("wordlist", "save", w.ID, MapError(err))
		}
	}

	for _, f := range snap.Folders {
		if _, err := tx.ExecContext(ctx, insertFolderSQL,
			f.ID, f.Name, f.Comment, f.CreatedAt, f.UpdatedAt, f.CreatedBy, f.UpdatedBy,
		); err != nil {
			return store.NewStoreError("folder", "save", f.ID, MapError(err))
		}
	}

	for i, r := range snap.WordlistFlashcards {
		if _, err := tx.ExecContext(ctx, insertWordlistFlashcardSQL,
			r.ID, r.WordlistID, r.FlashcardID, i, r.CreatedAt,
		); err != nil {
			return store.NewStoreError("wordlist_flashcard", "save", r.ID, MapError(err))
		}
	}

	for i, r := range snap.FolderWordlists {
		if _, err := tx.ExecContext(ctx, insertFolderWordlistSQL,
			r.ID, r.FolderID, r.WordlistID, i, r.CreatedAt,
		); err != nil {
			return store.NewStoreError("folder_wordlist", "save", r.ID, MapError(err))
		}
	}
	return nil
}

// Load implements store.SnapshotStore.Load.
func (s *SnapshotStore) Load(ctx context.Context) (*library.Snapshot, error) {
	snap := &library.Snapshot{
		Flashcards: make(map[string]domain.Flashcard),
		Wordlists:  make(map[string]domain.Wordlist),
		Folders:    make(map[string]domain.Folder),
	}

	err := s.db.QueryRowContext(ctx, selectMetaSQL).Scan(&snap.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("snapshot", "load", "read meta", MapError(err))
	}

	if err := s.loadFlashcards(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadWordlists(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadFolders(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadMemberships(ctx, snap); err != nil {
		return nil, err
	}

	snap.Stats = domain.Stats{
		Flashcards: len(snap.Flashcards),
		Wordlists:  len(snap.Wordlists),
		Folders:    len(snap.Folders),
	}

	s.logger.Debug("library snapshot loaded",
		slog.String("user_id", snap.UserID),
		slog.Int("flashcards", snap.Stats.Flashcards),
		slog.Int("wordlists", snap.Stats.Wordlists),
		slog.Int("folders", snap.Stats.Folders))
	return snap, nil
}

// query runs q and hands each row to scan, closing rows on every path.
func (s *SnapshotStore) query(
	ctx context.Context,
	entity, q string,
	scan func(*sql.Rows) error,
) error {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return store.NewStoreError(entity, "load", "query", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return store.NewStoreError(entity, "load", "scan", MapError(err))
		}
	}
	if err := rows.Err(); err != nil {
		return store.NewStoreError(entity, "load", "iterate", MapError(err))
	}
	return nil
}

func (s *SnapshotStore) loadFlashcards(ctx context.Context, snap *library.Snapshot) error {
	return s.query(ctx, "flashcard", selectFlashcardsSQL, func(rows *sql.Rows) error {
		var c domain.Flashcard
		if err := rows.Scan(
			&c.ID, &c.Word, &c.DictionaryID, &c.Meaning, &c.AudioURL, &c.Comment,
			&c.Frequency, &c.CreatedAt, &c.UpdatedAt, &c.CreatedBy,
		); err != nil {
			return err
		}
		snap.Flashcards[c.ID] = c
		return nil
	})
}

func (s *SnapshotStore) loadWordlists(ctx context.Context, snap *library.Snapshot) error {
	return s.query(ctx, "wordlist", selectWordlistsSQL, func(rows *sql.Rows) error {
		var (
			w     domain.Wordlist
			order string
			seed  sql.NullFloat64
		)
		if err := rows.Scan(
			&w.ID, &w.Name, &w.Comment, &order, &seed,
			&w.CreatedAt, &w.UpdatedAt, &w.CreatedBy, &w.UpdatedBy,
		); err != nil {
			return err
		}
		parsed, err := domain.ParseOrderStrategy(order)
		if err != nil {
			return fmt.Errorf("wordlist %s: %w", w.ID, err)
		}
		w.Order = parsed
		if seed.Valid {
			v := seed.Float64
			w.ShuffleSeed = &v
		}
		snap.Wordlists[w.ID] = w
		return nil
	})
}

func (s *SnapshotStore) loadFolders(ctx context.Context, snap *library.Snapshot) error {
	return s.query(ctx, "folder", selectFoldersSQL, func(rows *sql.Rows) error {
		var f domain.Folder
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Comment, &f.CreatedAt, &f.UpdatedAt, &f.CreatedBy, &f.UpdatedBy,
		); err != nil {
			return err
		}
		snap.Folders[f.ID] = f
		return nil
	})
}

func (s *SnapshotStore) loadMemberships(ctx context.Context, snap *library.Snapshot) error {
	err := s.query(ctx, "wordlist_flashcard", selectWordlistFlashcardsSQL, func(rows *sql.Rows) error {
		var r domain.WordlistFlashcard
		if err := rows.Scan(&r.ID, &r.WordlistID, &r.FlashcardID, &r.CreatedAt); err != nil {
			return err
		}
		snap.WordlistFlashcards = append(snap.WordlistFlashcards, r)
		return nil
	})
	if err != nil {
		return err
	}

	return s.query(ctx, "folder_wordlist", selectFolderWordlistsSQL, func(rows *sql.Rows) error {
		var r domain.FolderWordlist
		if err := rows.Scan(&r.ID, &r.FolderID, &r.WordlistID, &r.CreatedAt); err != nil {
			return err
		}
		snap.FolderWordlists = append(snap.FolderWordlists, r)
		return nil
	})
}
