package library

import (
	"fmt"
	"testing"

	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWordlist(t *testing.T) {
	t.Parallel()

	t.Run("defaults order to created_at", func(t *testing.T) {
		t.Parallel()
		lib, rec := newTestLibrary(t)

		wl, err := lib.AddWordlist(NewWordlist{Name: " Starter ", Comment: "warmup"})
		require.NoError(t, err)
		assert.Equal(t, "Starter", wl.Name)
		assert.Equal(t, "warmup", wl.Comment)
		assert.Equal(t, domain.OrderCreatedAt, wl.Order)
		assert.Nil(t, wl.ShuffleSeed)
		assert.Equal(t, DefaultUserID, wl.CreatedBy)
		assert.Equal(t, 1, lib.Stats().Wordlists)
		assert.Equal(t, events.WordlistAdded, rec.last().Type)
	})

	t.Run("shuffle order starts without a seed", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)

		wl, err := lib.AddWordlist(NewWordlist{Name: "Mixed", Order: domain.OrderShuffle})
		require.NoError(t, err)
		assert.Equal(t, domain.OrderShuffle, wl.Order)
		assert.Nil(t, wl.ShuffleSeed)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)

		_, err := lib.AddWordlist(NewWordlist{Name: ""})
		assert.True(t, domain.IsValidationError(err))

		_, err = lib.AddWordlist(NewWordlist{Name: "x", Order: "by_color"})
		assert.ErrorIs(t, err, domain.ErrInvalidOrder)
		assert.Equal(t, 0, lib.Stats().Wordlists)
	})

	t.Run("1001st wordlist fails with a capacity error", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)

		for i := 0; i < domain.MaxWordlistsPerUser; i++ {
			_, err := lib.AddWordlist(NewWordlist{Name: fmt.Sprintf("wl %d", i)})
			require.NoError(t, err)
		}

		_, err := lib.AddWordlist(NewWordlist{Name: "one too many"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
		assert.Equal(t, "wordlist cap reached (1000)", err.Error())

		var capErr *domain.CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, domain.MaxWordlistsPerUser, capErr.Limit)

		all := lib.Wordlists()
		assert.Len(t, all, domain.MaxWordlistsPerUser)
		assert.Equal(t, "wl 0", all[0].Name)
		assert.Equal(t, "wl 999", all[len(all)-1].Name)
	})
}

func TestAddFlashcardToWordlist(t *testing.T) {
	t.Parallel()

	t.Run("same pair twice yields one row", func(t *testing.T) {
		t.Parallel()
		lib, rec := newTestLibrary(t)
		card := mustAddCard(t, lib, "focus")
		wl := mustAddWordlist(t, lib, "Starter")

		require.NoError(t, lib.AddFlashcardToWordlist(wl, card))
		rec.reset()
		require.NoError(t, lib.AddFlashcardToWordlist(wl, card))

		assert.Len(t, lib.WordlistFlashcards(), 1)
		assert.Equal(t, 1, lib.MembershipCount(wl))
		assert.Empty(t, rec.types(), "duplicate insert must not emit")
	})

	t.Run("records join row details", func(t *testing.T) {
		t.Parallel()
		lib, rec := newTestLibrary(t)
		card := mustAddCard(t, lib, "focus")
		wl := mustAddWordlist(t, lib, "Starter")

		require.NoError(t, lib.AddFlashcardToWordlist(wl, card))

		rows := lib.WordlistFlashcards()
		require.Len(t, rows, 1)
		assert.NotEmpty(t, rows[0].ID)
		assert.Equal(t, wl, rows[0].WordlistID)
		assert.Equal(t, card, rows[0].FlashcardID)
		assert.False(t, rows[0].CreatedAt.IsZero())

		ev := rec.last()
		assert.Equal(t, events.WordlistCardAdded, ev.Type)
		assert.Equal(t, wl, ev.EntityID)
		assert.Equal(t, card, ev.RelatedID)
	})

	t.Run("unknown ids are no-ops", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)
		card := mustAddCard(t, lib, "focus")
		wl := mustAddWordlist(t, lib, "Starter")

		require.NoError(t, lib.AddFlashcardToWordlist("missing", card))
		require.NoError(t, lib.AddFlashcardToWordlist(wl, "missing"))
		assert.Empty(t, lib.WordlistFlashcards())
	})

	t.Run("5001st card fails with a capacity error", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)
		wl := mustAddWordlist(t, lib, "Huge")

		var first string
		for i := 0; i < domain.MaxFlashcardsPerWordlist; i++ {
			id := mustAddCard(t, lib, fmt.Sprintf("w%d", i))
			if i == 0 {
				first = id
			}
			require.NoError(t, lib.AddFlashcardToWordlist(wl, id))
		}
		extra := mustAddCard(t, lib, "extra")

		err := lib.AddFlashcardToWordlist(wl, extra)
		require.ErrorIs(t, err, domain.ErrCapacityExceeded)
		assert.Equal(t, "this wordlist already has 5000 flashcards", err.Error())
		assert.Equal(t, domain.MaxFlashcardsPerWordlist, lib.MembershipCount(wl))

		// The cap is checked before the duplicate check.
		err = lib.AddFlashcardToWordlist(wl, first)
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

		// Other wordlists are unaffected.
		other := mustAddWordlist(t, lib, "Small")
		require.NoError(t, lib.AddFlashcardToWordlist(other, extra))
	})
}

func TestRemoveFlashcardFromWordlist(t *testing.T) {
	t.Parallel()

	lib, rec := newTestLibrary(t)
	a := mustAddCard(t, lib, "a")
	b := mustAddCard(t, lib, "b")
	wl := mustAddWordlist(t, lib, "Starter")
	require.NoError(t, lib.AddFlashcardToWordlist(wl, a))
	require.NoError(t, lib.AddFlashcardToWordlist(wl, b))

	lib.RemoveFlashcardFromWordlist(wl, a)
	cards, _ := lib.WordlistCards(wl)
	assert.Equal(t, []string{"b"}, words(cards))
	assert.Equal(t, events.WordlistCardRemoved, rec.last().Type)

	_, ok := lib.GetFlashcard(a)
	assert.True(t, ok, "flashcard itself survives")

	rec.reset()
	lib.RemoveFlashcardFromWordlist(wl, a)
	lib.RemoveFlashcardFromWordlist("missing", b)
	assert.Empty(t, rec.types())

	// Re-adding appends at the end.
	require.NoError(t, lib.AddFlashcardToWordlist(wl, a))
	cards, _ = lib.WordlistCards(wl)
	assert.Equal(t, []string{"b", "a"}, words(cards))
}

func TestDeleteWordlist(t *testing.T) {
	t.Parallel()

	lib, rec := newTestLibrary(t)
	card := mustAddCard(t, lib, "focus")
	keep := mustAddWordlist(t, lib, "keep")
	drop := mustAddWordlist(t, lib, "drop")
	folder := mustAddFolder(t, lib, "Courses")
	require.NoError(t, lib.AddFlashcardToWordlist(keep, card))
	require.NoError(t, lib.AddFlashcardToWordlist(drop, card))
	require.NoError(t, lib.AddWordlistToFolder(folder, keep))
	require.NoError(t, lib.AddWordlistToFolder(folder, drop))

	lib.DeleteWordlist(drop)

	_, ok := lib.GetWordlist(drop)
	assert.False(t, ok)
	for _, row := range lib.WordlistFlashcards() {
		assert.NotEqual(t, drop, row.WordlistID)
	}
	for _, row := range lib.FolderWordlists() {
		assert.NotEqual(t, drop, row.WordlistID)
	}
	assert.Len(t, lib.WordlistFlashcards(), 1)
	assert.Len(t, lib.FolderWordlists(), 1)

	_, ok = lib.GetFlashcard(card)
	assert.True(t, ok, "flashcard survives")
	_, ok = lib.GetFolder(folder)
	assert.True(t, ok, "folder survives")
	assert.Equal(t, domain.Stats{Flashcards: 1, Wordlists: 1, Folders: 1}, lib.Stats())
	assert.Equal(t, events.WordlistDeleted, rec.last().Type)

	rec.reset()
	lib.DeleteWordlist(drop)
	assert.Empty(t, rec.types())
}

func TestReorderWordlist(t *testing.T) {
	t.Parallel()

	t.Run("alpha sorts by word regardless of insertion order", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)
		wl := mustAddWordlist(t, lib, "Starter")
		for _, w := range []string{"resilient", "focus", "Eloquent", "apple"} {
			require.NoError(t, lib.AddFlashcardToWordlist(wl, mustAddCard(t, lib, w)))
		}

		require.NoError(t, lib.ReorderWordlist(wl, domain.OrderAlpha))

		cards, ok := lib.OrderedCards(wl)
		require.True(t, ok)
		assert.Equal(t, []string{"apple", "Eloquent", "focus", "resilient"}, words(cards))
	})

	t.Run("created_at follows join insertion order", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)
		wl := mustAddWordlist(t, lib, "Starter")
		first := mustAddCard(t, lib, "first")
		second := mustAddCard(t, lib, "second")
		require.NoError(t, lib.AddFlashcardToWordlist(wl, second))
		require.NoError(t, lib.AddFlashcardToWordlist(wl, first))

		cards, _ := lib.OrderedCards(wl)
		assert.Equal(t, []string{"second", "first"}, words(cards))
	})

	t.Run("shuffle assigns a seed and is deterministic", func(t *testing.T) {
		t.Parallel()
		lib, rec := newTestLibrary(t)
		wl := mustAddWordlist(t, lib, "Starter")
		for i := 0; i < 20; i++ {
			require.NoError(t, lib.AddFlashcardToWordlist(wl, mustAddCard(t, lib, fmt.Sprintf("w%02d", i))))
		}

		require.NoError(t, lib.ReorderWordlist(wl, domain.OrderShuffle))

		got, _ := lib.GetWordlist(wl)
		require.NotNil(t, got.ShuffleSeed)
		assert.Equal(t, 0.25, *got.ShuffleSeed)
		assert.Equal(t, DefaultUserID, got.UpdatedBy)
		assert.Equal(t, events.WordlistReordered, rec.last().Type)

		first, _ := lib.OrderedCards(wl)
		second, _ := lib.OrderedCards(wl)
		assert.Equal(t, words(first), words(second))
		assert.ElementsMatch(t, words(first), func() []string {
			cards, _ := lib.WordlistCards(wl)
			return words(cards)
		}())
	})

	t.Run("seed is kept when leaving shuffle and redrawn on return", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)
		wl := mustAddWordlist(t, lib, "Starter")

		require.NoError(t, lib.ReorderWordlist(wl, domain.OrderShuffle))
		require.NoError(t, lib.ReorderWordlist(wl, domain.OrderAlpha))

		got, _ := lib.GetWordlist(wl)
		assert.Equal(t, domain.OrderAlpha, got.Order)
		require.NotNil(t, got.ShuffleSeed)
		assert.Equal(t, 0.25, *got.ShuffleSeed)

		require.NoError(t, lib.ReorderWordlist(wl, domain.OrderShuffle))
		got, _ = lib.GetWordlist(wl)
		assert.Equal(t, 0.75, *got.ShuffleSeed)
	})

	t.Run("invalid order and missing wordlist", func(t *testing.T) {
		t.Parallel()
		lib, rec := newTestLibrary(t)
		wl := mustAddWordlist(t, lib, "Starter")
		rec.reset()

		err := lib.ReorderWordlist(wl, "sideways")
		assert.True(t, domain.IsValidationError(err))
		assert.ErrorIs(t, err, domain.ErrInvalidOrder)

		require.NoError(t, lib.ReorderWordlist("missing", domain.OrderAlpha))
		assert.Empty(t, rec.types())
	})

	t.Run("returned seed cannot alter stored state", func(t *testing.T) {
		t.Parallel()
		lib, _ := newTestLibrary(t)
		wl := mustAddWordlist(t, lib, "Starter")
		require.NoError(t, lib.ReorderWordlist(wl, domain.OrderShuffle))

		got, _ := lib.GetWordlist(wl)
		*got.ShuffleSeed = 0.9

		again, _ := lib.GetWordlist(wl)
		assert.Equal(t, 0.25, *again.ShuffleSeed)
	})
}
