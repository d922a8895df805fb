package recordstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, opts ...Option) *Store[note] {
	t.Helper()
	s := New[note](opts...)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, note{Title: "Alpha", Tags: []string{"x"}, Score: 1}))
	require.NoError(t, s.Add(ctx, note{Title: "Beta", Score: 3, Pinned: true}))
	require.NoError(t, s.Add(ctx, note{Title: "Gamma", Tags: []string{"y", "z"}, Score: 5}))
	return s
}

func titles(notes []note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func TestAddRejectsInvalidRecord(t *testing.T) {
	s := New[note]()

	err := s.Add(context.Background(), note{Title: "  ", Score: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
	assert.Zero(t, s.Len())
}

func TestAddAllowsDuplicateKeys(t *testing.T) {
	s := New[note]()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, note{Title: "Same", Score: 1}))
	require.NoError(t, s.Add(ctx, note{Title: "same", Score: 2}))

	assert.Equal(t, 2, s.Len())
	first, ok := s.FindByKey("SAME")
	require.True(t, ok)
	assert.Equal(t, 1, first.Score)
}

func TestRecordsAreCopied(t *testing.T) {
	s := New[note]()
	tags := []string{"a"}
	require.NoError(t, s.Add(context.Background(), note{Title: "Copy", Tags: tags, Score: 2}))

	tags[0] = "mutated"
	got, ok := s.FindByKey("copy")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, got.Tags)

	got.Tags[0] = "changed"
	again, _ := s.At(0)
	assert.Equal(t, []string{"a"}, again.Tags)
}

func TestFindAllIsLazyAndRestartable(t *testing.T) {
	s := seeded(t)
	calls := 0
	seq := s.FindAll(func(n note) bool {
		calls++
		return n.Score >= 3
	})
	assert.Zero(t, calls)

	assert.Equal(t, []string{"Beta", "Gamma"}, titles(slices.Collect(seq)))
	require.NoError(t, s.Add(context.Background(), note{Title: "Delta", Score: 4}))
	assert.Equal(t, []string{"Beta", "Gamma", "Delta"}, titles(slices.Collect(seq)))
}

func TestFindAllNoMatchIsEmpty(t *testing.T) {
	s := seeded(t)
	got := slices.Collect(s.FindAll(func(n note) bool { return ContainsFold(n.Title, "omega") }))
	assert.Empty(t, got)
}

func TestUpdateByKeyMovesRecordToEnd(t *testing.T) {
	s := seeded(t)

	updated, ok, err := s.UpdateByKey(context.Background(), "alpha", func(old note) (note, error) {
		old.Score = 4
		return old, nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, updated.Score)
	assert.Equal(t, []string{"Beta", "Gamma", "Alpha"}, titles(s.All()))
}

func TestUpdateByKeyInPlace(t *testing.T) {
	s := seeded(t, WithInPlaceUpdates())

	_, ok, err := s.UpdateByKey(context.Background(), "BETA", func(old note) (note, error) {
		old.Pinned = false
		return old, nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, titles(s.All()))
	b, _ := s.At(1)
	assert.False(t, b.Pinned)
}

func TestUpdateByKeyNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := seeded(t)
	before := s.All()
	called := false

	_, ok, err := s.UpdateByKey(context.Background(), "missing", func(old note) (note, error) {
		called = true
		return old, nil
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, called)
	assert.Equal(t, before, s.All())
}

func TestUpdateRejectedByValidation(t *testing.T) {
	s := seeded(t)
	before := s.All()

	_, ok, err := s.UpdateByKey(context.Background(), "gamma", func(old note) (note, error) {
		old.Score = 6
		return old, nil
	})
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, s.All())
}

func TestUpdateBuilderError(t *testing.T) {
	s := seeded(t)
	boom := errors.New("boom")

	_, ok, err := s.UpdateByKey(context.Background(), "gamma", func(note) (note, error) {
		return note{}, boom
	})
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, s.Len())
}

func TestDeleteByKey(t *testing.T) {
	s := seeded(t)

	removed, ok := s.DeleteByKey(context.Background(), "GAMMA")
	require.True(t, ok)
	assert.Equal(t, "Gamma", removed.Title)
	assert.Equal(t, []string{"Alpha", "Beta"}, titles(s.All()))

	_, ok = s.DeleteByKey(context.Background(), "gamma")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestAt(t *testing.T) {
	s := seeded(t)
	n, ok := s.At(2)
	require.True(t, ok)
	assert.Equal(t, "Gamma", n.Title)

	_, ok = s.At(3)
	assert.False(t, ok)
	_, ok = s.At(-1)
	assert.False(t, ok)
}

func TestSaveTruncatesAndLoadAppends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale|||\nstale|||\nstale|||\nstale|||\n"), 0o600))

	s := seeded(t)
	require.NoError(t, s.SaveToFile(ctx, path, noteCodec{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Alpha|x|1|False\nBeta||3|True\nGamma|y,z|5|False\n", string(data))

	res, err := s.LoadFromFile(ctx, path, noteCodec{})
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Loaded: 3}, res)
	assert.Equal(t, 6, s.Len())
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.txt")
	content := "Good|a,b|2|True\n" +
		"too|few\n" +
		"BadScore|a|two|False\n" +
		"OutOfRange|a|9|False\n" +
		"BadBool|a|3|maybe\n" +
		"|a|3|False\n" +
		"Fine||4|false\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := New[note]()
	res, err := s.LoadFromFile(ctx, path, noteCodec{})
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Loaded: 2, Skipped: 5}, res)
	assert.Equal(t, []string{"Good", "Fine"}, titles(s.All()))
}

func TestStrictLoadFailsWithoutAppending(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("Good||2|True\nbroken\n"), 0o600))

	s := New[note](WithStrictLoad())
	_, err := s.LoadFromFile(ctx, path, noteCodec{})
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.ErrorIs(t, err, ErrMalformedLine)
	assert.Zero(t, s.Len())
}

func TestLoadMissingFile(t *testing.T) {
	s := New[note]()
	_, err := s.LoadFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), noteCodec{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileErrorsNameThePathOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := seeded(t, WithName("notes"))

	missing := filepath.Join(dir, "nope.txt")
	_, err := s.LoadFromFile(ctx, missing, noteCodec{})
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), missing), err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), "load notes: "), err.Error())

	unwritable := filepath.Join(dir, "absent", "notes.txt")
	err = s.SaveToFile(ctx, unwritable, noteCodec{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 1, strings.Count(err.Error(), unwritable), err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), "save notes: "), err.Error())
}

func TestClear(t *testing.T) {
	s := seeded(t)
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.All())
}

func TestFaultInjectorLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	s := New[note](WithName("notes"), WithFaultInjector(FailOn("notes", OpUpdate)))
	require.NoError(t, s.Add(ctx, note{Title: "Alpha", Score: 1}))

	_, ok, err := s.UpdateByKey(ctx, "alpha", func(n note) (note, error) {
		n.Score = 5
		return n, nil
	})
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInjectedFault)
	got, _ := s.FindByKey("Alpha")
	assert.Equal(t, 1, got.Score)

	other := New[note](WithName("other"), WithFaultInjector(FailOn("notes", OpAdd)))
	assert.NoError(t, other.Add(ctx, note{Title: "Beta", Score: 2}))
	assert.NoError(t, other.SaveToFile(ctx, filepath.Join(t.TempDir(), "x"), noteCodec{}))
}

func TestTruncate(t *testing.T) {
	s := seeded(t)

	s.Truncate(5)
	assert.Equal(t, 3, s.Len())
	s.Truncate(1)
	assert.Equal(t, []string{"Alpha"}, titles(s.All()))
	s.Truncate(-1)
	assert.Zero(t, s.Len())
}

func TestStorableHelpers(t *testing.T) {
	assert.NoError(t, Storable("title", "Fish, chips"))
	assert.ErrorIs(t, Storable("title", "Fish|chips"), ErrValidation)
	assert.ErrorIs(t, Storable("title", "Fish\nchips"), ErrValidation)
	assert.ErrorIs(t, Storable("title", "Fish\r"), ErrValidation)

	assert.NoError(t, StorableList("tag", nil))
	assert.NoError(t, StorableList("tag", []string{"a", "b c"}))
	assert.ErrorIs(t, StorableList("tag", []string{"a,b"}), ErrValidation)
	assert.ErrorIs(t, StorableList("tag", []string{"a|b"}), ErrValidation)
	assert.ErrorIs(t, StorableList("tag", []string{"a", " "}), ErrValidation)

	s := New[note]()
	err := s.Add(context.Background(), note{Title: "Alpha", Tags: []string{"x,y"}, Score: 2})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tag", verr.Field)
	assert.Zero(t, s.Len())
}
