package storage

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestBallotStorage(t *testing.T) *ExcelBallotStorage {
	t.Helper()
	s, err := NewExcelBallotStorage(filepath.Join(t.TempDir(), "votes"))
	require.NoError(t, err)
	return s
}

func TestLoadOrCreate(t *testing.T) {
	s := newTestBallotStorage(t)

	t.Run("Happy path - missing table is created with the header row", func(t *testing.T) {
		ballots, err := s.LoadOrCreate("fresh.xlsx")
		require.NoError(t, err)
		assert.Empty(t, ballots, "New table should have no ballots")

		f, err := excelize.OpenFile(filepath.Join(s.Dir, "fresh.xlsx"))
		require.NoError(t, err, "Table should be persisted immediately")
		defer f.Close()

		rows, err := f.GetRows(f.GetSheetName(0))
		require.NoError(t, err)
		require.Len(t, rows, 1, "Only the header row should exist")
		assert.Equal(t, []string{"کد ملی", "نام", "نام خانوادگی", "رای داده شده به"}, rows[0])
	})

	t.Run("Unhappy path - unparsable table", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "broken.xlsx"), []byte("not a workbook"), 0o644))

		_, err := s.LoadOrCreate("broken.xlsx")
		assert.ErrorIs(t, err, ErrStoreCorrupt)
	})
}

func TestAppendAndReload(t *testing.T) {
	s := newTestBallotStorage(t)

	first := &Ballot{NationalCode: 1234567890, FirstName: "John", LastName: "Smith", Choice: "A"}
	second := &Ballot{NationalCode: 111111111, FirstName: "سارا", LastName: "لطفی", Choice: "طاها یزدانیان"}
	require.NoError(t, s.Append("table.xlsx", first))
	require.NoError(t, s.Append("table.xlsx", second))

	// reload through a fresh store to prove the rows were flushed
	reloaded, err := NewExcelBallotStorage(s.Dir)
	require.NoError(t, err)
	ballots, err := reloaded.LoadOrCreate("table.xlsx")
	require.NoError(t, err)

	require.Len(t, ballots, 2)
	assert.Equal(t, first, ballots[0])
	assert.Equal(t, second, ballots[1])
}

func TestHasVoted(t *testing.T) {
	s := newTestBallotStorage(t)
	require.NoError(t, s.Append("table.xlsx", &Ballot{NationalCode: 1234567890, FirstName: "John", LastName: "Smith", Choice: "A"}))

	voted, err := s.HasVoted("table.xlsx", 1234567890)
	require.NoError(t, err)
	assert.True(t, voted)

	voted, err = s.HasVoted("table.xlsx", 987654321)
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestAppendDuplicate(t *testing.T) {
	s := newTestBallotStorage(t)
	require.NoError(t, s.Append("table.xlsx", &Ballot{NationalCode: 1234567890, FirstName: "John", LastName: "Smith", Choice: "A"}))

	err := s.Append("table.xlsx", &Ballot{NationalCode: 1234567890, FirstName: "Jane", LastName: "Smith", Choice: "B"})
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	ballots, err := s.LoadOrCreate("table.xlsx")
	require.NoError(t, err)
	assert.Len(t, ballots, 1, "Rejected append must not change the table")
}

func TestConcurrentAppends(t *testing.T) {
	s := newTestBallotStorage(t)

	// 20 sessions race with only 5 distinct national codes; exactly 5
	// ballots must persist.
	const attempts = 20
	const distinct = 5

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ballot := &Ballot{
				NationalCode: int64(1000000000 + i%distinct),
				FirstName:    "John",
				LastName:     "Smith",
				Choice:       "A",
			}
			err := s.Append("race.xlsx", ballot)
			if err != nil {
				assert.ErrorIs(t, err, ErrAlreadyVoted)
			}
		}(i)
	}
	wg.Wait()

	ballots, err := s.LoadOrCreate("race.xlsx")
	require.NoError(t, err)
	assert.Len(t, ballots, distinct, "Exactly one ballot per distinct national code must persist")

	seen := make(map[int64]bool)
	for _, b := range ballots {
		assert.False(t, seen[b.NationalCode], "Duplicate national code persisted: %d", b.NationalCode)
		seen[b.NationalCode] = true
	}
}

func TestListFilesAndExport(t *testing.T) {
	s := newTestBallotStorage(t)
	require.NoError(t, s.Append("b.xlsx", &Ballot{NationalCode: 1234567890, FirstName: "John", LastName: "Smith", Choice: "A"}))
	_, err := s.LoadOrCreate("a.xlsx")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "notes.txt"), []byte("stray"), 0o644))

	t.Run("Happy path - only xlsx files are listed, sorted", func(t *testing.T) {
		files, err := s.ListFiles()
		require.NoError(t, err)
		assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, files)
	})

	t.Run("Happy path - export bundles every table into one zip", func(t *testing.T) {
		archive, err := s.ExportAll()
		require.NoError(t, err)

		zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		require.NoError(t, err)

		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.ElementsMatch(t, []string{"a.xlsx", "b.xlsx"}, names)
	})

	t.Run("Happy path - single file read returns the raw workbook", func(t *testing.T) {
		data, err := s.ReadFile("b.xlsx")
		require.NoError(t, err)
		assert.NotEmpty(t, data)

		onDisk, err := os.ReadFile(filepath.Join(s.Dir, "b.xlsx"))
		require.NoError(t, err)
		assert.Equal(t, onDisk, data)
	})

	t.Run("Unhappy path - missing file", func(t *testing.T) {
		_, err := s.ReadFile("missing.xlsx")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})
}
